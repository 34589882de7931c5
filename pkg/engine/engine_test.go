package engine_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stationops/fleetwatch/pkg/alerts"
	"github.com/stationops/fleetwatch/pkg/engine"
	"github.com/stationops/fleetwatch/pkg/model"
	"github.com/stationops/fleetwatch/pkg/storage"
)

func newTestEngine(t *testing.T) (*engine.Engine, storage.Storage) {
	t.Helper()
	store := newTestStore(t)
	return engine.New(store, 0, testLogger()), store
}

func newTestStore(t *testing.T) storage.Storage {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	store, err := storage.NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func seedVehicle(t *testing.T, store storage.Storage, name string) string {
	t.Helper()
	v := &model.Vehicle{Name: name, Active: true}
	require.NoError(t, store.CreateVehicle(context.Background(), v))
	return v.ID
}

func seedItem(t *testing.T, store storage.Storage, name string, minQty int) string {
	t.Helper()
	item := &model.InventoryItem{Name: name, MinQuantity: minQty}
	require.NoError(t, store.CreateItem(context.Background(), item))
	return item.ID
}

func seedSchedule(t *testing.T, store storage.Storage, sched *model.MaintenanceSchedule) string {
	t.Helper()
	sched.Active = true
	if sched.Kind == "" {
		sched.Kind = model.KindPeriodicMaintenance
	}
	require.NoError(t, store.CreateSchedule(context.Background(), sched))
	return sched.ID
}

func TestGetAlertFeed_Empty(t *testing.T) {
	eng, _ := newTestEngine(t)

	feed, err := eng.GetAlertFeed(context.Background(), date(2024, time.August, 15))
	require.NoError(t, err)
	assert.Empty(t, feed.Alerts)
	assert.Empty(t, feed.Degraded)
	assert.Equal(t, date(2024, time.August, 15), feed.GeneratedAt)
}

func TestGetAlertFeed_SeverityOrdering(t *testing.T) {
	eng, store := newTestEngine(t)
	ctx := context.Background()
	now := date(2024, time.August, 15)

	vehicleID := seedVehicle(t, store, "Engine 1")

	// Warning: due in 10 days.
	sid := seedSchedule(t, store, &model.MaintenanceSchedule{
		Title:    "Pump Test",
		Target:   model.TargetRef{VehicleID: vehicleID},
		Interval: model.Interval{Type: model.IntervalYears, Value: 1},
	})
	require.NoError(t, store.AddRecord(ctx, &model.MaintenanceRecord{
		ScheduleID:    sid,
		Target:        model.TargetRef{VehicleID: vehicleID},
		WorkType:      "pump test",
		PerformedDate: date(2023, time.August, 25),
		Completed:     true,
	}))

	// Critical: overdue by 45 days.
	sid2 := seedSchedule(t, store, &model.MaintenanceSchedule{
		Title:    "Oil Change",
		Target:   model.TargetRef{VehicleID: vehicleID},
		Interval: model.Interval{Type: model.IntervalMonths, Value: 6},
	})
	require.NoError(t, store.AddRecord(ctx, &model.MaintenanceRecord{
		ScheduleID:    sid2,
		Target:        model.TargetRef{VehicleID: vehicleID},
		WorkType:      "oil change",
		PerformedDate: date(2024, time.January, 1),
		Completed:     true,
	}))

	// Info: stock shortage.
	itemID := seedItem(t, store, "Foam Concentrate", 10)
	require.NoError(t, store.UpsertStockLevel(ctx, itemID, "Station 1", 3))

	feed, err := eng.GetAlertFeed(ctx, now)
	require.NoError(t, err)
	require.Len(t, feed.Alerts, 3)

	assert.Equal(t, alerts.SeverityCritical, feed.Alerts[0].Severity)
	assert.Equal(t, alerts.SeverityWarning, feed.Alerts[1].Severity)
	assert.Equal(t, alerts.SeverityInfo, feed.Alerts[2].Severity)

	// Ranks never decrease down the feed.
	for i := 1; i < len(feed.Alerts); i++ {
		assert.LessOrEqual(t, feed.Alerts[i-1].Severity.Rank(), feed.Alerts[i].Severity.Rank())
	}
}

func TestGetAlertFeed_UrgencyOrderingWithinTier(t *testing.T) {
	eng, store := newTestEngine(t)
	ctx := context.Background()
	now := date(2024, time.August, 15)

	vehicleID := seedVehicle(t, store, "Tender 2")

	// Overdue by 14 days.
	sid := seedSchedule(t, store, &model.MaintenanceSchedule{
		Title:    "Brake Inspection",
		Target:   model.TargetRef{VehicleID: vehicleID},
		Interval: model.Interval{Type: model.IntervalMonths, Value: 1},
	})
	require.NoError(t, store.AddRecord(ctx, &model.MaintenanceRecord{
		ScheduleID:    sid,
		Target:        model.TargetRef{VehicleID: vehicleID},
		WorkType:      "inspection",
		PerformedDate: date(2024, time.July, 1),
		Completed:     true,
	}))

	// Overdue by 45 days: must sort first.
	sid2 := seedSchedule(t, store, &model.MaintenanceSchedule{
		Title:    "Oil Change",
		Target:   model.TargetRef{VehicleID: vehicleID},
		Interval: model.Interval{Type: model.IntervalMonths, Value: 6},
	})
	require.NoError(t, store.AddRecord(ctx, &model.MaintenanceRecord{
		ScheduleID:    sid2,
		Target:        model.TargetRef{VehicleID: vehicleID},
		WorkType:      "oil change",
		PerformedDate: date(2024, time.January, 1),
		Completed:     true,
	}))

	feed, err := eng.GetAlertFeed(ctx, now)
	require.NoError(t, err)
	require.Len(t, feed.Alerts, 2)
	assert.Equal(t, -45, feed.Alerts[0].Urgency)
	assert.Equal(t, -14, feed.Alerts[1].Urgency)
}

func TestGetAlertFeed_Idempotent(t *testing.T) {
	eng, store := newTestEngine(t)
	ctx := context.Background()
	now := date(2024, time.August, 15)

	vehicleID := seedVehicle(t, store, "Engine 1")
	seedSchedule(t, store, &model.MaintenanceSchedule{
		Title:    "Annual Service",
		Target:   model.TargetRef{VehicleID: vehicleID},
		Interval: model.Interval{Type: model.IntervalYears, Value: 1},
	})
	itemID := seedItem(t, store, "Fuel Cans", 5)
	require.NoError(t, store.UpsertStockLevel(ctx, itemID, "Station 1", 1))

	first, err := eng.GetAlertFeed(ctx, now)
	require.NoError(t, err)
	second, err := eng.GetAlertFeed(ctx, now)
	require.NoError(t, err)

	assert.Equal(t, first.Alerts, second.Alerts)
	assert.Equal(t, first.Indeterminate, second.Indeterminate)
}

type failingCertStore struct {
	storage.Storage
}

func (f *failingCertStore) ListCertifications(context.Context) ([]model.Certification, error) {
	return nil, errors.New("connection reset")
}

func TestGetAlertFeed_DegradedSource(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	now := date(2024, time.August, 15)

	itemID := seedItem(t, store, "Foam Concentrate", 10)
	require.NoError(t, store.UpsertStockLevel(ctx, itemID, "Station 1", 3))

	eng := engine.New(&failingCertStore{Storage: store}, 0, testLogger())

	feed, err := eng.GetAlertFeed(ctx, now)
	require.NoError(t, err)

	// The certification source is flagged degraded; other sources still contribute.
	assert.Equal(t, []string{engine.SourceCertifications}, feed.Degraded)
	require.Len(t, feed.Alerts, 1)
	assert.Equal(t, alerts.TypeLowStock, feed.Alerts[0].Type)
}

func TestGetAlertFeed_CanceledContext(t *testing.T) {
	eng, _ := newTestEngine(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := eng.GetAlertFeed(ctx, date(2024, time.August, 15))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestProjectedCost(t *testing.T) {
	eng, store := newTestEngine(t)
	ctx := context.Background()
	now := date(2024, time.August, 15)

	vehicleID := seedVehicle(t, store, "Engine 1")

	// Overdue: counts.
	sid := seedSchedule(t, store, &model.MaintenanceSchedule{
		Title:        "Oil Change",
		Target:       model.TargetRef{VehicleID: vehicleID},
		Interval:     model.Interval{Type: model.IntervalMonths, Value: 6},
		CostEstimate: 150,
	})
	require.NoError(t, store.AddRecord(ctx, &model.MaintenanceRecord{
		ScheduleID:    sid,
		Target:        model.TargetRef{VehicleID: vehicleID},
		WorkType:      "oil change",
		PerformedDate: date(2024, time.January, 1),
		Completed:     true,
	}))

	// Never serviced: counts.
	seedSchedule(t, store, &model.MaintenanceSchedule{
		Title:        "Ladder Test",
		Target:       model.TargetRef{VehicleID: vehicleID},
		Interval:     model.Interval{Type: model.IntervalYears, Value: 1},
		CostEstimate: 50,
	})

	// Far in the future: does not count.
	sid3 := seedSchedule(t, store, &model.MaintenanceSchedule{
		Title:        "Tire Replacement",
		Target:       model.TargetRef{VehicleID: vehicleID},
		Interval:     model.Interval{Type: model.IntervalYears, Value: 2},
		CostEstimate: 900,
	})
	require.NoError(t, store.AddRecord(ctx, &model.MaintenanceRecord{
		ScheduleID:    sid3,
		Target:        model.TargetRef{VehicleID: vehicleID},
		WorkType:      "tires",
		PerformedDate: date(2024, time.July, 1),
		Completed:     true,
	}))

	proj, err := eng.ProjectedCost(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, 2, proj.DueCount)
	assert.InDelta(t, 200.0, proj.EstimatedUSD, 0.001)
}

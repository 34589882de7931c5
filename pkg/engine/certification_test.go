package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stationops/fleetwatch/pkg/alerts"
	"github.com/stationops/fleetwatch/pkg/model"
)

func seedCert(t *testing.T, store interface {
	AddCertification(context.Context, *model.Certification) error
}, c model.Certification) {
	t.Helper()
	require.NoError(t, store.AddCertification(context.Background(), &c))
}

func TestCertification_Expired(t *testing.T) {
	eng, store := newTestEngine(t)
	ctx := context.Background()
	now := date(2024, time.August, 15)

	itemID := seedItem(t, store, "Attack Hose 1", 0)
	seedCert(t, store, model.Certification{
		ItemID:            itemID,
		Location:          "Engine 1",
		Type:              "hydrostatic test",
		CertificationDate: date(2023, time.July, 1),
		ExpirationDate:    date(2024, time.July, 1),
		Passed:            true,
	})

	feed, err := eng.GetAlertFeed(ctx, now)
	require.NoError(t, err)
	require.Len(t, feed.Alerts, 1)

	a := feed.Alerts[0]
	assert.Equal(t, alerts.TypeCertificationExpired, a.Type)
	assert.Equal(t, alerts.SeverityCritical, a.Severity)
	assert.Equal(t, -45, a.Urgency)
	assert.Equal(t, "Engine 1", a.Location)
}

func TestCertification_ExpiringBoundary(t *testing.T) {
	// Exactly 30 days out is expiring-soon; 31 days is not alerted.
	now := date(2024, time.August, 15)

	tests := []struct {
		name       string
		expiration time.Time
		wantAlert  bool
	}{
		{"thirty days", date(2024, time.September, 14), true},
		{"thirty-one days", date(2024, time.September, 15), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eng, store := newTestEngine(t)
			itemID := seedItem(t, store, "Supply Hose", 0)
			seedCert(t, store, model.Certification{
				ItemID:            itemID,
				Type:              "hydrostatic test",
				CertificationDate: date(2023, time.September, 14),
				ExpirationDate:    tt.expiration,
				Passed:            true,
			})

			feed, err := eng.GetAlertFeed(context.Background(), now)
			require.NoError(t, err)

			if tt.wantAlert {
				require.Len(t, feed.Alerts, 1)
				assert.Equal(t, alerts.TypeCertificationExpiring, feed.Alerts[0].Type)
				assert.Equal(t, alerts.SeverityWarning, feed.Alerts[0].Severity)
				assert.Equal(t, 30, feed.Alerts[0].Urgency)
			} else {
				assert.Empty(t, feed.Alerts)
			}
		})
	}
}

func TestCertification_LatestRowWins(t *testing.T) {
	eng, store := newTestEngine(t)
	ctx := context.Background()
	now := date(2024, time.August, 15)

	itemID := seedItem(t, store, "Attack Hose 1", 0)
	seedCert(t, store, model.Certification{
		ItemID:            itemID,
		Location:          "Engine 1",
		Type:              "hydrostatic test",
		CertificationDate: date(2024, time.June, 1),
		ExpirationDate:    date(2025, time.June, 1),
		Passed:            true,
	})

	before, err := eng.GetAlertFeed(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, before.Alerts)

	// An older superseded row, even an expired one, must not change the feed.
	seedCert(t, store, model.Certification{
		ItemID:            itemID,
		Location:          "Engine 1",
		Type:              "hydrostatic test",
		CertificationDate: date(2023, time.June, 1),
		ExpirationDate:    date(2024, time.June, 1),
		Passed:            true,
	})

	after, err := eng.GetAlertFeed(ctx, now)
	require.NoError(t, err)
	assert.Equal(t, before.Alerts, after.Alerts)
}

func TestCertification_DistinctLocationsAreSeparate(t *testing.T) {
	eng, store := newTestEngine(t)
	ctx := context.Background()
	now := date(2024, time.August, 15)

	itemID := seedItem(t, store, "Ground Ladder", 0)
	seedCert(t, store, model.Certification{
		ItemID:            itemID,
		Location:          "Engine 1",
		Type:              "load test",
		CertificationDate: date(2024, time.January, 1),
		ExpirationDate:    date(2024, time.July, 1),
		Passed:            true,
	})
	seedCert(t, store, model.Certification{
		ItemID:            itemID,
		Location:          "Station 2",
		Type:              "load test",
		CertificationDate: date(2024, time.June, 1),
		ExpirationDate:    date(2025, time.June, 1),
		Passed:            true,
	})

	feed, err := eng.GetAlertFeed(ctx, now)
	require.NoError(t, err)

	// Only the Engine 1 lineage is expired; the Station 2 one is separate.
	require.Len(t, feed.Alerts, 1)
	assert.Equal(t, "Engine 1", feed.Alerts[0].Location)
}

func TestCertification_FailedIndependentOfExpiration(t *testing.T) {
	eng, store := newTestEngine(t)
	ctx := context.Background()
	now := date(2024, time.August, 15)

	itemID := seedItem(t, store, "Attack Hose 2", 0)
	// Failed today, expires a year out: still critical.
	seedCert(t, store, model.Certification{
		ItemID:            itemID,
		Location:          "Engine 1",
		Type:              "hydrostatic test",
		CertificationDate: now,
		ExpirationDate:    date(2025, time.August, 15),
		Passed:            false,
	})

	feed, err := eng.GetAlertFeed(ctx, now)
	require.NoError(t, err)
	require.Len(t, feed.Alerts, 1)

	a := feed.Alerts[0]
	assert.Equal(t, alerts.TypeCertificationFailed, a.Type)
	assert.Equal(t, alerts.SeverityCritical, a.Severity)
}

func TestCertification_FailedAndExpired(t *testing.T) {
	eng, store := newTestEngine(t)
	ctx := context.Background()
	now := date(2024, time.August, 15)

	itemID := seedItem(t, store, "Attack Hose 3", 0)
	seedCert(t, store, model.Certification{
		ItemID:            itemID,
		Type:              "hydrostatic test",
		CertificationDate: date(2023, time.June, 1),
		ExpirationDate:    date(2024, time.June, 1),
		Passed:            false,
	})

	feed, err := eng.GetAlertFeed(ctx, now)
	require.NoError(t, err)

	// Both the failure and the expiration are surfaced.
	require.Len(t, feed.Alerts, 2)
	types := []alerts.Type{feed.Alerts[0].Type, feed.Alerts[1].Type}
	assert.Contains(t, types, alerts.TypeCertificationFailed)
	assert.Contains(t, types, alerts.TypeCertificationExpired)
}

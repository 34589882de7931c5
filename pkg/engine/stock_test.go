package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stationops/fleetwatch/pkg/alerts"
)

func TestStock_Shortage(t *testing.T) {
	eng, store := newTestEngine(t)
	ctx := context.Background()

	itemID := seedItem(t, store, "Foam Concentrate", 10)
	require.NoError(t, store.UpsertStockLevel(ctx, itemID, "Station 1", 3))

	feed, err := eng.GetAlertFeed(ctx, date(2024, time.August, 15))
	require.NoError(t, err)
	require.Len(t, feed.Alerts, 1)

	a := feed.Alerts[0]
	assert.Equal(t, alerts.TypeLowStock, a.Type)
	assert.Equal(t, alerts.SeverityInfo, a.Severity)
	assert.Equal(t, -7, a.Urgency)
	assert.Equal(t, "Station 1", a.Location)
	assert.Contains(t, a.Description, "Foam Concentrate")
}

func TestStock_AtMinimum_NoAlert(t *testing.T) {
	eng, store := newTestEngine(t)
	ctx := context.Background()

	itemID := seedItem(t, store, "Fuel Cans", 5)
	require.NoError(t, store.UpsertStockLevel(ctx, itemID, "Station 1", 5))

	feed, err := eng.GetAlertFeed(ctx, date(2024, time.August, 15))
	require.NoError(t, err)
	assert.Empty(t, feed.Alerts)
}

func TestStock_LargestShortageFirst(t *testing.T) {
	eng, store := newTestEngine(t)
	ctx := context.Background()

	foamID := seedItem(t, store, "Foam Concentrate", 10)
	require.NoError(t, store.UpsertStockLevel(ctx, foamID, "Station 1", 8))

	glovesID := seedItem(t, store, "Work Gloves", 20)
	require.NoError(t, store.UpsertStockLevel(ctx, glovesID, "Station 1", 4))

	feed, err := eng.GetAlertFeed(ctx, date(2024, time.August, 15))
	require.NoError(t, err)
	require.Len(t, feed.Alerts, 2)

	assert.Equal(t, -16, feed.Alerts[0].Urgency)
	assert.Equal(t, -2, feed.Alerts[1].Urgency)
}

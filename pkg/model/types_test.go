package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stationops/fleetwatch/pkg/model"
)

func TestTargetRef_Validate(t *testing.T) {
	tests := []struct {
		name    string
		target  model.TargetRef
		wantErr bool
	}{
		{"item only", model.TargetRef{ItemID: "item-1"}, false},
		{"vehicle only", model.TargetRef{VehicleID: "veh-1"}, false},
		{"both set", model.TargetRef{ItemID: "item-1", VehicleID: "veh-1"}, true},
		{"neither set", model.TargetRef{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.target.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrInvalidTarget)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIntervalType_CalendarBased(t *testing.T) {
	assert.True(t, model.IntervalMonths.CalendarBased())
	assert.True(t, model.IntervalYears.CalendarBased())
	assert.False(t, model.IntervalHours.CalendarBased())
	assert.False(t, model.IntervalMiles.CalendarBased())
}

func TestIntervalType_Valid(t *testing.T) {
	assert.True(t, model.IntervalMonths.Valid())
	assert.False(t, model.IntervalType("fortnights").Valid())
}

func TestStockLevel_Shortage(t *testing.T) {
	l := model.StockLevel{Quantity: 3, MinQuantity: 10}
	assert.Equal(t, 7, l.Shortage())

	full := model.StockLevel{Quantity: 12, MinQuantity: 10}
	assert.Equal(t, -2, full.Shortage())
}

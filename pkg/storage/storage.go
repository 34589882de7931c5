package storage

import (
	"context"

	"github.com/stationops/fleetwatch/pkg/model"
)

// Storage defines the persistence layer for fleet entities. The alert engine
// only uses the List* read contracts; the write operations exist for the CLI
// and plan importer.
type Storage interface {
	// CreateVehicle persists a vehicle.
	CreateVehicle(ctx context.Context, v *model.Vehicle) error

	// ListVehicles returns all vehicles.
	ListVehicles(ctx context.Context) ([]model.Vehicle, error)

	// CreateItem persists an inventory item.
	CreateItem(ctx context.Context, item *model.InventoryItem) error

	// ListItems returns all inventory items.
	ListItems(ctx context.Context) ([]model.InventoryItem, error)

	// CreateSchedule persists a maintenance schedule.
	CreateSchedule(ctx context.Context, s *model.MaintenanceSchedule) error

	// SetScheduleActive toggles a schedule in or out of due-date computation.
	SetScheduleActive(ctx context.Context, id string, active bool) error

	// ListActiveSchedules returns all active schedules with target labels resolved.
	ListActiveSchedules(ctx context.Context) ([]model.MaintenanceSchedule, error)

	// AddRecord persists a maintenance record.
	AddRecord(ctx context.Context, r *model.MaintenanceRecord) error

	// ListRecordsBySchedule returns all schedule-linked maintenance records,
	// grouped by schedule ID. Unlinked records are informational and excluded.
	ListRecordsBySchedule(ctx context.Context) (map[string][]model.MaintenanceRecord, error)

	// AddCertification persists a certification record.
	AddCertification(ctx context.Context, c *model.Certification) error

	// ListCertifications returns all certification records, superseded rows included.
	ListCertifications(ctx context.Context) ([]model.Certification, error)

	// UpsertStockLevel sets the quantity of an item at a location.
	UpsertStockLevel(ctx context.Context, itemID, location string, quantity int) error

	// ListStockLevels returns per-location quantities joined with item minimums.
	ListStockLevels(ctx context.Context) ([]model.StockLevel, error)

	// Close releases resources.
	Close() error
}

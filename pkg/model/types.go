package model

import (
	"errors"
	"time"
)

// Vehicle is an apparatus tracked by the department (engine, tender, brush truck).
type Vehicle struct {
	ID         string    `json:"id" db:"id"`
	Name       string    `json:"name" db:"name"`
	UnitNumber string    `json:"unit_number" db:"unit_number"`
	Station    string    `json:"station" db:"station"`
	Active     bool      `json:"active" db:"active"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// InventoryItem is a piece of equipment or consumable stock.
type InventoryItem struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	ItemCode    string    `json:"item_code" db:"item_code"`
	Category    string    `json:"category" db:"category"`
	MinQuantity int       `json:"min_quantity" db:"min_quantity"`
	Consumable  bool      `json:"consumable" db:"consumable"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// TargetRef names the single entity a schedule, record or certification applies to.
// Exactly one of ItemID or VehicleID is set.
type TargetRef struct {
	ItemID    string `json:"item_id,omitempty" db:"item_id"`
	VehicleID string `json:"vehicle_id,omitempty" db:"vehicle_id"`
}

// ErrInvalidTarget is returned when a target names neither or both entity kinds.
var ErrInvalidTarget = errors.New("target must reference exactly one of item or vehicle")

// Validate checks the mutual-exclusion invariant.
func (t TargetRef) Validate() error {
	if (t.ItemID == "") == (t.VehicleID == "") {
		return ErrInvalidTarget
	}
	return nil
}

// IsZero reports whether the target references nothing.
func (t TargetRef) IsZero() bool {
	return t.ItemID == "" && t.VehicleID == ""
}

// IntervalType distinguishes calendar-based intervals from usage-based ones.
type IntervalType string

const (
	IntervalMonths IntervalType = "months"
	IntervalYears  IntervalType = "years"
	IntervalHours  IntervalType = "hours"
	IntervalMiles  IntervalType = "miles"
)

// CalendarBased reports whether the interval can be resolved by date arithmetic.
// Hours and miles require a usage counter the system does not track.
func (t IntervalType) CalendarBased() bool {
	return t == IntervalMonths || t == IntervalYears
}

// Valid reports whether the interval type is one of the known variants.
func (t IntervalType) Valid() bool {
	switch t {
	case IntervalMonths, IntervalYears, IntervalHours, IntervalMiles:
		return true
	}
	return false
}

// Interval is a recurrence period, e.g. every 6 months or every 100 hours.
type Interval struct {
	Type  IntervalType `json:"type" db:"interval_type"`
	Value int          `json:"value" db:"interval_value"`
}

// ScheduleKind categorizes a recurring obligation.
type ScheduleKind string

const (
	KindPeriodicMaintenance ScheduleKind = "periodic_maintenance"
	KindReplacement         ScheduleKind = "replacement"
	KindCertification       ScheduleKind = "certification"
	KindInspection          ScheduleKind = "inspection"
)

// MaintenanceSchedule defines a recurring obligation against a target.
// Deactivated schedules are kept for history but excluded from due-date computation.
type MaintenanceSchedule struct {
	ID           string       `json:"id" db:"id"`
	Kind         ScheduleKind `json:"kind" db:"kind"`
	Target       TargetRef    `json:"target"`
	TargetLabel  string       `json:"target_label" db:"target_label"`
	Title        string       `json:"title" db:"title"`
	Description  string       `json:"description,omitempty" db:"description"`
	Interval     Interval     `json:"interval"`
	CostEstimate float64      `json:"cost_estimate" db:"cost_estimate"`
	Active       bool         `json:"active" db:"active"`
	CreatedAt    time.Time    `json:"created_at" db:"created_at"`
}

// MaintenanceRecord is one completed (or planned) unit of work, optionally tied
// to a schedule. NextDueDate, when set, overrides the computed due date.
type MaintenanceRecord struct {
	ID            string    `json:"id" db:"id"`
	ScheduleID    string    `json:"schedule_id,omitempty" db:"schedule_id"`
	Target        TargetRef `json:"target"`
	WorkType      string    `json:"work_type" db:"work_type"`
	PerformedBy   string    `json:"performed_by,omitempty" db:"performed_by"`
	PerformedDate time.Time `json:"performed_date" db:"performed_date"`
	NextDueDate   time.Time `json:"next_due_date,omitempty" db:"next_due_date"`
	Completed     bool      `json:"completed" db:"completed"`
	Cost          float64   `json:"cost" db:"cost"`
	Notes         string    `json:"notes,omitempty" db:"notes"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// Certification is a dated attestation with a validity window, e.g. a
// hydrostatic hose test. For a given (item, type, location) only the row with
// the latest certification date is authoritative.
type Certification struct {
	ID                string    `json:"id" db:"id"`
	ItemID            string    `json:"item_id" db:"item_id"`
	ItemName          string    `json:"item_name" db:"item_name"`
	Location          string    `json:"location,omitempty" db:"location"`
	Type              string    `json:"type" db:"certification_type"`
	CertificationDate time.Time `json:"certification_date" db:"certification_date"`
	ExpirationDate    time.Time `json:"expiration_date" db:"expiration_date"`
	Agency            string    `json:"agency,omitempty" db:"agency"`
	CertificateNumber string    `json:"certificate_number,omitempty" db:"certificate_number"`
	Passed            bool      `json:"passed" db:"passed"`
	Notes             string    `json:"notes,omitempty" db:"notes"`
}

// StockLevel is the quantity of an item held at one location, joined with the
// item's minimum-quantity threshold.
type StockLevel struct {
	ItemID      string `json:"item_id" db:"item_id"`
	ItemName    string `json:"item_name" db:"item_name"`
	Location    string `json:"location" db:"location"`
	Quantity    int    `json:"quantity" db:"quantity"`
	MinQuantity int    `json:"min_quantity" db:"min_quantity"`
}

// Shortage returns how far below the minimum the stock level is.
// Meaningful only when positive.
func (s StockLevel) Shortage() int {
	return s.MinQuantity - s.Quantity
}

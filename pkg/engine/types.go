package engine

import (
	"time"

	"github.com/stationops/fleetwatch/pkg/alerts"
	"github.com/stationops/fleetwatch/pkg/model"
)

// Re-export types from model package for convenience.
type (
	MaintenanceSchedule = model.MaintenanceSchedule
	MaintenanceRecord   = model.MaintenanceRecord
	Certification       = model.Certification
	StockLevel          = model.StockLevel
	Interval            = model.Interval
	TargetRef           = model.TargetRef
)

// Feed is the ordered alert sequence produced by one aggregation pass. It is
// derived from current entity state and never persisted; callers re-invoke
// the engine for a fresh view.
type Feed struct {
	// Alerts is ordered by severity rank, then urgency ascending, then
	// description.
	Alerts []alerts.Alert `json:"alerts"`

	// Indeterminate lists active schedules with usage-based intervals
	// (hours, miles). These have no calendar due date and require manual
	// tracking.
	Indeterminate []IndeterminateSchedule `json:"indeterminate,omitempty"`

	// Degraded names the entity sources that could not be read. A non-empty
	// value means the feed is incomplete, not that it is invalid.
	Degraded []string `json:"degraded,omitempty"`

	// GeneratedAt is the instant all classifications were computed against.
	GeneratedAt time.Time `json:"generated_at"`
}

// IndeterminateSchedule describes a schedule excluded from date-driven
// alerting because its interval is usage-based.
type IndeterminateSchedule struct {
	ScheduleID  string         `json:"schedule_id"`
	Title       string         `json:"title"`
	TargetLabel string         `json:"target_label"`
	Interval    model.Interval `json:"interval"`
}

// Source names used in Feed.Degraded.
const (
	SourceMaintenance    = "maintenance"
	SourceCertifications = "certifications"
	SourceStock          = "stock"
)

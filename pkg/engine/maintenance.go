package engine

import (
	"fmt"
	"time"

	"github.com/stationops/fleetwatch/pkg/alerts"
	"github.com/stationops/fleetwatch/pkg/calendar"
	"github.com/stationops/fleetwatch/pkg/model"
)

// dueState is the outcome of resolving one schedule against its history.
type dueState struct {
	alert         *alerts.Alert
	indeterminate bool
	costDue       float64
}

// resolveSchedule determines the current due state of one active schedule
// from its full record history.
//
// The latest completed record is authoritative. An explicit next-due date on
// that record overrides the computed one (operators may record extensions).
// A schedule that has never been serviced is treated as due immediately,
// since no baseline exists to compute from.
func (e *Engine) resolveSchedule(sched model.MaintenanceSchedule, records []model.MaintenanceRecord, now time.Time) (dueState, error) {
	if err := sched.Target.Validate(); err != nil {
		return dueState{}, fmt.Errorf("schedule %q: %w", sched.ID, err)
	}
	if !sched.Interval.Type.Valid() || sched.Interval.Value <= 0 {
		return dueState{}, fmt.Errorf("schedule %q: invalid interval %s/%d", sched.ID, sched.Interval.Type, sched.Interval.Value)
	}

	if !sched.Interval.Type.CalendarBased() {
		return dueState{indeterminate: true}, nil
	}

	last, ok := latestCompleted(records)
	if !ok {
		return dueState{
			alert: &alerts.Alert{
				Type:        alerts.TypeNeverServiced,
				Severity:    alerts.SeverityWarning,
				Description: fmt.Sprintf("%s for %s has never been performed", sched.Title, sched.TargetLabel),
				Urgency:     0,
				Location:    sched.TargetLabel,
			},
			costDue: sched.CostEstimate,
		}, nil
	}

	dueDate := last.NextDueDate
	if dueDate.IsZero() {
		dueDate, _ = calendar.AddInterval(last.PerformedDate, sched.Interval)
	}

	days := calendar.DaysUntil(dueDate, now)
	switch {
	case days < 0:
		return dueState{
			alert: &alerts.Alert{
				Type:        alerts.TypeMaintenanceOverdue,
				Severity:    alerts.SeverityCritical,
				Description: fmt.Sprintf("%s for %s overdue by %d days", sched.Title, sched.TargetLabel, -days),
				Urgency:     days,
				Location:    sched.TargetLabel,
			},
			costDue: sched.CostEstimate,
		}, nil
	case days <= e.warnWindowDays:
		return dueState{
			alert: &alerts.Alert{
				Type:        alerts.TypeMaintenanceDue,
				Severity:    alerts.SeverityWarning,
				Description: fmt.Sprintf("%s for %s due in %d days", sched.Title, sched.TargetLabel, days),
				Urgency:     days,
				Location:    sched.TargetLabel,
			},
			costDue: sched.CostEstimate,
		}, nil
	default:
		return dueState{}, nil
	}
}

// latestCompleted selects the authoritative record: completed, with the
// maximum performed date. Selection is explicit rather than relying on any
// storage-level ordering.
func latestCompleted(records []model.MaintenanceRecord) (model.MaintenanceRecord, bool) {
	var best model.MaintenanceRecord
	found := false
	for _, r := range records {
		if !r.Completed {
			continue
		}
		if !found || r.PerformedDate.After(best.PerformedDate) {
			best = r
			found = true
		}
	}
	return best, found
}

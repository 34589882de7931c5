package engine

import (
	"context"
	"fmt"
	"time"
)

// CostProjection summarizes the estimated spend implied by the current feed.
type CostProjection struct {
	DueCount     int     `json:"due_count"`
	EstimatedUSD float64 `json:"estimated_usd"`
}

// ProjectedCost sums the cost estimates of every schedule that is currently
// due, overdue or never serviced. Usage-based and on-schedule entries
// contribute nothing.
func (e *Engine) ProjectedCost(ctx context.Context, now time.Time) (*CostProjection, error) {
	schedules, err := e.storage.ListActiveSchedules(ctx)
	if err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	records, err := e.storage.ListRecordsBySchedule(ctx)
	if err != nil {
		return nil, fmt.Errorf("list maintenance records: %w", err)
	}

	proj := &CostProjection{}
	for _, sched := range schedules {
		state, err := e.resolveSchedule(sched, records[sched.ID], now)
		if err != nil {
			e.logger.Warn("schedule skipped", "schedule_id", sched.ID, "error", err)
			continue
		}
		if state.alert != nil {
			proj.DueCount++
			proj.EstimatedUSD += state.costDue
		}
	}
	return proj, nil
}

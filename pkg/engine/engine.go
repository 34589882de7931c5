// Package engine derives the maintenance and certification alert feed.
//
// The engine is stateless between invocations: every feed request re-reads
// entity snapshots from storage and recomputes from scratch against a single
// "now" instant, so concurrent requests need no coordination.
package engine

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/stationops/fleetwatch/pkg/alerts"
	"github.com/stationops/fleetwatch/pkg/storage"
)

// DefaultWarningWindowDays is how far ahead due dates and expirations are
// surfaced as warnings.
const DefaultWarningWindowDays = 30

// Engine computes alert feeds from current fleet state.
type Engine struct {
	storage        storage.Storage
	warnWindowDays int
	logger         *slog.Logger
}

// New creates an alert engine. A warnWindowDays of 0 selects the default of
// 30 days.
func New(store storage.Storage, warnWindowDays int, logger *slog.Logger) *Engine {
	if warnWindowDays <= 0 {
		warnWindowDays = DefaultWarningWindowDays
	}
	return &Engine{
		storage:        store,
		warnWindowDays: warnWindowDays,
		logger:         logger,
	}
}

// GetAlertFeed computes the full ordered alert feed as of now.
//
// A failing read for one entity source empties that source's contribution and
// records it in Feed.Degraded rather than failing the whole feed. Rows with
// integrity problems (invalid target or interval) are logged and skipped.
// Given identical stored data and the same now, the output is identical.
func (e *Engine) GetAlertFeed(ctx context.Context, now time.Time) (*Feed, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	feed := &Feed{GeneratedAt: now}

	feed.Alerts = append(feed.Alerts, e.maintenanceAlerts(ctx, feed, now)...)
	feed.Alerts = append(feed.Alerts, e.certificationAlerts(ctx, feed, now)...)
	feed.Alerts = append(feed.Alerts, e.stockAlerts(ctx, feed)...)

	sort.SliceStable(feed.Alerts, func(i, j int) bool {
		return alerts.Less(feed.Alerts[i], feed.Alerts[j])
	})

	return feed, nil
}

func (e *Engine) maintenanceAlerts(ctx context.Context, feed *Feed, now time.Time) []alerts.Alert {
	schedules, err := e.storage.ListActiveSchedules(ctx)
	if err != nil {
		e.logger.Error("read schedules", "error", err)
		feed.Degraded = append(feed.Degraded, SourceMaintenance)
		return nil
	}

	records, err := e.storage.ListRecordsBySchedule(ctx)
	if err != nil {
		e.logger.Error("read maintenance records", "error", err)
		feed.Degraded = append(feed.Degraded, SourceMaintenance)
		return nil
	}

	var out []alerts.Alert
	for _, sched := range schedules {
		state, err := e.resolveSchedule(sched, records[sched.ID], now)
		if err != nil {
			e.logger.Warn("schedule skipped", "schedule_id", sched.ID, "error", err)
			continue
		}
		if state.indeterminate {
			feed.Indeterminate = append(feed.Indeterminate, IndeterminateSchedule{
				ScheduleID:  sched.ID,
				Title:       sched.Title,
				TargetLabel: sched.TargetLabel,
				Interval:    sched.Interval,
			})
			continue
		}
		if state.alert != nil {
			out = append(out, *state.alert)
		}
	}
	return out
}

func (e *Engine) certificationAlerts(ctx context.Context, feed *Feed, now time.Time) []alerts.Alert {
	certs, err := e.storage.ListCertifications(ctx)
	if err != nil {
		e.logger.Error("read certifications", "error", err)
		feed.Degraded = append(feed.Degraded, SourceCertifications)
		return nil
	}
	return e.resolveCertifications(certs, now)
}

func (e *Engine) stockAlerts(ctx context.Context, feed *Feed) []alerts.Alert {
	levels, err := e.storage.ListStockLevels(ctx)
	if err != nil {
		e.logger.Error("read stock levels", "error", err)
		feed.Degraded = append(feed.Degraded, SourceStock)
		return nil
	}
	return e.resolveStock(levels)
}

// Package calendar provides the date arithmetic behind due-date computation.
// All functions work at whole-day granularity in UTC.
package calendar

import (
	"time"

	"github.com/stationops/fleetwatch/pkg/model"
)

// AddInterval advances base by the given interval. Months and years are added
// with end-of-month clamping: Jan 31 + 1 month is Feb 28 (Feb 29 in a leap
// year), and Feb 29 + 1 year is Feb 28. For usage-based intervals (hours,
// miles) there is no calendar answer; ok is false and the zero time is
// returned.
func AddInterval(base time.Time, iv model.Interval) (due time.Time, ok bool) {
	switch iv.Type {
	case model.IntervalMonths:
		return addMonths(base, iv.Value), true
	case model.IntervalYears:
		return addMonths(base, 12*iv.Value), true
	default:
		return time.Time{}, false
	}
}

// DaysUntil returns the signed whole-day difference target - now. Both
// arguments are truncated to their calendar date first, so times of day never
// produce fractional results. Negative means target is in the past.
func DaysUntil(target, now time.Time) int {
	t := truncateToDay(target)
	n := truncateToDay(now)
	return int(t.Sub(n).Hours() / 24)
}

// addMonths advances the month field, clamping the day-of-month to the last
// valid day of the resulting month. time.AddDate is unsuitable here: it
// normalizes Jan 31 + 1 month to Mar 2/3 instead of clamping to February.
func addMonths(base time.Time, months int) time.Time {
	y, m, d := base.Date()
	first := time.Date(y, m+time.Month(months), 1, 0, 0, 0, 0, time.UTC)
	if last := daysInMonth(first.Year(), first.Month()); d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC)
}

// daysInMonth returns the number of days in the given month. Day 0 of the
// following month normalizes to the last day of this one.
func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

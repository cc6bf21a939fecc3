// Package valueobject contains domain value objects for the Expense Bot core.
package valueobject

import (
	"fmt"
	"time"
)

// PeriodWindow is a half-open [Start, End) range of account-local calendar
// dates used to bound spend aggregation.
type PeriodWindow struct {
	Start time.Time
	End   time.Time
}

// MonthWindow returns the window covering one calendar month.
func MonthWindow(year int, month time.Month) PeriodWindow {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return PeriodWindow{Start: start, End: start.AddDate(0, 1, 0)}
}

// YearWindow returns the window covering one calendar year.
func YearWindow(year int) PeriodWindow {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return PeriodWindow{Start: start, End: start.AddDate(1, 0, 0)}
}

// PreviousMonth returns the year and month immediately before the given one.
func PreviousMonth(year int, month time.Month) (int, time.Month) {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return t.Year(), t.Month()
}

// Contains reports whether the date falls inside the window.
func (w PeriodWindow) Contains(date time.Time) bool {
	return !date.Before(w.Start) && date.Before(w.End)
}

// WeekKey returns the dedupe key for a weekly digest period, e.g. "2026-W35".
// ISO week numbering keeps the key stable across year boundaries.
func WeekKey(date time.Time) string {
	year, week := date.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

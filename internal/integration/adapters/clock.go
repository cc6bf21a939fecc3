package adapters

import (
	"log/slog"
	"time"

	"github.com/expensebot/backend/internal/application/adapter"
)

// TimezoneClock implements adapter.Clock against the real wall clock.
// Unknown or empty timezones fall back to the configured default so a bad
// account setting never breaks date derivation.
type TimezoneClock struct {
	defaultLocation *time.Location
}

// NewTimezoneClock creates a clock with the given default IANA timezone.
// An unloadable default degrades to UTC.
func NewTimezoneClock(defaultTimezone string) *TimezoneClock {
	loc, err := time.LoadLocation(defaultTimezone)
	if err != nil {
		slog.Warn("Unknown default timezone, falling back to UTC", "timezone", defaultTimezone)
		loc = time.UTC
	}
	return &TimezoneClock{defaultLocation: loc}
}

// Now returns the current absolute time in UTC.
func (c *TimezoneClock) Now() time.Time {
	return time.Now().UTC()
}

// LocalDate returns today's calendar date in the given timezone, normalized
// to midnight UTC for stable storage and comparison.
func (c *TimezoneClock) LocalDate(timezone string) time.Time {
	loc := c.defaultLocation
	if timezone != "" {
		if l, err := time.LoadLocation(timezone); err == nil {
			loc = l
		}
	}

	now := time.Now().In(loc)
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Ensure implementation satisfies the interface.
var _ adapter.Clock = (*TimezoneClock)(nil)

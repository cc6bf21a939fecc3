// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import "time"

// Clock provides the current time and the account-local calendar date. All
// due-date evaluation and aggregation keys off local calendar dates, never
// absolute instants, which is why the two are separate methods.
type Clock interface {
	// Now returns the current absolute time in UTC.
	Now() time.Time

	// LocalDate returns today's calendar date in the given IANA timezone
	// (midnight UTC-normalized). An empty or unknown timezone falls back to
	// the configured default.
	LocalDate(timezone string) time.Time
}

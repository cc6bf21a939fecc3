package mock

import (
	"sync"
	"time"

	"github.com/expensebot/backend/internal/application/adapter"
)

// Clock is a settable adapter.Clock. Scenarios pin "today" so due-date and
// period assertions stay deterministic.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a clock starting at the real current time.
func NewClock() *Clock {
	return &Clock{now: time.Now().UTC()}
}

// Set moves the clock to the given instant.
func (c *Clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// Now returns the pinned instant.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// LocalDate returns the pinned instant's calendar date in the given
// timezone, normalized to midnight UTC like the production clock.
func (c *Clock) LocalDate(timezone string) time.Time {
	loc := time.UTC
	if timezone != "" {
		if l, err := time.LoadLocation(timezone); err == nil {
			loc = l
		}
	}
	local := c.Now().In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

var _ adapter.Clock = (*Clock)(nil)

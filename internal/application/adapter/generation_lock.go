// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// GenerationLock serializes the check-then-insert region of recurring
// generation per (rule, date) pair, so two overlapping generation passes
// cannot double-post. The database unique index is the backstop; the lock
// keeps the common path conflict-free.
type GenerationLock interface {
	// TryAcquire attempts to take the lock for the rule and local date.
	// Returns false when another pass holds it.
	TryAcquire(ctx context.Context, ruleID uuid.UUID, localDate time.Time) (bool, error)

	// Release frees the lock. Safe to call after expiry.
	Release(ctx context.Context, ruleID uuid.UUID, localDate time.Time) error
}

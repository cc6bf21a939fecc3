// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/expensebot/backend/internal/domain/entity"
	"github.com/expensebot/backend/internal/domain/valueobject"
)

// LedgerRepository defines the interface for posted-transaction persistence.
// The ledger is the single source of truth for spend totals: the budget and
// recurring engines recompute from it on every query and cache nothing.
type LedgerRepository interface {
	// Post appends a new transaction to the ledger.
	Post(ctx context.Context, tx *entity.Transaction) error

	// FindByRef resolves a full id or short prefix reference, scoped to the
	// account. Returns ErrRefNotFound / ErrRefAmbiguous on resolution failure.
	FindByRef(ctx context.Context, accountID int64, ref string) (*entity.Transaction, error)

	// Update persists changes to the user-correctable fields.
	Update(ctx context.Context, tx *entity.Transaction) error

	// Delete removes a transaction (soft delete, supports undo).
	Delete(ctx context.Context, accountID int64, id uuid.UUID) error

	// ListRecent retrieves the most recently created transactions, newest first.
	ListRecent(ctx context.Context, accountID int64, limit int) ([]*entity.Transaction, error)

	// Search performs a keyword search across label, category, tags and note,
	// newest first, up to limit results.
	Search(ctx context.Context, accountID int64, query string, limit int) ([]*entity.Transaction, error)

	// ExistsForRuleOnDate reports whether a transaction generated by the given
	// rule is already posted for the given local date.
	ExistsForRuleOnDate(ctx context.Context, ruleID uuid.UUID, localDate time.Time) (bool, error)

	// SumByScope returns the total spend inside the window, optionally
	// filtered to one category. An empty category means the whole account.
	SumByScope(ctx context.Context, accountID int64, window valueobject.PeriodWindow, category string) (int64, error)

	// TotalsForWindow returns the overall total plus per-category breakdown
	// for the window.
	TotalsForWindow(ctx context.Context, accountID int64, window valueobject.PeriodWindow) (valueobject.PeriodTotals, error)
}

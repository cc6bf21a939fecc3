// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/expensebot/backend/internal/domain/entity"
)

// RecurringRuleRepository defines the interface for recurring rule persistence.
type RecurringRuleRepository interface {
	// Create persists a new rule.
	Create(ctx context.Context, rule *entity.RecurringRule) error

	// FindByRef resolves a full id or short prefix reference, scoped to the
	// account. Returns ErrRefNotFound / ErrRefAmbiguous on resolution failure.
	FindByRef(ctx context.Context, accountID int64, ref string) (*entity.RecurringRule, error)

	// ListByAccount retrieves all rules for an account, newest first,
	// regardless of lifecycle state.
	ListByAccount(ctx context.Context, accountID int64) ([]*entity.RecurringRule, error)

	// ListEligible retrieves every active, unpaused rule across all accounts.
	// The generation pass filters due dates itself.
	ListEligible(ctx context.Context) ([]*entity.RecurringRule, error)

	// Update persists lifecycle and countdown changes.
	Update(ctx context.Context, rule *entity.RecurringRule) error
}

// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/expensebot/backend/internal/domain/entity"
)

// BudgetRepository defines the interface for budget persistence.
type BudgetRepository interface {
	// Create persists a new budget.
	Create(ctx context.Context, budget *entity.Budget) error

	// FindByRef resolves a full id or short prefix reference among the
	// account's active budgets. Returns ErrRefNotFound / ErrRefAmbiguous on
	// resolution failure.
	FindByRef(ctx context.Context, accountID int64, ref string) (*entity.Budget, error)

	// ListActive retrieves the account's active budgets.
	ListActive(ctx context.Context, accountID int64) ([]*entity.Budget, error)

	// Update persists lifecycle changes (soft delete).
	Update(ctx context.Context, budget *entity.Budget) error
}

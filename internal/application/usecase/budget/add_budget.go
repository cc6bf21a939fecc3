// Package budget contains budget-related use cases.
package budget

import (
	"context"

	"github.com/expensebot/backend/internal/application/adapter"
	"github.com/expensebot/backend/internal/domain/entity"
	domainerror "github.com/expensebot/backend/internal/domain/error"
)

// AddBudgetInput represents the input for adding a budget.
type AddBudgetInput struct {
	AccountID int64
	Scope     entity.BudgetScope
	Category  string // scope value; empty for overall
	Limit     int64  // minor units
	Period    entity.BudgetPeriod
}

// AddBudgetOutput represents the output of adding a budget.
type AddBudgetOutput struct {
	Budget *entity.Budget
}

// AddBudgetUseCase handles budget creation.
type AddBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewAddBudgetUseCase creates a new AddBudgetUseCase instance.
func NewAddBudgetUseCase(budgetRepo adapter.BudgetRepository) *AddBudgetUseCase {
	return &AddBudgetUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute validates and persists the budget. Exactly one of "scope is
// overall" and "category is set" must hold.
func (uc *AddBudgetUseCase) Execute(ctx context.Context, input AddBudgetInput) (*AddBudgetOutput, error) {
	switch input.Scope {
	case entity.BudgetScopeCategory:
		if input.Category == "" {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeInvalidScope,
				"category budgets need a category",
				domainerror.ErrInvalidScope,
			)
		}
	case entity.BudgetScopeOverall:
		if input.Category != "" {
			return nil, domainerror.NewBudgetError(
				domainerror.ErrCodeInvalidScope,
				"overall budgets cannot name a category",
				domainerror.ErrInvalidScope,
			)
		}
	default:
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidScope,
			"unrecognized scope kind",
			domainerror.ErrInvalidScope,
		)
	}

	if !entity.ValidBudgetPeriod(input.Period) {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidPeriod,
			"unrecognized budget period",
			domainerror.ErrInvalidPeriod,
		)
	}

	if input.Limit <= 0 {
		return nil, domainerror.NewBudgetError(
			domainerror.ErrCodeInvalidLimitAmount,
			"budget limit must be positive",
			domainerror.ErrInvalidLimitAmount,
		)
	}

	budget := entity.NewBudget(input.AccountID, input.Scope, input.Category, input.Limit, input.Period)
	if err := uc.budgetRepo.Create(ctx, budget); err != nil {
		return nil, err
	}

	return &AddBudgetOutput{Budget: budget}, nil
}

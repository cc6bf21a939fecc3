package budget

import (
	"context"

	"github.com/expensebot/backend/internal/application/adapter"
	"github.com/expensebot/backend/internal/domain/entity"
)

// DeleteBudgetInput represents the input for deleting a budget.
type DeleteBudgetInput struct {
	AccountID int64
	Ref       string // full id or short prefix
}

// DeleteBudgetOutput represents the output of deleting a budget.
type DeleteBudgetOutput struct {
	Budget *entity.Budget
}

// DeleteBudgetUseCase handles budget soft deletion.
type DeleteBudgetUseCase struct {
	budgetRepo adapter.BudgetRepository
}

// NewDeleteBudgetUseCase creates a new DeleteBudgetUseCase instance.
func NewDeleteBudgetUseCase(budgetRepo adapter.BudgetRepository) *DeleteBudgetUseCase {
	return &DeleteBudgetUseCase{
		budgetRepo: budgetRepo,
	}
}

// Execute resolves the reference and flips the budget inactive. The row is
// never removed.
func (uc *DeleteBudgetUseCase) Execute(ctx context.Context, input DeleteBudgetInput) (*DeleteBudgetOutput, error) {
	budget, err := uc.budgetRepo.FindByRef(ctx, input.AccountID, input.Ref)
	if err != nil {
		return nil, err
	}

	budget.Active = false
	if err := uc.budgetRepo.Update(ctx, budget); err != nil {
		return nil, err
	}

	return &DeleteBudgetOutput{Budget: budget}, nil
}

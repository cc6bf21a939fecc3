package recurring

import (
	"context"

	"github.com/expensebot/backend/internal/application/adapter"
	"github.com/expensebot/backend/internal/domain/entity"
)

// ListRulesInput represents the input for listing recurring rules.
type ListRulesInput struct {
	AccountID int64
}

// ListRulesOutput represents the output of listing recurring rules,
// newest first.
type ListRulesOutput struct {
	Rules []*entity.RecurringRule
}

// ListRulesUseCase handles recurring rule listing.
type ListRulesUseCase struct {
	ruleRepo adapter.RecurringRuleRepository
}

// NewListRulesUseCase creates a new ListRulesUseCase instance.
func NewListRulesUseCase(ruleRepo adapter.RecurringRuleRepository) *ListRulesUseCase {
	return &ListRulesUseCase{
		ruleRepo: ruleRepo,
	}
}

// Execute performs the listing. Pure read, no side effects.
func (uc *ListRulesUseCase) Execute(ctx context.Context, input ListRulesInput) (*ListRulesOutput, error) {
	rules, err := uc.ruleRepo.ListByAccount(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}
	return &ListRulesOutput{Rules: rules}, nil
}

package recurring

import (
	"context"

	"github.com/expensebot/backend/internal/application/adapter"
	"github.com/expensebot/backend/internal/domain/entity"
	domainerror "github.com/expensebot/backend/internal/domain/error"
)

// UpdateRuleStateInput represents the input for a pause/resume/cancel state
// change. Nil fields are left untouched.
type UpdateRuleStateInput struct {
	AccountID int64
	Ref       string
	Active    *bool
	Paused    *bool
}

// UpdateRuleStateOutput represents the output of a state change.
type UpdateRuleStateOutput struct {
	Rule *entity.RecurringRule
}

// UpdateRuleStateUseCase handles rule lifecycle transitions.
type UpdateRuleStateUseCase struct {
	ruleRepo adapter.RecurringRuleRepository
}

// NewUpdateRuleStateUseCase creates a new UpdateRuleStateUseCase instance.
func NewUpdateRuleStateUseCase(ruleRepo adapter.RecurringRuleRepository) *UpdateRuleStateUseCase {
	return &UpdateRuleStateUseCase{
		ruleRepo: ruleRepo,
	}
}

// Execute resolves the reference and applies the requested transitions. The
// terminal state cannot be left: reactivating or pausing a cancelled rule
// fails with ErrRuleTerminal.
func (uc *UpdateRuleStateUseCase) Execute(ctx context.Context, input UpdateRuleStateInput) (*UpdateRuleStateOutput, error) {
	rule, err := uc.ruleRepo.FindByRef(ctx, input.AccountID, input.Ref)
	if err != nil {
		return nil, err
	}

	if input.Active != nil {
		if *input.Active {
			if !rule.Active {
				return nil, domainerror.NewRecurringError(
					domainerror.ErrCodeRuleTerminal,
					"cancelled rules cannot be reactivated",
					domainerror.ErrRuleTerminal,
				)
			}
		} else {
			rule.Cancel()
		}
	}

	if input.Paused != nil {
		var ok bool
		if *input.Paused {
			ok = rule.Pause()
		} else {
			ok = rule.Resume()
		}
		if !ok {
			return nil, domainerror.NewRecurringError(
				domainerror.ErrCodeRuleTerminal,
				"cancelled rules cannot be paused or resumed",
				domainerror.ErrRuleTerminal,
			)
		}
	}

	if err := uc.ruleRepo.Update(ctx, rule); err != nil {
		return nil, err
	}

	return &UpdateRuleStateOutput{Rule: rule}, nil
}

// Package recurring contains recurring-rule use cases.
package recurring

import (
	"context"
	"time"

	"github.com/expensebot/backend/internal/application/adapter"
	"github.com/expensebot/backend/internal/domain/entity"
	domainerror "github.com/expensebot/backend/internal/domain/error"
)

// CreateRuleInput represents the input for creating a recurring rule.
type CreateRuleInput struct {
	AccountID   int64
	Label       string
	Amount      int64 // minor units
	Currency    string
	Category    string
	Tags        string
	Note        string
	Frequency   entity.Frequency
	DayOfWeek   *time.Weekday // weekly anchor override
	DayOfMonth  *int          // monthly anchor override
	RepeatCount *int          // nil means infinite
}

// CreateRuleOutput represents the output of creating a recurring rule.
type CreateRuleOutput struct {
	Rule *entity.RecurringRule
}

// CreateRuleUseCase handles recurring rule creation.
type CreateRuleUseCase struct {
	ruleRepo    adapter.RecurringRuleRepository
	accountRepo adapter.AccountRepository
	clock       adapter.Clock
}

// NewCreateRuleUseCase creates a new CreateRuleUseCase instance.
func NewCreateRuleUseCase(ruleRepo adapter.RecurringRuleRepository, accountRepo adapter.AccountRepository, clock adapter.Clock) *CreateRuleUseCase {
	return &CreateRuleUseCase{
		ruleRepo:    ruleRepo,
		accountRepo: accountRepo,
		clock:       clock,
	}
}

// Execute performs the rule creation. Weekly and monthly anchors default to
// the account-local "today" unless explicitly overridden.
func (uc *CreateRuleUseCase) Execute(ctx context.Context, input CreateRuleInput) (*CreateRuleOutput, error) {
	if input.Label == "" {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeMissingRuleFields,
			"rule label is required",
			domainerror.ErrMissingLabel,
		)
	}
	if input.Amount <= 0 {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeMissingRuleFields,
			"rule amount must be positive",
			domainerror.ErrInvalidAmount,
		)
	}

	if input.RepeatCount != nil && *input.RepeatCount <= 0 {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidRecurrence,
			"repeat count must be positive",
			domainerror.ErrInvalidRecurrence,
		)
	}

	today := uc.clock.LocalDate(accountTimezone(ctx, uc.accountRepo, input.AccountID))

	schedule, ok := entity.NewSchedule(input.Frequency, input.DayOfWeek, input.DayOfMonth, today)
	if !ok {
		return nil, domainerror.NewRecurringError(
			domainerror.ErrCodeInvalidRecurrence,
			"unrecognized frequency",
			domainerror.ErrInvalidRecurrence,
		)
	}

	rule := entity.NewRecurringRule(input.AccountID, entity.Template{
		Label:    input.Label,
		Amount:   input.Amount,
		Currency: input.Currency,
		Category: input.Category,
		Tags:     input.Tags,
		Note:     input.Note,
	}, schedule, input.RepeatCount)

	if err := uc.ruleRepo.Create(ctx, rule); err != nil {
		return nil, err
	}

	return &CreateRuleOutput{Rule: rule}, nil
}

// accountTimezone resolves the account's configured timezone; empty when the
// account is unknown, which makes the clock fall back to the default.
func accountTimezone(ctx context.Context, repo adapter.AccountRepository, accountID int64) string {
	account, err := repo.FindByID(ctx, accountID)
	if err != nil || account == nil {
		return ""
	}
	return account.Timezone
}

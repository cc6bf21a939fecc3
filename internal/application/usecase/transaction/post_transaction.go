// Package transaction contains ledger transaction use cases.
package transaction

import (
	"context"
	"strings"

	"github.com/expensebot/backend/internal/application/adapter"
	"github.com/expensebot/backend/internal/application/usecase/recurring"
	"github.com/expensebot/backend/internal/domain/entity"
	domainerror "github.com/expensebot/backend/internal/domain/error"
)

const recurrenceDirectivePrefix = "recurring:"

// PostTransactionInput represents the input for posting a transaction.
type PostTransactionInput struct {
	AccountID  int64
	Label      string
	Amount     int64 // minor units
	Currency   string
	Category   string
	Tags       string // comma-separated
	Note       string
	ReceiptRef string
}

// PostTransactionOutput represents the result of a post. CreatedRule is set
// when the tags carried a recurrence directive.
type PostTransactionOutput struct {
	Transaction *entity.Transaction
	CreatedRule *entity.RecurringRule
}

// PostTransactionUseCase appends a manually entered transaction to the
// ledger. Accounts are created lazily on first post. Tags may carry a
// recurrence directive ("recurring:monthly" etc.); the directive is stripped
// from the stored tags and a recurring rule is created from the transaction
// as template.
type PostTransactionUseCase struct {
	ledgerRepo  adapter.LedgerRepository
	accountRepo adapter.AccountRepository
	createRule  *recurring.CreateRuleUseCase
	clock       adapter.Clock
}

// NewPostTransactionUseCase creates a new PostTransactionUseCase instance.
func NewPostTransactionUseCase(
	ledgerRepo adapter.LedgerRepository,
	accountRepo adapter.AccountRepository,
	createRule *recurring.CreateRuleUseCase,
	clock adapter.Clock,
) *PostTransactionUseCase {
	return &PostTransactionUseCase{
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
		createRule:  createRule,
		clock:       clock,
	}
}

// Execute validates and posts the transaction, creating the account and any
// directive-driven recurring rule along the way.
func (uc *PostTransactionUseCase) Execute(ctx context.Context, input PostTransactionInput) (*PostTransactionOutput, error) {
	if input.Label == "" {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeMissingLabel,
			"transaction label is required",
			domainerror.ErrMissingLabel,
		)
	}
	if input.Amount <= 0 {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidAmount,
			"transaction amount must be positive",
			domainerror.ErrInvalidAmount,
		)
	}

	account, err := uc.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}
	if account == nil {
		account = entity.NewAccount(input.AccountID, "", "")
		if err := uc.accountRepo.Upsert(ctx, account); err != nil {
			return nil, err
		}
	}

	tags, frequency := splitRecurrenceDirective(input.Tags)

	localDate := uc.clock.LocalDate(account.Timezone)
	tx := entity.NewTransaction(input.AccountID, input.Label, input.Amount, input.Currency, localDate)
	tx.Category = input.Category
	tx.Tags = tags
	tx.Note = input.Note
	tx.ReceiptRef = input.ReceiptRef

	if err := uc.ledgerRepo.Post(ctx, tx); err != nil {
		return nil, err
	}

	output := &PostTransactionOutput{Transaction: tx}

	if frequency != "" {
		ruleOut, err := uc.createRule.Execute(ctx, recurring.CreateRuleInput{
			AccountID: input.AccountID,
			Label:     input.Label,
			Amount:    input.Amount,
			Currency:  input.Currency,
			Category:  input.Category,
			Tags:      tags,
			Note:      input.Note,
			Frequency: frequency,
		})
		if err != nil {
			return nil, err
		}
		output.CreatedRule = ruleOut.Rule
	}

	return output, nil
}

// splitRecurrenceDirective strips a "recurring:<frequency>" tag from the
// comma-separated tag list. It returns the remaining tags and the frequency,
// empty when no directive was present or the frequency is not recognized.
func splitRecurrenceDirective(tags string) (string, entity.Frequency) {
	if tags == "" {
		return "", ""
	}

	var kept []string
	var frequency entity.Frequency

	for _, raw := range strings.Split(tags, ",") {
		tag := strings.TrimSpace(raw)
		if tag == "" {
			continue
		}
		if value, ok := strings.CutPrefix(tag, recurrenceDirectivePrefix); ok {
			switch f := entity.Frequency(value); f {
			case entity.FrequencyDaily, entity.FrequencyWeekly, entity.FrequencyMonthly:
				frequency = f
				continue
			}
		}
		kept = append(kept, tag)
	}

	return strings.Join(kept, ","), frequency
}

package recurring

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/expensebot/backend/internal/application/adapter"
	"github.com/expensebot/backend/internal/domain/entity"
	domainerror "github.com/expensebot/backend/internal/domain/error"
)

// GenerateDueOutput lists the transactions created by one generation pass.
// An empty list is a normal outcome.
type GenerateDueOutput struct {
	Transactions []*entity.Transaction
}

// GenerateDueUseCase is the sole mutating entry point of the periodic
// scheduler. It evaluates every eligible rule across all accounts against
// the account-local calendar date and materializes the due ones, exactly
// once per (rule, date) no matter how often it runs that day.
type GenerateDueUseCase struct {
	ruleRepo    adapter.RecurringRuleRepository
	ledgerRepo  adapter.LedgerRepository
	accountRepo adapter.AccountRepository
	clock       adapter.Clock
	lock        adapter.GenerationLock
}

// NewGenerateDueUseCase creates a new GenerateDueUseCase instance.
func NewGenerateDueUseCase(
	ruleRepo adapter.RecurringRuleRepository,
	ledgerRepo adapter.LedgerRepository,
	accountRepo adapter.AccountRepository,
	clock adapter.Clock,
	lock adapter.GenerationLock,
) *GenerateDueUseCase {
	return &GenerateDueUseCase{
		ruleRepo:    ruleRepo,
		ledgerRepo:  ledgerRepo,
		accountRepo: accountRepo,
		clock:       clock,
		lock:        lock,
	}
}

// Execute runs one generation pass. A failure on one rule is logged and
// skipped; it never aborts the pass or touches unrelated accounts.
func (uc *GenerateDueUseCase) Execute(ctx context.Context) (*GenerateDueOutput, error) {
	rules, err := uc.ruleRepo.ListEligible(ctx)
	if err != nil {
		return nil, err
	}

	timezones := make(map[int64]string)
	output := &GenerateDueOutput{}

	for _, rule := range rules {
		tz, cached := timezones[rule.AccountID]
		if !cached {
			tz = accountTimezone(ctx, uc.accountRepo, rule.AccountID)
			timezones[rule.AccountID] = tz
		}
		today := uc.clock.LocalDate(tz)

		if !rule.IsDue(today) {
			continue
		}

		tx, err := uc.generateOne(ctx, rule, today)
		if err != nil {
			slog.Error("Recurring generation failed for rule",
				"rule_id", rule.ID,
				"account_id", rule.AccountID,
				"error", err,
			)
			continue
		}
		if tx != nil {
			output.Transactions = append(output.Transactions, tx)
		}
	}

	return output, nil
}

// generateOne performs the check-then-insert for a single due rule. The
// per-rule lock plus the (rule, date) unique index make the region
// effectively atomic: a lost race is reported as already handled, not as a
// failure. Returns nil, nil when the transaction already exists.
func (uc *GenerateDueUseCase) generateOne(ctx context.Context, rule *entity.RecurringRule, today time.Time) (*entity.Transaction, error) {
	acquired, err := uc.lock.TryAcquire(ctx, rule.ID, today)
	if err != nil {
		return nil, err
	}
	if !acquired {
		// Another pass holds the lock; it will generate or already has.
		slog.Debug("Skipping rule held by concurrent generation pass", "rule_id", rule.ID)
		return nil, nil
	}
	defer func() {
		if err := uc.lock.Release(ctx, rule.ID, today); err != nil {
			slog.Warn("Failed to release generation lock", "rule_id", rule.ID, "error", err)
		}
	}()

	exists, err := uc.ledgerRepo.ExistsForRuleOnDate(ctx, rule.ID, today)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}

	tx := rule.MaterializeOn(today)
	if err := uc.ledgerRepo.Post(ctx, tx); err != nil {
		if errors.Is(err, domainerror.ErrGenerationConflict) {
			// The unique index caught a race the lock missed; the other
			// writer won and the day is covered.
			return nil, nil
		}
		return nil, err
	}

	rule.RecordGeneration()
	if err := uc.ruleRepo.Update(ctx, rule); err != nil {
		return nil, err
	}

	return tx, nil
}

package recurring

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/expensebot/backend/internal/domain/entity"
	domainerror "github.com/expensebot/backend/internal/domain/error"
	"github.com/expensebot/backend/internal/domain/valueobject"
)

// fakeRuleRepo is an in-memory RecurringRuleRepository.
type fakeRuleRepo struct {
	rules   []*entity.RecurringRule
	updates int
}

func (f *fakeRuleRepo) Create(_ context.Context, rule *entity.RecurringRule) error {
	f.rules = append(f.rules, rule)
	return nil
}

func (f *fakeRuleRepo) FindByRef(_ context.Context, accountID int64, ref string) (*entity.RecurringRule, error) {
	var matches []*entity.RecurringRule
	for _, r := range f.rules {
		if r.AccountID == accountID && strings.HasPrefix(r.ID.String(), ref) {
			matches = append(matches, r)
		}
	}
	switch len(matches) {
	case 0:
		return nil, domainerror.ErrRefNotFound
	case 1:
		return matches[0], nil
	default:
		return nil, domainerror.ErrRefAmbiguous
	}
}

func (f *fakeRuleRepo) ListByAccount(_ context.Context, accountID int64) ([]*entity.RecurringRule, error) {
	var out []*entity.RecurringRule
	for _, r := range f.rules {
		if r.AccountID == accountID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRuleRepo) ListEligible(_ context.Context) ([]*entity.RecurringRule, error) {
	var out []*entity.RecurringRule
	for _, r := range f.rules {
		if r.Active && !r.Paused {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRuleRepo) Update(_ context.Context, rule *entity.RecurringRule) error {
	f.updates++
	return nil
}

// fakeLedger is an in-memory LedgerRepository covering what generation needs.
type fakeLedger struct {
	posted  []*entity.Transaction
	postErr error
}

func (f *fakeLedger) Post(_ context.Context, tx *entity.Transaction) error {
	if f.postErr != nil {
		return f.postErr
	}
	f.posted = append(f.posted, tx)
	return nil
}

func (f *fakeLedger) FindByRef(_ context.Context, accountID int64, ref string) (*entity.Transaction, error) {
	return nil, domainerror.ErrRefNotFound
}

func (f *fakeLedger) Update(_ context.Context, tx *entity.Transaction) error { return nil }

func (f *fakeLedger) Delete(_ context.Context, accountID int64, id uuid.UUID) error { return nil }

func (f *fakeLedger) ListRecent(_ context.Context, accountID int64, limit int) ([]*entity.Transaction, error) {
	return nil, nil
}

func (f *fakeLedger) Search(_ context.Context, accountID int64, query string, limit int) ([]*entity.Transaction, error) {
	return nil, nil
}

func (f *fakeLedger) ExistsForRuleOnDate(_ context.Context, ruleID uuid.UUID, localDate time.Time) (bool, error) {
	for _, tx := range f.posted {
		if tx.RecurringRuleID != nil && *tx.RecurringRuleID == ruleID && tx.LocalDate.Equal(localDate) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLedger) SumByScope(_ context.Context, accountID int64, window valueobject.PeriodWindow, category string) (int64, error) {
	return 0, nil
}

func (f *fakeLedger) TotalsForWindow(_ context.Context, accountID int64, window valueobject.PeriodWindow) (valueobject.PeriodTotals, error) {
	return valueobject.PeriodTotals{}, nil
}

// fakeAccounts is an in-memory AccountRepository.
type fakeAccounts struct {
	accounts map[int64]*entity.Account
}

func (f *fakeAccounts) Upsert(_ context.Context, account *entity.Account) error {
	if f.accounts == nil {
		f.accounts = make(map[int64]*entity.Account)
	}
	f.accounts[account.ID] = account
	return nil
}

func (f *fakeAccounts) FindByID(_ context.Context, id int64) (*entity.Account, error) {
	return f.accounts[id], nil
}

func (f *fakeAccounts) ListAll(_ context.Context) ([]*entity.Account, error) {
	var out []*entity.Account
	for _, a := range f.accounts {
		out = append(out, a)
	}
	return out, nil
}

// fixedClock pins the local date for every timezone.
type fixedClock struct {
	today time.Time
}

func (c *fixedClock) Now() time.Time             { return c.today }
func (c *fixedClock) LocalDate(string) time.Time { return c.today }

// fakeLock grants or denies every acquisition.
type fakeLock struct {
	deny     bool
	acquired int
	released int
}

func (f *fakeLock) TryAcquire(_ context.Context, ruleID uuid.UUID, localDate time.Time) (bool, error) {
	if f.deny {
		return false, nil
	}
	f.acquired++
	return true, nil
}

func (f *fakeLock) Release(_ context.Context, ruleID uuid.UUID, localDate time.Time) error {
	f.released++
	return nil
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func monthlyRule(accountID int64, day int, repeat *int) *entity.RecurringRule {
	return entity.NewRecurringRule(accountID, entity.Template{
		Label:    "rent",
		Amount:   120000,
		Currency: "USD",
		Category: "housing",
	}, entity.MonthlySchedule{Day: &day}, repeat)
}

func TestGenerateDue(t *testing.T) {
	ctx := context.Background()

	t.Run("materializes a due rule into one transaction", func(t *testing.T) {
		rules := &fakeRuleRepo{}
		ledger := &fakeLedger{}
		clock := &fixedClock{today: date(2026, time.January, 15)}
		rules.rules = append(rules.rules, monthlyRule(42, 15, nil))

		uc := NewGenerateDueUseCase(rules, ledger, &fakeAccounts{}, clock, &fakeLock{})
		out, err := uc.Execute(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Transactions) != 1 {
			t.Fatalf("expected 1 generated transaction, got %d", len(out.Transactions))
		}

		tx := out.Transactions[0]
		if tx.Label != "rent" || tx.Amount != 120000 {
			t.Errorf("template not carried into transaction: %+v", tx)
		}
		if tx.RecurringRuleID == nil || *tx.RecurringRuleID != rules.rules[0].ID {
			t.Error("generated transaction must back-reference its rule")
		}
		if !tx.LocalDate.Equal(clock.today) {
			t.Errorf("expected local date %v, got %v", clock.today, tx.LocalDate)
		}
	})

	t.Run("second pass on the same day is a no-op", func(t *testing.T) {
		rules := &fakeRuleRepo{}
		ledger := &fakeLedger{}
		clock := &fixedClock{today: date(2026, time.January, 15)}
		rules.rules = append(rules.rules, monthlyRule(42, 15, nil))

		uc := NewGenerateDueUseCase(rules, ledger, &fakeAccounts{}, clock, &fakeLock{})
		if _, err := uc.Execute(ctx); err != nil {
			t.Fatalf("first pass: %v", err)
		}
		out, err := uc.Execute(ctx)
		if err != nil {
			t.Fatalf("second pass: %v", err)
		}
		if len(out.Transactions) != 0 {
			t.Errorf("second pass generated %d transactions, want 0", len(out.Transactions))
		}
		if len(ledger.posted) != 1 {
			t.Errorf("ledger holds %d transactions, want 1", len(ledger.posted))
		}
	})

	t.Run("finite repetition counts down and deactivates", func(t *testing.T) {
		repeat := 2
		rules := &fakeRuleRepo{}
		ledger := &fakeLedger{}
		clock := &fixedClock{today: date(2026, time.January, 15)}
		rule := monthlyRule(42, 15, &repeat)
		rules.rules = append(rules.rules, rule)

		uc := NewGenerateDueUseCase(rules, ledger, &fakeAccounts{}, clock, &fakeLock{})

		if _, err := uc.Execute(ctx); err != nil {
			t.Fatalf("january pass: %v", err)
		}
		if rule.Remaining == nil || *rule.Remaining != 1 {
			t.Fatalf("expected 1 remaining after first generation, got %v", rule.Remaining)
		}
		if !rule.Active {
			t.Fatal("rule must stay active with repetitions remaining")
		}

		clock.today = date(2026, time.February, 15)
		if _, err := uc.Execute(ctx); err != nil {
			t.Fatalf("february pass: %v", err)
		}
		if rule.Active {
			t.Error("rule must deactivate when the countdown reaches zero")
		}

		clock.today = date(2026, time.March, 15)
		out, err := uc.Execute(ctx)
		if err != nil {
			t.Fatalf("march pass: %v", err)
		}
		if len(out.Transactions) != 0 {
			t.Error("terminal rule generated a transaction")
		}
		if len(ledger.posted) != 2 {
			t.Errorf("ledger holds %d transactions, want exactly 2", len(ledger.posted))
		}
	})

	t.Run("monthly anchor beyond the month length skips the month", func(t *testing.T) {
		rules := &fakeRuleRepo{}
		ledger := &fakeLedger{}
		clock := &fixedClock{today: date(2026, time.February, 28)}
		rules.rules = append(rules.rules, monthlyRule(42, 31, nil))

		uc := NewGenerateDueUseCase(rules, ledger, &fakeAccounts{}, clock, &fakeLock{})
		out, err := uc.Execute(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Transactions) != 0 {
			t.Error("day-31 anchor fired in February")
		}
	})

	t.Run("held lock skips the rule without error", func(t *testing.T) {
		rules := &fakeRuleRepo{}
		ledger := &fakeLedger{}
		clock := &fixedClock{today: date(2026, time.January, 15)}
		rules.rules = append(rules.rules, monthlyRule(42, 15, nil))

		uc := NewGenerateDueUseCase(rules, ledger, &fakeAccounts{}, clock, &fakeLock{deny: true})
		out, err := uc.Execute(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Transactions) != 0 || len(ledger.posted) != 0 {
			t.Error("rule generated despite a held lock")
		}
	})

	t.Run("unique index conflict counts as already generated", func(t *testing.T) {
		repeat := 2
		rules := &fakeRuleRepo{}
		ledger := &fakeLedger{postErr: domainerror.ErrGenerationConflict}
		clock := &fixedClock{today: date(2026, time.January, 15)}
		rule := monthlyRule(42, 15, &repeat)
		rules.rules = append(rules.rules, rule)

		uc := NewGenerateDueUseCase(rules, ledger, &fakeAccounts{}, clock, &fakeLock{})
		out, err := uc.Execute(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Transactions) != 0 {
			t.Error("conflicting insert reported as a fresh generation")
		}
		if *rule.Remaining != 2 {
			t.Error("countdown must not move when the other writer won")
		}
	})

	t.Run("releases the lock after generating", func(t *testing.T) {
		rules := &fakeRuleRepo{}
		lock := &fakeLock{}
		clock := &fixedClock{today: date(2026, time.January, 15)}
		rules.rules = append(rules.rules, monthlyRule(42, 15, nil))

		uc := NewGenerateDueUseCase(rules, &fakeLedger{}, &fakeAccounts{}, clock, lock)
		if _, err := uc.Execute(ctx); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if lock.acquired != 1 || lock.released != 1 {
			t.Errorf("expected 1 acquire and 1 release, got %d/%d", lock.acquired, lock.released)
		}
	})
}

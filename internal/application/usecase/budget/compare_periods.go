package budget

import (
	"context"
	"time"

	"github.com/expensebot/backend/internal/application/adapter"
	"github.com/expensebot/backend/internal/domain/valueobject"
)

// ComparePeriodsInput names the current month to compare against the
// month before it.
type ComparePeriodsInput struct {
	AccountID int64
	Year      int
	Month     time.Month
}

// ComparePeriodsOutput holds overall and per-category deltas between the
// two months.
type ComparePeriodsOutput struct {
	Current    valueobject.PeriodTotals
	Previous   valueobject.PeriodTotals
	Comparison valueobject.PeriodComparison
}

// ComparePeriodsUseCase compares a month's spend with the previous month,
// overall and per category.
type ComparePeriodsUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewComparePeriodsUseCase creates a new ComparePeriodsUseCase instance.
func NewComparePeriodsUseCase(ledgerRepo adapter.LedgerRepository) *ComparePeriodsUseCase {
	return &ComparePeriodsUseCase{ledgerRepo: ledgerRepo}
}

// Execute totals both months from the ledger and diffs them. Categories
// present in only one month still appear in the per-category result.
func (uc *ComparePeriodsUseCase) Execute(ctx context.Context, input ComparePeriodsInput) (*ComparePeriodsOutput, error) {
	currentWindow := valueobject.MonthWindow(input.Year, input.Month)
	prevYear, prevMonth := valueobject.PreviousMonth(input.Year, input.Month)
	previousWindow := valueobject.MonthWindow(prevYear, prevMonth)

	current, err := uc.ledgerRepo.TotalsForWindow(ctx, input.AccountID, currentWindow)
	if err != nil {
		return nil, err
	}
	previous, err := uc.ledgerRepo.TotalsForWindow(ctx, input.AccountID, previousWindow)
	if err != nil {
		return nil, err
	}

	return &ComparePeriodsOutput{
		Current:    current,
		Previous:   previous,
		Comparison: valueobject.ComparePeriods(current, previous),
	}, nil
}

package transaction

import (
	"context"
	"time"

	"github.com/expensebot/backend/internal/application/adapter"
	"github.com/expensebot/backend/internal/domain/valueobject"
)

// PeriodSummaryInput names the period to summarize. A nil Month summarizes
// the whole year.
type PeriodSummaryInput struct {
	AccountID int64
	Year      int
	Month     *time.Month
}

// PeriodSummaryOutput holds the overall total and per-category breakdown.
type PeriodSummaryOutput struct {
	Window valueobject.PeriodWindow
	Totals valueobject.PeriodTotals
}

// PeriodSummaryUseCase computes monthly or yearly spend totals straight from
// the ledger.
type PeriodSummaryUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewPeriodSummaryUseCase creates a new PeriodSummaryUseCase instance.
func NewPeriodSummaryUseCase(ledgerRepo adapter.LedgerRepository) *PeriodSummaryUseCase {
	return &PeriodSummaryUseCase{ledgerRepo: ledgerRepo}
}

// Execute totals the requested window.
func (uc *PeriodSummaryUseCase) Execute(ctx context.Context, input PeriodSummaryInput) (*PeriodSummaryOutput, error) {
	var window valueobject.PeriodWindow
	if input.Month != nil {
		window = valueobject.MonthWindow(input.Year, *input.Month)
	} else {
		window = valueobject.YearWindow(input.Year)
	}

	totals, err := uc.ledgerRepo.TotalsForWindow(ctx, input.AccountID, window)
	if err != nil {
		return nil, err
	}

	return &PeriodSummaryOutput{Window: window, Totals: totals}, nil
}

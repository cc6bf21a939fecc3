package budget

import (
	"context"
	"time"

	"github.com/expensebot/backend/internal/application/adapter"
	"github.com/expensebot/backend/internal/domain/entity"
	"github.com/expensebot/backend/internal/domain/valueobject"
)

// GetProgressInput represents the input for computing budget progress as of
// a given year and month (account-local).
type GetProgressInput struct {
	Budget *entity.Budget
	Year   int
	Month  time.Month
}

// GetProgressOutput represents the computed progress.
type GetProgressOutput struct {
	Progress valueobject.BudgetProgress
}

// GetProgressUseCase computes spent-vs-effective-limit for one budget.
// Totals always come straight from the ledger; nothing is cached.
type GetProgressUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewGetProgressUseCase creates a new GetProgressUseCase instance.
func NewGetProgressUseCase(ledgerRepo adapter.LedgerRepository) *GetProgressUseCase {
	return &GetProgressUseCase{
		ledgerRepo: ledgerRepo,
	}
}

// Execute computes the progress. For month_rollover the effective limit is
// the base limit plus the unspent remainder of the immediately preceding
// month, floored at zero; the carry never compounds further back, and
// overspending last month never shrinks this month's limit.
func (uc *GetProgressUseCase) Execute(ctx context.Context, input GetProgressInput) (*GetProgressOutput, error) {
	b := input.Budget

	category := ""
	if b.Scope == entity.BudgetScopeCategory {
		category = b.Category
	}

	var window valueobject.PeriodWindow
	switch b.Period {
	case entity.BudgetPeriodYear:
		window = valueobject.YearWindow(input.Year)
	default:
		window = valueobject.MonthWindow(input.Year, input.Month)
	}

	spent, err := uc.ledgerRepo.SumByScope(ctx, b.AccountID, window, category)
	if err != nil {
		return nil, err
	}

	effectiveLimit := b.Limit
	if b.Period == entity.BudgetPeriodMonthRollover {
		prevYear, prevMonth := valueobject.PreviousMonth(input.Year, input.Month)
		prevWindow := valueobject.MonthWindow(prevYear, prevMonth)
		prevSpent, err := uc.ledgerRepo.SumByScope(ctx, b.AccountID, prevWindow, category)
		if err != nil {
			return nil, err
		}
		if carry := b.Limit - prevSpent; carry > 0 {
			effectiveLimit += carry
		}
	}

	return &GetProgressOutput{Progress: valueobject.NewBudgetProgress(spent, effectiveLimit)}, nil
}

package budget

import (
	"context"
	"fmt"

	"github.com/expensebot/backend/internal/application/adapter"
	"github.com/expensebot/backend/internal/domain/entity"
	"github.com/expensebot/backend/internal/domain/valueobject"
)

// Alert is one threshold crossing for one budget, ready for display.
type Alert struct {
	Budget   *entity.Budget
	Progress valueobject.BudgetProgress
	Level    valueobject.AlertLevel
	Message  string
}

// CheckAlertsInput represents the input for the alert scan.
type CheckAlertsInput struct {
	AccountID int64
}

// CheckAlertsOutput lists the triggered alerts, at most one per budget.
type CheckAlertsOutput struct {
	Alerts []Alert
}

// CheckAlertsUseCase scans every active budget of the account against the
// current local period. It runs synchronously after each transaction post
// and reads the live ledger, so the just-posted transaction is always
// reflected.
type CheckAlertsUseCase struct {
	budgetRepo  adapter.BudgetRepository
	accountRepo adapter.AccountRepository
	progress    *GetProgressUseCase
	clock       adapter.Clock
}

// NewCheckAlertsUseCase creates a new CheckAlertsUseCase instance.
func NewCheckAlertsUseCase(
	budgetRepo adapter.BudgetRepository,
	accountRepo adapter.AccountRepository,
	progress *GetProgressUseCase,
	clock adapter.Clock,
) *CheckAlertsUseCase {
	return &CheckAlertsUseCase{
		budgetRepo:  budgetRepo,
		accountRepo: accountRepo,
		progress:    progress,
		clock:       clock,
	}
}

// Execute computes progress for every active budget and emits a warning in
// the [80%, 100%) band and an exceeded alert at or above 100%. Budgets with
// undefined pct emit nothing.
func (uc *CheckAlertsUseCase) Execute(ctx context.Context, input CheckAlertsInput) (*CheckAlertsOutput, error) {
	budgets, err := uc.budgetRepo.ListActive(ctx, input.AccountID)
	if err != nil {
		return nil, err
	}

	tz := ""
	if account, err := uc.accountRepo.FindByID(ctx, input.AccountID); err == nil && account != nil {
		tz = account.Timezone
	}
	today := uc.clock.LocalDate(tz)

	output := &CheckAlertsOutput{}
	for _, b := range budgets {
		result, err := uc.progress.Execute(ctx, GetProgressInput{
			Budget: b,
			Year:   today.Year(),
			Month:  today.Month(),
		})
		if err != nil {
			return nil, err
		}

		p := result.Progress
		level := p.Level()
		if level == valueobject.AlertNone {
			continue
		}

		output.Alerts = append(output.Alerts, Alert{
			Budget:   b,
			Progress: p,
			Level:    level,
			Message:  alertMessage(b, p, level),
		})
	}

	return output, nil
}

// alertMessage formats one alert line with scope label, spend and effective
// limit in major units.
func alertMessage(b *entity.Budget, p valueobject.BudgetProgress, level valueobject.AlertLevel) string {
	spent := float64(p.Spent) / 100
	limit := float64(p.EffectiveLimit) / 100

	if level == valueobject.AlertExceeded {
		return fmt.Sprintf("%s budget exceeded (%.2f/%.2f)", b.ScopeLabel(), spent, limit)
	}
	return fmt.Sprintf("%s budget at %s%% (%.2f/%.2f)", b.ScopeLabel(), p.Pct.StringFixed(0), spent, limit)
}

package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/expensebot/backend/internal/domain/entity"
	domainerror "github.com/expensebot/backend/internal/domain/error"
)

func TestBudgetLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewBudgetRepository(openTestDB(t))

	overall := entity.NewBudget(42, entity.BudgetScopeOverall, "", 100000, entity.BudgetPeriodMonth)
	food := entity.NewBudget(42, entity.BudgetScopeCategory, "food", 50000, entity.BudgetPeriodMonthRollover)
	other := entity.NewBudget(99, entity.BudgetScopeOverall, "", 1, entity.BudgetPeriodYear)

	for _, b := range []*entity.Budget{overall, food, other} {
		if err := repo.Create(ctx, b); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	t.Run("listing is scoped to the account", func(t *testing.T) {
		budgets, err := repo.ListActive(ctx, 42)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(budgets) != 2 {
			t.Fatalf("expected 2 budgets, got %d", len(budgets))
		}
	})

	t.Run("round trip keeps scope and period", func(t *testing.T) {
		got, err := repo.FindByRef(ctx, 42, food.ID.String()[:8])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Scope != entity.BudgetScopeCategory || got.Category != "food" {
			t.Errorf("scope lost: %+v", got)
		}
		if got.Period != entity.BudgetPeriodMonthRollover {
			t.Errorf("period lost: %q", got.Period)
		}
	})

	t.Run("soft delete hides the budget from reads", func(t *testing.T) {
		food.Active = false
		if err := repo.Update(ctx, food); err != nil {
			t.Fatalf("update: %v", err)
		}

		budgets, err := repo.ListActive(ctx, 42)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(budgets) != 1 {
			t.Fatalf("expected 1 active budget, got %d", len(budgets))
		}

		if _, err := repo.FindByRef(ctx, 42, food.ID.String()[:8]); !errors.Is(err, domainerror.ErrRefNotFound) {
			t.Errorf("deleted budget still resolvable: %v", err)
		}
	})

	t.Run("resolution never crosses accounts", func(t *testing.T) {
		if _, err := repo.FindByRef(ctx, 42, other.ID.String()); !errors.Is(err, domainerror.ErrRefNotFound) {
			t.Errorf("expected ErrRefNotFound, got %v", err)
		}
	})
}

func TestDigestDedupe(t *testing.T) {
	ctx := context.Background()
	repo := NewDigestRepository(openTestDB(t))

	sent, err := repo.AlreadySent(ctx, 42, "2026-W11")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent {
		t.Fatal("nothing was sent yet")
	}

	if err := repo.MarkSent(ctx, 42, "2026-W11"); err != nil {
		t.Fatalf("mark: %v", err)
	}

	sent, err = repo.AlreadySent(ctx, 42, "2026-W11")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sent {
		t.Fatal("send was not recorded")
	}

	// Recording again must not fail; a concurrent pass can double-mark.
	if err := repo.MarkSent(ctx, 42, "2026-W11"); err != nil {
		t.Fatalf("double mark: %v", err)
	}

	sent, err = repo.AlreadySent(ctx, 42, "2026-W12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent {
		t.Error("the next week starts unsent")
	}

	sent, err = repo.AlreadySent(ctx, 99, "2026-W11")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sent {
		t.Error("dedupe is per account")
	}
}

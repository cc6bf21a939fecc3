package persistence

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/expensebot/backend/internal/domain/entity"
	domainerror "github.com/expensebot/backend/internal/domain/error"
	"github.com/expensebot/backend/internal/domain/valueobject"
)

func TestLedgerFindByRef(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerRepository(openTestDB(t))

	// Two ids sharing an 8-character prefix to force ambiguity.
	a := newTx(42, "coffee", 450, localDate(2026, time.March, 1))
	a.ID = uuid.MustParse("11111111-aaaa-4aaa-8aaa-aaaaaaaaaaaa")
	b := newTx(42, "lunch", 1800, localDate(2026, time.March, 2))
	b.ID = uuid.MustParse("11111111-bbbb-4bbb-8bbb-bbbbbbbbbbbb")
	c := newTx(42, "bus", 250, localDate(2026, time.March, 3))
	c.ID = uuid.MustParse("22222222-cccc-4ccc-8ccc-cccccccccccc")
	other := newTx(99, "rent", 120000, localDate(2026, time.March, 1))
	other.ID = uuid.MustParse("33333333-dddd-4ddd-8ddd-dddddddddddd")

	for _, tx := range []*entity.Transaction{a, b, c, other} {
		if err := repo.Post(ctx, tx); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	t.Run("unique prefix resolves", func(t *testing.T) {
		got, err := repo.FindByRef(ctx, 42, "22222222")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Label != "bus" {
			t.Errorf("resolved the wrong transaction: %q", got.Label)
		}
	})

	t.Run("longer prefix disambiguates", func(t *testing.T) {
		got, err := repo.FindByRef(ctx, 42, "11111111-a")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.Label != "coffee" {
			t.Errorf("resolved the wrong transaction: %q", got.Label)
		}
	})

	t.Run("shared prefix is ambiguous", func(t *testing.T) {
		_, err := repo.FindByRef(ctx, 42, "11111111")
		if !errors.Is(err, domainerror.ErrRefAmbiguous) {
			t.Errorf("expected ErrRefAmbiguous, got %v", err)
		}
	})

	t.Run("no match is not found", func(t *testing.T) {
		_, err := repo.FindByRef(ctx, 42, "99999999")
		if !errors.Is(err, domainerror.ErrRefNotFound) {
			t.Errorf("expected ErrRefNotFound, got %v", err)
		}
	})

	t.Run("wildcard characters match literally", func(t *testing.T) {
		_, err := repo.FindByRef(ctx, 42, "________")
		if !errors.Is(err, domainerror.ErrRefNotFound) {
			t.Errorf("underscores must not act as wildcards, got %v", err)
		}
		_, err = repo.FindByRef(ctx, 42, "%")
		if !errors.Is(err, domainerror.ErrRefNotFound) {
			t.Errorf("percent must not act as a wildcard, got %v", err)
		}
	})

	t.Run("full id resolves exactly", func(t *testing.T) {
		got, err := repo.FindByRef(ctx, 42, a.ID.String())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.ID != a.ID {
			t.Error("full id resolved a different transaction")
		}
	})

	t.Run("resolution never crosses accounts", func(t *testing.T) {
		_, err := repo.FindByRef(ctx, 42, "33333333")
		if !errors.Is(err, domainerror.ErrRefNotFound) {
			t.Errorf("expected ErrRefNotFound for another account's id, got %v", err)
		}
	})
}

func TestLedgerGenerationUniqueIndex(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerRepository(openTestDB(t))

	ruleID := uuid.New()
	day := localDate(2026, time.March, 15)

	first := newTx(42, "rent", 120000, day)
	first.RecurringRuleID = &ruleID
	if err := repo.Post(ctx, first); err != nil {
		t.Fatalf("first insert: %v", err)
	}

	t.Run("second insert for the same rule and date conflicts", func(t *testing.T) {
		dup := newTx(42, "rent", 120000, day)
		dup.RecurringRuleID = &ruleID
		err := repo.Post(ctx, dup)
		if !errors.Is(err, domainerror.ErrGenerationConflict) {
			t.Fatalf("expected ErrGenerationConflict, got %v", err)
		}
	})

	t.Run("same rule on another date inserts fine", func(t *testing.T) {
		next := newTx(42, "rent", 120000, localDate(2026, time.April, 15))
		next.RecurringRuleID = &ruleID
		if err := repo.Post(ctx, next); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("manual posts never conflict with each other", func(t *testing.T) {
		if err := repo.Post(ctx, newTx(42, "coffee", 450, day)); err != nil {
			t.Fatalf("first manual post: %v", err)
		}
		if err := repo.Post(ctx, newTx(42, "coffee again", 450, day)); err != nil {
			t.Fatalf("second manual post: %v", err)
		}
	})

	t.Run("exists check sees the generated transaction", func(t *testing.T) {
		exists, err := repo.ExistsForRuleOnDate(ctx, ruleID, day)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !exists {
			t.Error("expected the generated transaction to be found")
		}

		exists, err = repo.ExistsForRuleOnDate(ctx, ruleID, localDate(2026, time.May, 15))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if exists {
			t.Error("no transaction exists for that date")
		}
	})
}

func TestLedgerDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerRepository(openTestDB(t))

	tx := newTx(42, "coffee", 450, localDate(2026, time.March, 1))
	if err := repo.Post(ctx, tx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	t.Run("deleted transactions disappear from reads", func(t *testing.T) {
		if err := repo.Delete(ctx, 42, tx.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}

		if _, err := repo.FindByRef(ctx, 42, tx.ID.String()); !errors.Is(err, domainerror.ErrRefNotFound) {
			t.Errorf("deleted transaction still resolvable: %v", err)
		}

		recent, err := repo.ListRecent(ctx, 42, 10)
		if err != nil {
			t.Fatalf("list: %v", err)
		}
		if len(recent) != 0 {
			t.Errorf("deleted transaction still listed: %d rows", len(recent))
		}
	})

	t.Run("deleting the wrong account or id reports not found", func(t *testing.T) {
		if err := repo.Delete(ctx, 42, uuid.New()); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound, got %v", err)
		}

		fresh := newTx(42, "lunch", 1800, localDate(2026, time.March, 2))
		if err := repo.Post(ctx, fresh); err != nil {
			t.Fatalf("seed: %v", err)
		}
		if err := repo.Delete(ctx, 99, fresh.ID); !errors.Is(err, domainerror.ErrTransactionNotFound) {
			t.Errorf("expected ErrTransactionNotFound across accounts, got %v", err)
		}
	})
}

func TestLedgerAggregation(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerRepository(openTestDB(t))

	seed := []*entity.Transaction{
		newTx(42, "groceries", 30000, localDate(2026, time.March, 1)),
		newTx(42, "more groceries", 20000, localDate(2026, time.March, 31)),
		newTx(42, "bus", 2500, localDate(2026, time.March, 15)),
		newTx(42, "mystery", 1000, localDate(2026, time.March, 10)),
		newTx(42, "april groceries", 40000, localDate(2026, time.April, 1)),
		newTx(99, "other account", 99999, localDate(2026, time.March, 5)),
	}
	seed[0].Category = "food"
	seed[1].Category = "food"
	seed[2].Category = "transit"
	seed[4].Category = "food"
	for _, tx := range seed {
		if err := repo.Post(ctx, tx); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	march := valueobject.MonthWindow(2026, time.March)

	t.Run("sums the whole account inside the window", func(t *testing.T) {
		total, err := repo.SumByScope(ctx, 42, march, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 53500 {
			t.Errorf("expected 53500, got %d", total)
		}
	})

	t.Run("category filter narrows the sum", func(t *testing.T) {
		total, err := repo.SumByScope(ctx, 42, march, "food")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 50000 {
			t.Errorf("expected 50000, got %d", total)
		}
	})

	t.Run("window is half open", func(t *testing.T) {
		april := valueobject.MonthWindow(2026, time.April)
		total, err := repo.SumByScope(ctx, 42, april, "food")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if total != 40000 {
			t.Errorf("april 1 belongs to april: expected 40000, got %d", total)
		}
	})

	t.Run("totals break down by category with an uncategorized bucket", func(t *testing.T) {
		totals, err := repo.TotalsForWindow(ctx, 42, march)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if totals.Total != 53500 {
			t.Errorf("expected total 53500, got %d", totals.Total)
		}
		if totals.ByCategory["food"] != 50000 {
			t.Errorf("expected food 50000, got %d", totals.ByCategory["food"])
		}
		if totals.ByCategory["transit"] != 2500 {
			t.Errorf("expected transit 2500, got %d", totals.ByCategory["transit"])
		}
		if totals.ByCategory["Uncategorized"] != 1000 {
			t.Errorf("expected Uncategorized 1000, got %d", totals.ByCategory["Uncategorized"])
		}
	})
}

func TestLedgerSearch(t *testing.T) {
	ctx := context.Background()
	repo := NewLedgerRepository(openTestDB(t))

	a := newTx(42, "Coffee beans", 450, localDate(2026, time.March, 1))
	b := newTx(42, "lunch", 1800, localDate(2026, time.March, 2))
	b.Note = "coffee with the team"
	c := newTx(42, "bus", 250, localDate(2026, time.March, 3))
	for _, tx := range []*entity.Transaction{a, b, c} {
		if err := repo.Post(ctx, tx); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	got, err := repo.Search(ctx, 42, "coffee", 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 case-insensitive matches across label and note, got %d", len(got))
	}
}

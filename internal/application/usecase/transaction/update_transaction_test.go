package transaction

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/expensebot/backend/internal/domain/entity"
	domainerror "github.com/expensebot/backend/internal/domain/error"
)

func seedTransaction(ledger *fakeLedger, accountID int64, label string) *entity.Transaction {
	tx := entity.NewTransaction(accountID, label, 1000, "USD", time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC))
	ledger.posted = append(ledger.posted, tx)
	return tx
}

func strPtr(s string) *string { return &s }

func TestUpdateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("only the provided fields change", func(t *testing.T) {
		ledger := &fakeLedger{}
		tx := seedTransaction(ledger, 42, "coffee")
		tx.Category = "food"
		tx.Note = "morning"

		uc := NewUpdateTransactionUseCase(ledger)
		out, err := uc.Execute(ctx, UpdateTransactionInput{
			AccountID: 42,
			Ref:       tx.ID.String()[:8],
			Label:     strPtr("espresso"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Transaction.Label != "espresso" {
			t.Errorf("label not updated: %q", out.Transaction.Label)
		}
		if out.Transaction.Category != "food" || out.Transaction.Note != "morning" {
			t.Error("untouched fields must keep their values")
		}
		if out.Transaction.Amount != 1000 {
			t.Error("amount is immutable")
		}
	})

	t.Run("full id resolves as well as a prefix", func(t *testing.T) {
		ledger := &fakeLedger{}
		tx := seedTransaction(ledger, 42, "coffee")

		uc := NewUpdateTransactionUseCase(ledger)
		out, err := uc.Execute(ctx, UpdateTransactionInput{
			AccountID: 42,
			Ref:       tx.ID.String(),
			Note:      strPtr("updated"),
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Transaction.Note != "updated" {
			t.Error("note not updated via full id")
		}
	})

	t.Run("unknown reference fails with not found", func(t *testing.T) {
		ledger := &fakeLedger{}
		seedTransaction(ledger, 42, "coffee")

		uc := NewUpdateTransactionUseCase(ledger)
		_, err := uc.Execute(ctx, UpdateTransactionInput{AccountID: 42, Ref: "zzzzzzzz", Label: strPtr("x")})
		if !errors.Is(err, domainerror.ErrRefNotFound) {
			t.Errorf("expected ErrRefNotFound, got %v", err)
		}
	})

	t.Run("another account's transaction is out of reach", func(t *testing.T) {
		ledger := &fakeLedger{}
		tx := seedTransaction(ledger, 42, "coffee")

		uc := NewUpdateTransactionUseCase(ledger)
		_, err := uc.Execute(ctx, UpdateTransactionInput{AccountID: 99, Ref: tx.ID.String()[:8], Label: strPtr("x")})
		if !errors.Is(err, domainerror.ErrRefNotFound) {
			t.Errorf("expected ErrRefNotFound across accounts, got %v", err)
		}
	})
}

func TestDeleteTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves the reference and removes the transaction", func(t *testing.T) {
		ledger := &fakeLedger{}
		tx := seedTransaction(ledger, 42, "coffee")

		uc := NewDeleteTransactionUseCase(ledger)
		out, err := uc.Execute(ctx, DeleteTransactionInput{AccountID: 42, Ref: tx.ID.String()[:8]})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Transaction.ID != tx.ID {
			t.Error("deleted transaction should be returned for confirmation")
		}
		if len(ledger.posted) != 0 {
			t.Error("transaction was not removed")
		}
	})

	t.Run("unknown reference fails with not found", func(t *testing.T) {
		ledger := &fakeLedger{}
		uc := NewDeleteTransactionUseCase(ledger)
		_, err := uc.Execute(ctx, DeleteTransactionInput{AccountID: 42, Ref: "zzzzzzzz"})
		if !errors.Is(err, domainerror.ErrRefNotFound) {
			t.Errorf("expected ErrRefNotFound, got %v", err)
		}
	})
}

func TestSearchTransactions(t *testing.T) {
	ctx := context.Background()

	t.Run("blank query returns nothing without error", func(t *testing.T) {
		uc := NewSearchTransactionsUseCase(&fakeLedger{})
		out, err := uc.Execute(ctx, SearchTransactionsInput{AccountID: 42, Query: "   "})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Transactions) != 0 {
			t.Error("blank query must not match anything")
		}
	})

	t.Run("matches across label and tags", func(t *testing.T) {
		ledger := &fakeLedger{}
		seedTransaction(ledger, 42, "coffee beans")
		b := seedTransaction(ledger, 42, "lunch")
		b.Tags = "coffee-club"
		seedTransaction(ledger, 42, "bus ticket")

		uc := NewSearchTransactionsUseCase(ledger)
		out, err := uc.Execute(ctx, SearchTransactionsInput{AccountID: 42, Query: "coffee"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(out.Transactions) != 2 {
			t.Fatalf("expected 2 matches, got %d", len(out.Transactions))
		}
	})
}

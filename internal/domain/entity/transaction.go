// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Transaction represents a posted ledger entry. Amounts are stored in
// integer minor currency units (cents); expenses are logically positive.
// A transaction is immutable once posted except for the user-correctable
// fields: label, category, tags, note and the attached receipt reference.
type Transaction struct {
	ID         uuid.UUID
	AccountID  int64
	Label      string
	Amount     int64 // minor units
	Currency   string
	Category   string // empty means uncategorized
	Tags       string // comma-separated, optional
	Note       string
	ReceiptRef string
	CreatedAt  time.Time // absolute, UTC
	LocalDate  time.Time // account-local calendar date, derived once at creation
	// RecurringRuleID back-references the rule that generated this
	// transaction; nil for manually posted entries.
	RecurringRuleID *uuid.UUID
}

// NewTransaction creates a new Transaction entity. localDate must already be
// the account-local calendar date; all aggregation keys off it, never off
// CreatedAt.
func NewTransaction(accountID int64, label string, amount int64, currency string, localDate time.Time) *Transaction {
	return &Transaction{
		ID:        uuid.New(),
		AccountID: accountID,
		Label:     label,
		Amount:    amount,
		Currency:  currency,
		CreatedAt: time.Now().UTC(),
		LocalDate: truncateToDate(localDate),
	}
}

// truncateToDate drops the time-of-day component, keeping a bare calendar
// date in UTC for stable storage and comparison.
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// BudgetScope identifies what a budget's limit applies to.
type BudgetScope string

const (
	// BudgetScopeOverall caps total spend across the whole account.
	BudgetScopeOverall BudgetScope = "overall"
	// BudgetScopeCategory caps spend within one category.
	BudgetScopeCategory BudgetScope = "category"
)

// BudgetPeriod is the time window over which a budget's spend is measured.
type BudgetPeriod string

const (
	BudgetPeriodMonth BudgetPeriod = "month"
	// BudgetPeriodMonthRollover is a monthly window whose effective limit is
	// raised by the unspent remainder of the immediately preceding month.
	BudgetPeriodMonthRollover BudgetPeriod = "month_rollover"
	BudgetPeriodYear          BudgetPeriod = "year"
)

// ValidBudgetPeriod reports whether p is one of the recognized periods.
func ValidBudgetPeriod(p BudgetPeriod) bool {
	switch p {
	case BudgetPeriodMonth, BudgetPeriodMonthRollover, BudgetPeriodYear:
		return true
	}
	return false
}

// Budget is a spending ceiling scoped either to the whole account or to one
// category. Budgets are soft-deleted only; Active false is terminal.
type Budget struct {
	ID        uuid.UUID
	AccountID int64
	Scope     BudgetScope
	// Category is the scope value; empty exactly when Scope is overall.
	Category  string
	Limit     int64 // minor units
	Period    BudgetPeriod
	Active    bool
	CreatedAt time.Time
}

// NewBudget creates an active budget.
func NewBudget(accountID int64, scope BudgetScope, category string, limit int64, period BudgetPeriod) *Budget {
	return &Budget{
		ID:        uuid.New(),
		AccountID: accountID,
		Scope:     scope,
		Category:  category,
		Limit:     limit,
		Period:    period,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
}

// ScopeLabel returns the display label for alert messages.
func (b *Budget) ScopeLabel() string {
	if b.Scope == BudgetScopeOverall {
		return "Overall"
	}
	return b.Category
}

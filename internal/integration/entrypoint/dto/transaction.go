// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/expensebot/backend/internal/domain/entity"
	"github.com/expensebot/backend/internal/domain/valueobject"
)

// PostTransactionRequest represents the request body for posting a
// transaction. Amount is in integer minor units.
type PostTransactionRequest struct {
	Label      string `json:"label" binding:"required,min=1,max=255"`
	Amount     int64  `json:"amount" binding:"required"`
	Currency   string `json:"currency,omitempty" binding:"omitempty,len=3"`
	Category   string `json:"category,omitempty" binding:"omitempty,max=100"`
	Tags       string `json:"tags,omitempty" binding:"omitempty,max=500"`
	Note       string `json:"note,omitempty" binding:"omitempty,max=1000"`
	ReceiptRef string `json:"receipt_ref,omitempty"`
}

// UpdateTransactionRequest represents the request body for correcting a
// transaction. Only the provided fields change.
type UpdateTransactionRequest struct {
	Label      *string `json:"label,omitempty" binding:"omitempty,min=1,max=255"`
	Category   *string `json:"category,omitempty" binding:"omitempty,max=100"`
	Tags       *string `json:"tags,omitempty" binding:"omitempty,max=500"`
	Note       *string `json:"note,omitempty" binding:"omitempty,max=1000"`
	ReceiptRef *string `json:"receipt_ref,omitempty"`
}

// TransactionResponse represents a single transaction in API responses.
type TransactionResponse struct {
	ID              string    `json:"id"`
	Ref             string    `json:"ref"`
	Label           string    `json:"label"`
	Amount          int64     `json:"amount"`
	Currency        string    `json:"currency"`
	Category        string    `json:"category,omitempty"`
	Tags            string    `json:"tags,omitempty"`
	Note            string    `json:"note,omitempty"`
	ReceiptRef      string    `json:"receipt_ref,omitempty"`
	LocalDate       string    `json:"local_date"`
	CreatedAt       time.Time `json:"created_at"`
	RecurringRuleID *string   `json:"recurring_rule_id,omitempty"`
}

// PostTransactionResponse represents the response for a post, including the
// budget alerts triggered by it and any rule auto-created from a recurrence
// tag directive.
type PostTransactionResponse struct {
	Transaction TransactionResponse    `json:"transaction"`
	CreatedRule *RecurringRuleResponse `json:"created_rule,omitempty"`
	Alerts      []AlertResponse        `json:"alerts"`
}

// TransactionListResponse represents the response for listing or searching
// transactions.
type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// PeriodSummaryResponse represents monthly or yearly spend totals.
type PeriodSummaryResponse struct {
	Start      string           `json:"start"`
	End        string           `json:"end"`
	Total      int64            `json:"total"`
	ByCategory map[string]int64 `json:"by_category"`
}

// PeriodDiffResponse represents one line of a period comparison. Pct is
// omitted when the previous value is zero.
type PeriodDiffResponse struct {
	Current  int64   `json:"current"`
	Previous int64   `json:"previous"`
	Diff     int64   `json:"diff"`
	Pct      *string `json:"pct,omitempty"`
}

// ComparePeriodsResponse represents the diff report between a month and its
// predecessor.
type ComparePeriodsResponse struct {
	Total      PeriodDiffResponse            `json:"total"`
	Categories map[string]PeriodDiffResponse `json:"categories"`
}

// ToTransactionResponse converts a Transaction entity to its DTO.
func ToTransactionResponse(tx *entity.Transaction) TransactionResponse {
	response := TransactionResponse{
		ID:         tx.ID.String(),
		Ref:        ShortRef(tx.ID.String()),
		Label:      tx.Label,
		Amount:     tx.Amount,
		Currency:   tx.Currency,
		Category:   tx.Category,
		Tags:       tx.Tags,
		Note:       tx.Note,
		ReceiptRef: tx.ReceiptRef,
		LocalDate:  tx.LocalDate.Format("2006-01-02"),
		CreatedAt:  tx.CreatedAt,
	}
	if tx.RecurringRuleID != nil {
		id := tx.RecurringRuleID.String()
		response.RecurringRuleID = &id
	}
	return response
}

// ToTransactionListResponse converts a slice of transactions to the list DTO.
func ToTransactionListResponse(txs []*entity.Transaction) TransactionListResponse {
	response := TransactionListResponse{
		Transactions: make([]TransactionResponse, 0, len(txs)),
	}
	for _, tx := range txs {
		response.Transactions = append(response.Transactions, ToTransactionResponse(tx))
	}
	return response
}

// ToPeriodSummaryResponse converts window totals to the summary DTO.
func ToPeriodSummaryResponse(window valueobject.PeriodWindow, totals valueobject.PeriodTotals) PeriodSummaryResponse {
	return PeriodSummaryResponse{
		Start:      window.Start.Format("2006-01-02"),
		End:        window.End.Format("2006-01-02"),
		Total:      totals.Total,
		ByCategory: totals.ByCategory,
	}
}

// ToPeriodDiffResponse converts one diff line to its DTO.
func ToPeriodDiffResponse(d valueobject.PeriodDiff) PeriodDiffResponse {
	response := PeriodDiffResponse{
		Current:  d.Current,
		Previous: d.Previous,
		Diff:     d.Diff,
	}
	if d.Pct != nil {
		pct := d.Pct.StringFixed(1)
		response.Pct = &pct
	}
	return response
}

// ToComparePeriodsResponse converts a period comparison to its DTO.
func ToComparePeriodsResponse(c valueobject.PeriodComparison) ComparePeriodsResponse {
	response := ComparePeriodsResponse{
		Total:      ToPeriodDiffResponse(c.Total),
		Categories: make(map[string]PeriodDiffResponse, len(c.Categories)),
	}
	for category, diff := range c.Categories {
		response.Categories[category] = ToPeriodDiffResponse(diff)
	}
	return response
}

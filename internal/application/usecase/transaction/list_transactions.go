package transaction

import (
	"context"

	"github.com/expensebot/backend/internal/application/adapter"
	"github.com/expensebot/backend/internal/domain/entity"
)

const defaultListLimit = 10

// ListTransactionsInput represents the input for listing recent transactions.
// A non-positive Limit falls back to the default page size.
type ListTransactionsInput struct {
	AccountID int64
	Limit     int
}

// ListTransactionsOutput represents the listed transactions, newest first.
type ListTransactionsOutput struct {
	Transactions []*entity.Transaction
}

// ListTransactionsUseCase handles listing an account's recent transactions.
type ListTransactionsUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewListTransactionsUseCase creates a new ListTransactionsUseCase instance.
func NewListTransactionsUseCase(ledgerRepo adapter.LedgerRepository) *ListTransactionsUseCase {
	return &ListTransactionsUseCase{ledgerRepo: ledgerRepo}
}

// Execute performs the listing.
func (uc *ListTransactionsUseCase) Execute(ctx context.Context, input ListTransactionsInput) (*ListTransactionsOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}

	transactions, err := uc.ledgerRepo.ListRecent(ctx, input.AccountID, limit)
	if err != nil {
		return nil, err
	}

	return &ListTransactionsOutput{Transactions: transactions}, nil
}

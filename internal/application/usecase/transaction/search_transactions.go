package transaction

import (
	"context"
	"strings"

	"github.com/expensebot/backend/internal/application/adapter"
	"github.com/expensebot/backend/internal/domain/entity"
)

const defaultSearchLimit = 20

// SearchTransactionsInput represents the input for a keyword search.
type SearchTransactionsInput struct {
	AccountID int64
	Query     string
	Limit     int
}

// SearchTransactionsOutput represents the matching transactions, newest first.
type SearchTransactionsOutput struct {
	Transactions []*entity.Transaction
}

// SearchTransactionsUseCase searches labels, categories, tags and notes.
type SearchTransactionsUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewSearchTransactionsUseCase creates a new SearchTransactionsUseCase instance.
func NewSearchTransactionsUseCase(ledgerRepo adapter.LedgerRepository) *SearchTransactionsUseCase {
	return &SearchTransactionsUseCase{ledgerRepo: ledgerRepo}
}

// Execute performs the search. A blank query returns an empty result rather
// than matching everything.
func (uc *SearchTransactionsUseCase) Execute(ctx context.Context, input SearchTransactionsInput) (*SearchTransactionsOutput, error) {
	query := strings.TrimSpace(input.Query)
	if query == "" {
		return &SearchTransactionsOutput{}, nil
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	transactions, err := uc.ledgerRepo.Search(ctx, input.AccountID, query, limit)
	if err != nil {
		return nil, err
	}

	return &SearchTransactionsOutput{Transactions: transactions}, nil
}

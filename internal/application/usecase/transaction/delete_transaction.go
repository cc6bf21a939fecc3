package transaction

import (
	"context"

	"github.com/expensebot/backend/internal/application/adapter"
	"github.com/expensebot/backend/internal/domain/entity"
)

// DeleteTransactionInput represents the input for undoing a transaction.
type DeleteTransactionInput struct {
	AccountID int64
	Ref       string
}

// DeleteTransactionOutput returns the deleted transaction for confirmation
// messaging.
type DeleteTransactionOutput struct {
	Transaction *entity.Transaction
}

// DeleteTransactionUseCase removes a transaction by reference. Deletion is
// soft, so a wrong undo can be recovered at the storage level.
type DeleteTransactionUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewDeleteTransactionUseCase creates a new DeleteTransactionUseCase instance.
func NewDeleteTransactionUseCase(ledgerRepo adapter.LedgerRepository) *DeleteTransactionUseCase {
	return &DeleteTransactionUseCase{ledgerRepo: ledgerRepo}
}

// Execute resolves the reference scoped to the account and deletes the match.
func (uc *DeleteTransactionUseCase) Execute(ctx context.Context, input DeleteTransactionInput) (*DeleteTransactionOutput, error) {
	tx, err := uc.ledgerRepo.FindByRef(ctx, input.AccountID, input.Ref)
	if err != nil {
		return nil, err
	}

	if err := uc.ledgerRepo.Delete(ctx, input.AccountID, tx.ID); err != nil {
		return nil, err
	}

	return &DeleteTransactionOutput{Transaction: tx}, nil
}

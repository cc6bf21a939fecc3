package transaction

import (
	"context"

	"github.com/expensebot/backend/internal/application/adapter"
	"github.com/expensebot/backend/internal/domain/entity"
)

// UpdateTransactionInput carries a short or full reference plus the
// user-correctable fields. Nil pointers leave the field untouched.
type UpdateTransactionInput struct {
	AccountID  int64
	Ref        string
	Label      *string
	Category   *string
	Tags       *string
	Note       *string
	ReceiptRef *string
}

// UpdateTransactionOutput represents the updated transaction.
type UpdateTransactionOutput struct {
	Transaction *entity.Transaction
}

// UpdateTransactionUseCase corrects a posted transaction. Amount, currency
// and dates are immutable once posted; only the descriptive fields change.
type UpdateTransactionUseCase struct {
	ledgerRepo adapter.LedgerRepository
}

// NewUpdateTransactionUseCase creates a new UpdateTransactionUseCase instance.
func NewUpdateTransactionUseCase(ledgerRepo adapter.LedgerRepository) *UpdateTransactionUseCase {
	return &UpdateTransactionUseCase{ledgerRepo: ledgerRepo}
}

// Execute resolves the reference scoped to the account and applies only the
// provided fields.
func (uc *UpdateTransactionUseCase) Execute(ctx context.Context, input UpdateTransactionInput) (*UpdateTransactionOutput, error) {
	tx, err := uc.ledgerRepo.FindByRef(ctx, input.AccountID, input.Ref)
	if err != nil {
		return nil, err
	}

	if input.Label != nil {
		tx.Label = *input.Label
	}
	if input.Category != nil {
		tx.Category = *input.Category
	}
	if input.Tags != nil {
		tx.Tags = *input.Tags
	}
	if input.Note != nil {
		tx.Note = *input.Note
	}
	if input.ReceiptRef != nil {
		tx.ReceiptRef = *input.ReceiptRef
	}

	if err := uc.ledgerRepo.Update(ctx, tx); err != nil {
		return nil, err
	}

	return &UpdateTransactionOutput{Transaction: tx}, nil
}

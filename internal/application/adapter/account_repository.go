// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/expensebot/backend/internal/domain/entity"
)

// AccountRepository defines the interface for account persistence. Accounts
// are created lazily the first time the conversational layer shows up with a
// new numeric id.
type AccountRepository interface {
	// Upsert creates the account if missing or updates its settings.
	Upsert(ctx context.Context, account *entity.Account) error

	// FindByID retrieves an account. Returns nil without error when absent.
	FindByID(ctx context.Context, id int64) (*entity.Account, error)

	// ListAll retrieves every known account; used by the periodic worker.
	ListAll(ctx context.Context) ([]*entity.Account, error)
}

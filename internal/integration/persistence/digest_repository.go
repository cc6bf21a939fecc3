// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/expensebot/backend/internal/application/adapter"
	"github.com/expensebot/backend/internal/integration/persistence/model"
)

// digestRepository implements the adapter.DigestRepository interface.
type digestRepository struct {
	db *gorm.DB
}

// NewDigestRepository creates a new digest repository instance.
func NewDigestRepository(db *gorm.DB) adapter.DigestRepository {
	return &digestRepository{
		db: db,
	}
}

// AlreadySent reports whether the digest for the period was recorded.
func (r *digestRepository) AlreadySent(ctx context.Context, accountID int64, periodKey string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.DigestSendModel{}).
		Where("account_id = ? AND period_key = ?", accountID, periodKey).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// MarkSent records the digest send for the period. Recording twice is a
// no-op, so a concurrent pass cannot fail here.
func (r *digestRepository) MarkSent(ctx context.Context, accountID int64, periodKey string) error {
	record := &model.DigestSendModel{
		AccountID: accountID,
		PeriodKey: periodKey,
		SentAt:    time.Now().UTC(),
	}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(record)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

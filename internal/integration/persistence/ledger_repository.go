// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expensebot/backend/internal/application/adapter"
	"github.com/expensebot/backend/internal/domain/entity"
	domainerror "github.com/expensebot/backend/internal/domain/error"
	"github.com/expensebot/backend/internal/domain/valueobject"
	"github.com/expensebot/backend/internal/integration/persistence/model"
)

// ledgerRepository implements the adapter.LedgerRepository interface.
type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository instance.
func NewLedgerRepository(db *gorm.DB) adapter.LedgerRepository {
	return &ledgerRepository{
		db: db,
	}
}

// Post appends a new transaction to the ledger. A duplicate
// (recurring_rule_id, local_date) pair surfaces as ErrGenerationConflict.
func (r *ledgerRepository) Post(ctx context.Context, tx *entity.Transaction) error {
	txModel := model.TransactionFromEntity(tx)
	result := r.db.WithContext(ctx).Create(txModel)
	if result.Error != nil {
		if tx.RecurringRuleID != nil && isUniqueViolation(result.Error) {
			return domainerror.ErrGenerationConflict
		}
		return result.Error
	}
	return nil
}

// FindByRef resolves a full id or short prefix reference, scoped to the account.
func (r *ledgerRepository) FindByRef(ctx context.Context, accountID int64, ref string) (*entity.Transaction, error) {
	var txModels []model.TransactionModel
	q := r.db.WithContext(ctx).Where("account_id = ?", accountID)
	result := scopeRef(q, ref).Limit(refMatchLimit).Find(&txModels)
	if result.Error != nil {
		return nil, result.Error
	}

	switch len(txModels) {
	case 0:
		return nil, domainerror.ErrRefNotFound
	case 1:
		return txModels[0].ToEntity(), nil
	default:
		return nil, domainerror.ErrRefAmbiguous
	}
}

// Update persists changes to the user-correctable fields.
func (r *ledgerRepository) Update(ctx context.Context, tx *entity.Transaction) error {
	txModel := model.TransactionFromEntity(tx)
	result := r.db.WithContext(ctx).Save(txModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// Delete removes a transaction from the ledger (soft delete).
func (r *ledgerRepository) Delete(ctx context.Context, accountID int64, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Delete(&model.TransactionModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerror.ErrTransactionNotFound
	}
	return nil
}

// ListRecent retrieves the most recently created transactions, newest first.
func (r *ledgerRepository) ListRecent(ctx context.Context, accountID int64, limit int) ([]*entity.Transaction, error) {
	var txModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Limit(limit).
		Find(&txModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toTransactionEntities(txModels), nil
}

// Search performs a keyword search across label, category, tags and note.
func (r *ledgerRepository) Search(ctx context.Context, accountID int64, query string, limit int) ([]*entity.Transaction, error) {
	pattern := "%" + strings.ToLower(query) + "%"
	var txModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Where("LOWER(label) LIKE ? OR LOWER(category) LIKE ? OR LOWER(tags) LIKE ? OR LOWER(note) LIKE ?",
			pattern, pattern, pattern, pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&txModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toTransactionEntities(txModels), nil
}

// ExistsForRuleOnDate reports whether the rule already generated a
// transaction for the local date. This is the idempotency check of the
// generation pass.
func (r *ledgerRepository) ExistsForRuleOnDate(ctx context.Context, ruleID uuid.UUID, localDate time.Time) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Where("recurring_rule_id = ? AND local_date = ?", ruleID, localDate).
		Count(&count)
	if result.Error != nil {
		return false, result.Error
	}
	return count > 0, nil
}

// SumByScope returns the total spend inside the window, optionally filtered
// to one category.
func (r *ledgerRepository) SumByScope(ctx context.Context, accountID int64, window valueobject.PeriodWindow, category string) (int64, error) {
	var total int64
	q := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("account_id = ?", accountID).
		Where("local_date >= ? AND local_date < ?", window.Start, window.End)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	if err := q.Scan(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// TotalsForWindow returns the overall total plus per-category breakdown for
// the window. Transactions without a category land under "Uncategorized".
func (r *ledgerRepository) TotalsForWindow(ctx context.Context, accountID int64, window valueobject.PeriodWindow) (valueobject.PeriodTotals, error) {
	var rows []struct {
		Category string `gorm:"column:category"`
		Total    int64  `gorm:"column:total"`
	}

	result := r.db.WithContext(ctx).
		Model(&model.TransactionModel{}).
		Select("category, COALESCE(SUM(amount), 0) as total").
		Where("account_id = ?", accountID).
		Where("local_date >= ? AND local_date < ?", window.Start, window.End).
		Group("category").
		Scan(&rows)
	if result.Error != nil {
		return valueobject.PeriodTotals{}, result.Error
	}

	totals := valueobject.PeriodTotals{ByCategory: make(map[string]int64, len(rows))}
	for _, row := range rows {
		name := row.Category
		if name == "" {
			name = "Uncategorized"
		}
		totals.ByCategory[name] += row.Total
		totals.Total += row.Total
	}
	return totals, nil
}

// toTransactionEntities maps model rows to domain entities.
func toTransactionEntities(txModels []model.TransactionModel) []*entity.Transaction {
	txs := make([]*entity.Transaction, len(txModels))
	for i, tm := range txModels {
		txs[i] = tm.ToEntity()
	}
	return txs
}

// isUniqueViolation detects a uniqueness constraint failure without tying
// the repository to one driver's error type.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}

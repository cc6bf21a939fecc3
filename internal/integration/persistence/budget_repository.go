// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/expensebot/backend/internal/application/adapter"
	"github.com/expensebot/backend/internal/domain/entity"
	domainerror "github.com/expensebot/backend/internal/domain/error"
	"github.com/expensebot/backend/internal/integration/persistence/model"
)

// budgetRepository implements the adapter.BudgetRepository interface.
type budgetRepository struct {
	db *gorm.DB
}

// NewBudgetRepository creates a new budget repository instance.
func NewBudgetRepository(db *gorm.DB) adapter.BudgetRepository {
	return &budgetRepository{
		db: db,
	}
}

// Create persists a new budget.
func (r *budgetRepository) Create(ctx context.Context, budget *entity.Budget) error {
	budgetModel := model.BudgetFromEntity(budget)
	result := r.db.WithContext(ctx).Create(budgetModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByRef resolves a full id or short prefix reference among the account's
// active budgets.
func (r *budgetRepository) FindByRef(ctx context.Context, accountID int64, ref string) (*entity.Budget, error) {
	var budgetModels []model.BudgetModel
	q := r.db.WithContext(ctx).Where("account_id = ? AND active = ?", accountID, true)
	result := scopeRef(q, ref).Limit(refMatchLimit).Find(&budgetModels)
	if result.Error != nil {
		return nil, result.Error
	}

	switch len(budgetModels) {
	case 0:
		return nil, domainerror.ErrRefNotFound
	case 1:
		return budgetModels[0].ToEntity(), nil
	default:
		return nil, domainerror.ErrRefAmbiguous
	}
}

// ListActive retrieves the account's active budgets.
func (r *budgetRepository) ListActive(ctx context.Context, accountID int64) ([]*entity.Budget, error) {
	var budgetModels []model.BudgetModel
	result := r.db.WithContext(ctx).
		Where("account_id = ? AND active = ?", accountID, true).
		Order("created_at DESC").
		Find(&budgetModels)
	if result.Error != nil {
		return nil, result.Error
	}

	budgets := make([]*entity.Budget, len(budgetModels))
	for i, bm := range budgetModels {
		budgets[i] = bm.ToEntity()
	}
	return budgets, nil
}

// Update persists lifecycle changes.
func (r *budgetRepository) Update(ctx context.Context, budget *entity.Budget) error {
	budgetModel := model.BudgetFromEntity(budget)
	result := r.db.WithContext(ctx).Save(budgetModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

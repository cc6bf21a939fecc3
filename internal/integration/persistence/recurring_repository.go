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

// recurringRuleRepository implements the adapter.RecurringRuleRepository interface.
type recurringRuleRepository struct {
	db *gorm.DB
}

// NewRecurringRuleRepository creates a new recurring rule repository instance.
func NewRecurringRuleRepository(db *gorm.DB) adapter.RecurringRuleRepository {
	return &recurringRuleRepository{
		db: db,
	}
}

// Create persists a new rule.
func (r *recurringRuleRepository) Create(ctx context.Context, rule *entity.RecurringRule) error {
	ruleModel := model.RecurringRuleFromEntity(rule)
	result := r.db.WithContext(ctx).Create(ruleModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// FindByRef resolves a full id or short prefix reference, scoped to the account.
func (r *recurringRuleRepository) FindByRef(ctx context.Context, accountID int64, ref string) (*entity.RecurringRule, error) {
	var ruleModels []model.RecurringRuleModel
	q := r.db.WithContext(ctx).Where("account_id = ?", accountID)
	result := scopeRef(q, ref).Limit(refMatchLimit).Find(&ruleModels)
	if result.Error != nil {
		return nil, result.Error
	}

	switch len(ruleModels) {
	case 0:
		return nil, domainerror.ErrRefNotFound
	case 1:
		return ruleModels[0].ToEntity(), nil
	default:
		return nil, domainerror.ErrRefAmbiguous
	}
}

// ListByAccount retrieves all rules for an account, newest first.
func (r *recurringRuleRepository) ListByAccount(ctx context.Context, accountID int64) ([]*entity.RecurringRule, error) {
	var ruleModels []model.RecurringRuleModel
	result := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at DESC").
		Find(&ruleModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toRuleEntities(ruleModels), nil
}

// ListEligible retrieves every active, unpaused rule across all accounts.
func (r *recurringRuleRepository) ListEligible(ctx context.Context) ([]*entity.RecurringRule, error) {
	var ruleModels []model.RecurringRuleModel
	result := r.db.WithContext(ctx).
		Where("active = ? AND paused = ?", true, false).
		Find(&ruleModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toRuleEntities(ruleModels), nil
}

// Update persists lifecycle and countdown changes.
func (r *recurringRuleRepository) Update(ctx context.Context, rule *entity.RecurringRule) error {
	ruleModel := model.RecurringRuleFromEntity(rule)
	result := r.db.WithContext(ctx).Save(ruleModel)
	if result.Error != nil {
		return result.Error
	}
	return nil
}

// toRuleEntities maps model rows to domain entities.
func toRuleEntities(ruleModels []model.RecurringRuleModel) []*entity.RecurringRule {
	rules := make([]*entity.RecurringRule, len(ruleModels))
	for i, rm := range ruleModels {
		rules[i] = rm.ToEntity()
	}
	return rules
}

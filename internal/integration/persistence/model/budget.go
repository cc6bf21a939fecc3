// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/expensebot/backend/internal/domain/entity"
)

// BudgetModel represents the budgets table in the database. Deletion is a
// soft flip of the active flag; rows are never removed.
type BudgetModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID   int64     `gorm:"not null;index"`
	Scope       string    `gorm:"type:varchar(10);not null"`
	Category    string    `gorm:"type:varchar(50)"`
	LimitAmount int64     `gorm:"not null"`
	Period      string    `gorm:"type:varchar(20);not null"`
	Active      bool      `gorm:"not null;default:true;index"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the BudgetModel.
func (BudgetModel) TableName() string {
	return "budgets"
}

// ToEntity converts a BudgetModel to a domain Budget entity.
func (m *BudgetModel) ToEntity() *entity.Budget {
	return &entity.Budget{
		ID:        m.ID,
		AccountID: m.AccountID,
		Scope:     entity.BudgetScope(m.Scope),
		Category:  m.Category,
		Limit:     m.LimitAmount,
		Period:    entity.BudgetPeriod(m.Period),
		Active:    m.Active,
		CreatedAt: m.CreatedAt,
	}
}

// BudgetFromEntity creates a BudgetModel from a domain Budget entity.
func BudgetFromEntity(budget *entity.Budget) *BudgetModel {
	return &BudgetModel{
		ID:          budget.ID,
		AccountID:   budget.AccountID,
		Scope:       string(budget.Scope),
		Category:    budget.Category,
		LimitAmount: budget.Limit,
		Period:      string(budget.Period),
		Active:      budget.Active,
		CreatedAt:   budget.CreatedAt,
	}
}

// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/expensebot/backend/internal/domain/entity"
)

// TransactionModel represents the transactions table in the database.
// The (recurring_rule_id, local_date) unique index is the storage-level
// guarantee that a rule generates at most one transaction per due date,
// even when two generation passes overlap.
type TransactionModel struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey"`
	AccountID       int64          `gorm:"not null;index"`
	Label           string         `gorm:"type:varchar(200);not null"`
	Amount          int64          `gorm:"not null"`
	Currency        string         `gorm:"type:varchar(10);not null"`
	Category        string         `gorm:"type:varchar(50);index"`
	Tags            string         `gorm:"type:varchar(200)"`
	Note            string         `gorm:"type:text"`
	ReceiptRef      string         `gorm:"type:varchar(255)"`
	CreatedAt       time.Time      `gorm:"not null"`
	LocalDate       time.Time      `gorm:"type:date;not null;index;uniqueIndex:idx_rule_local_date"`
	RecurringRuleID *uuid.UUID     `gorm:"type:uuid;uniqueIndex:idx_rule_local_date"`
	DeletedAt       gorm.DeletedAt `gorm:"index"` // supports undo without losing history
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:              m.ID,
		AccountID:       m.AccountID,
		Label:           m.Label,
		Amount:          m.Amount,
		Currency:        m.Currency,
		Category:        m.Category,
		Tags:            m.Tags,
		Note:            m.Note,
		ReceiptRef:      m.ReceiptRef,
		CreatedAt:       m.CreatedAt,
		LocalDate:       m.LocalDate,
		RecurringRuleID: m.RecurringRuleID,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(tx *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:              tx.ID,
		AccountID:       tx.AccountID,
		Label:           tx.Label,
		Amount:          tx.Amount,
		Currency:        tx.Currency,
		Category:        tx.Category,
		Tags:            tx.Tags,
		Note:            tx.Note,
		ReceiptRef:      tx.ReceiptRef,
		CreatedAt:       tx.CreatedAt,
		LocalDate:       tx.LocalDate,
		RecurringRuleID: tx.RecurringRuleID,
	}
}

// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/expensebot/backend/internal/domain/entity"
)

// AccountModel represents the accounts table in the database. The primary
// key is the numeric id supplied by the conversational layer.
type AccountModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false"`
	Timezone  string    `gorm:"type:varchar(64)"`
	Email     string    `gorm:"type:varchar(254)"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the AccountModel.
func (AccountModel) TableName() string {
	return "accounts"
}

// ToEntity converts an AccountModel to a domain Account entity.
func (m *AccountModel) ToEntity() *entity.Account {
	return &entity.Account{
		ID:        m.ID,
		Timezone:  m.Timezone,
		Email:     m.Email,
		CreatedAt: m.CreatedAt,
	}
}

// AccountFromEntity creates an AccountModel from a domain Account entity.
func AccountFromEntity(account *entity.Account) *AccountModel {
	return &AccountModel{
		ID:        account.ID,
		Timezone:  account.Timezone,
		Email:     account.Email,
		CreatedAt: account.CreatedAt,
	}
}

// Package entity defines the core business entities for the domain layer.
package entity

import "time"

// Account represents an owner of ledger, recurring and budget entities.
// The identifier is supplied by the conversational layer (a stable numeric
// chat/user id); the core never mints account ids itself.
type Account struct {
	ID        int64
	Timezone  string // IANA name; empty means the configured default
	Email     string // notification sink address, optional
	CreatedAt time.Time
}

// NewAccount creates a new Account entity.
func NewAccount(id int64, timezone, email string) *Account {
	return &Account{
		ID:        id,
		Timezone:  timezone,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
}

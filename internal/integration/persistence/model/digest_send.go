// Package model defines database models for persistence layer.
package model

import "time"

// DigestSendModel records a sent periodic digest per account per period.
// Persisting the dedupe state means restarts neither resend a digest nor
// forget that one went out.
type DigestSendModel struct {
	AccountID int64     `gorm:"primaryKey;autoIncrement:false"`
	PeriodKey string    `gorm:"type:varchar(16);primaryKey"`
	SentAt    time.Time `gorm:"not null"`
}

// TableName returns the table name for the DigestSendModel.
func (DigestSendModel) TableName() string {
	return "digest_sends"
}

// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/expensebot/backend/internal/domain/entity"
)

// RecurringRuleModel represents the recurring_rules table in the database.
// Rules are never hard-deleted; the terminal state is active = false.
type RecurringRuleModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	AccountID   int64     `gorm:"not null;index"`
	Label       string    `gorm:"type:varchar(200);not null"`
	Amount      int64     `gorm:"not null"`
	Currency    string    `gorm:"type:varchar(10);not null"`
	Category    string    `gorm:"type:varchar(50)"`
	Tags        string    `gorm:"type:varchar(200)"`
	Note        string    `gorm:"type:text"`
	Frequency   string    `gorm:"type:varchar(10);not null"`
	DayOfWeek   *int      `gorm:"type:smallint"`
	DayOfMonth  *int      `gorm:"type:smallint"`
	RepeatCount *int
	Remaining   *int
	Active      bool      `gorm:"not null;default:true;index"`
	Paused      bool      `gorm:"not null;default:false"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the RecurringRuleModel.
func (RecurringRuleModel) TableName() string {
	return "recurring_rules"
}

// ToEntity converts a RecurringRuleModel to a domain RecurringRule entity.
func (m *RecurringRuleModel) ToEntity() *entity.RecurringRule {
	return &entity.RecurringRule{
		ID:        m.ID,
		AccountID: m.AccountID,
		Template: entity.Template{
			Label:    m.Label,
			Amount:   m.Amount,
			Currency: m.Currency,
			Category: m.Category,
			Tags:     m.Tags,
			Note:     m.Note,
		},
		Schedule:    m.schedule(),
		RepeatCount: m.RepeatCount,
		Remaining:   m.Remaining,
		Active:      m.Active,
		Paused:      m.Paused,
		CreatedAt:   m.CreatedAt,
	}
}

// schedule rebuilds the Schedule variant from the stored columns. Rows are
// only ever written through validated creation, so an unrecognized frequency
// degrades to daily rather than failing the read.
func (m *RecurringRuleModel) schedule() entity.Schedule {
	switch entity.Frequency(m.Frequency) {
	case entity.FrequencyWeekly:
		var day *time.Weekday
		if m.DayOfWeek != nil {
			d := time.Weekday(*m.DayOfWeek)
			day = &d
		}
		return entity.WeeklySchedule{Day: day}
	case entity.FrequencyMonthly:
		return entity.MonthlySchedule{Day: m.DayOfMonth}
	default:
		return entity.DailySchedule{}
	}
}

// RecurringRuleFromEntity creates a RecurringRuleModel from a domain RecurringRule entity.
func RecurringRuleFromEntity(rule *entity.RecurringRule) *RecurringRuleModel {
	m := &RecurringRuleModel{
		ID:          rule.ID,
		AccountID:   rule.AccountID,
		Label:       rule.Template.Label,
		Amount:      rule.Template.Amount,
		Currency:    rule.Template.Currency,
		Category:    rule.Template.Category,
		Tags:        rule.Template.Tags,
		Note:        rule.Template.Note,
		Frequency:   string(rule.Schedule.Frequency()),
		RepeatCount: rule.RepeatCount,
		Remaining:   rule.Remaining,
		Active:      rule.Active,
		Paused:      rule.Paused,
		CreatedAt:   rule.CreatedAt,
	}

	switch s := rule.Schedule.(type) {
	case entity.DailySchedule:
		// no anchor
	case entity.WeeklySchedule:
		if s.Day != nil {
			d := int(*s.Day)
			m.DayOfWeek = &d
		}
	case entity.MonthlySchedule:
		m.DayOfMonth = s.Day
	}

	return m
}

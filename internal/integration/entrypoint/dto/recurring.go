// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/expensebot/backend/internal/domain/entity"
)

// CreateRuleRequest represents the request body for creating a recurring
// rule. Anchors default to "today" in the account's timezone when omitted.
type CreateRuleRequest struct {
	Label       string `json:"label" binding:"required,min=1,max=255"`
	Amount      int64  `json:"amount" binding:"required"`
	Currency    string `json:"currency,omitempty" binding:"omitempty,len=3"`
	Category    string `json:"category,omitempty" binding:"omitempty,max=100"`
	Tags        string `json:"tags,omitempty" binding:"omitempty,max=500"`
	Note        string `json:"note,omitempty" binding:"omitempty,max=1000"`
	Frequency   string `json:"frequency" binding:"required,oneof=daily weekly monthly"`
	DayOfWeek   *int   `json:"day_of_week,omitempty" binding:"omitempty,min=0,max=6"`
	DayOfMonth  *int   `json:"day_of_month,omitempty" binding:"omitempty,min=1,max=31"`
	RepeatCount *int   `json:"repeat_count,omitempty" binding:"omitempty,min=1"`
}

// UpdateRuleStateRequest represents the request body for pause/resume/cancel.
type UpdateRuleStateRequest struct {
	Active *bool `json:"active,omitempty"`
	Paused *bool `json:"paused,omitempty"`
}

// RecurringRuleResponse represents a recurring rule in API responses.
type RecurringRuleResponse struct {
	ID          string    `json:"id"`
	Ref         string    `json:"ref"`
	Label       string    `json:"label"`
	Amount      int64     `json:"amount"`
	Currency    string    `json:"currency"`
	Category    string    `json:"category,omitempty"`
	Tags        string    `json:"tags,omitempty"`
	Note        string    `json:"note,omitempty"`
	Frequency   string    `json:"frequency"`
	DayOfWeek   *int      `json:"day_of_week,omitempty"`
	DayOfMonth  *int      `json:"day_of_month,omitempty"`
	RepeatCount *int      `json:"repeat_count,omitempty"`
	Remaining   *int      `json:"remaining,omitempty"`
	Active      bool      `json:"active"`
	Paused      bool      `json:"paused"`
	CreatedAt   time.Time `json:"created_at"`
}

// RecurringRuleListResponse represents the response for listing rules.
type RecurringRuleListResponse struct {
	Rules []RecurringRuleResponse `json:"rules"`
}

// ToRecurringRuleResponse converts a RecurringRule entity to its DTO.
func ToRecurringRuleResponse(rule *entity.RecurringRule) RecurringRuleResponse {
	response := RecurringRuleResponse{
		ID:          rule.ID.String(),
		Ref:         ShortRef(rule.ID.String()),
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
	case entity.WeeklySchedule:
		if s.Day != nil {
			day := int(*s.Day)
			response.DayOfWeek = &day
		}
	case entity.MonthlySchedule:
		response.DayOfMonth = s.Day
	}

	return response
}

// ToRecurringRuleListResponse converts a slice of rules to the list DTO.
func ToRecurringRuleListResponse(rules []*entity.RecurringRule) RecurringRuleListResponse {
	response := RecurringRuleListResponse{
		Rules: make([]RecurringRuleResponse, 0, len(rules)),
	}
	for _, rule := range rules {
		response.Rules = append(response.Rules, ToRecurringRuleResponse(rule))
	}
	return response
}

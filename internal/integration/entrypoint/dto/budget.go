// Package dto defines data transfer objects for API requests and responses.
package dto

import (
	"time"

	"github.com/expensebot/backend/internal/application/usecase/budget"
	"github.com/expensebot/backend/internal/domain/entity"
	"github.com/expensebot/backend/internal/domain/valueobject"
)

// AddBudgetRequest represents the request body for adding a budget. Limit is
// in integer minor units.
type AddBudgetRequest struct {
	Scope    string `json:"scope" binding:"required,oneof=overall category"`
	Category string `json:"category,omitempty" binding:"omitempty,max=100"`
	Limit    int64  `json:"limit" binding:"required"`
	Period   string `json:"period" binding:"required,oneof=month month_rollover year"`
}

// BudgetResponse represents a budget in API responses.
type BudgetResponse struct {
	ID        string    `json:"id"`
	Ref       string    `json:"ref"`
	Scope     string    `json:"scope"`
	Category  string    `json:"category,omitempty"`
	Limit     int64     `json:"limit"`
	Period    string    `json:"period"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// BudgetProgressResponse represents one budget's progress position. Pct is
// omitted when the effective limit is zero.
type BudgetProgressResponse struct {
	Budget         BudgetResponse `json:"budget"`
	Spent          int64          `json:"spent"`
	EffectiveLimit int64          `json:"effective_limit"`
	Pct            *string        `json:"pct,omitempty"`
}

// BudgetListResponse represents the response for listing budgets.
type BudgetListResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

// AlertResponse represents one triggered budget alert.
type AlertResponse struct {
	BudgetRef      string  `json:"budget_ref"`
	Level          string  `json:"level"`
	Message        string  `json:"message"`
	Spent          int64   `json:"spent"`
	EffectiveLimit int64   `json:"effective_limit"`
	Pct            *string `json:"pct,omitempty"`
}

// AlertListResponse represents the response for an alert scan.
type AlertListResponse struct {
	Alerts []AlertResponse `json:"alerts"`
}

// ToBudgetResponse converts a Budget entity to its DTO.
func ToBudgetResponse(b *entity.Budget) BudgetResponse {
	return BudgetResponse{
		ID:        b.ID.String(),
		Ref:       ShortRef(b.ID.String()),
		Scope:     string(b.Scope),
		Category:  b.Category,
		Limit:     b.Limit,
		Period:    string(b.Period),
		Active:    b.Active,
		CreatedAt: b.CreatedAt,
	}
}

// ToBudgetListResponse converts a slice of budgets to the list DTO.
func ToBudgetListResponse(budgets []*entity.Budget) BudgetListResponse {
	response := BudgetListResponse{
		Budgets: make([]BudgetResponse, 0, len(budgets)),
	}
	for _, b := range budgets {
		response.Budgets = append(response.Budgets, ToBudgetResponse(b))
	}
	return response
}

// ToBudgetProgressResponse converts a budget and its progress to the DTO.
func ToBudgetProgressResponse(b *entity.Budget, p valueobject.BudgetProgress) BudgetProgressResponse {
	response := BudgetProgressResponse{
		Budget:         ToBudgetResponse(b),
		Spent:          p.Spent,
		EffectiveLimit: p.EffectiveLimit,
	}
	if p.Pct != nil {
		pct := p.Pct.StringFixed(1)
		response.Pct = &pct
	}
	return response
}

// ToAlertResponse converts a triggered alert to its DTO.
func ToAlertResponse(a budget.Alert) AlertResponse {
	level := "warning"
	if a.Level == valueobject.AlertExceeded {
		level = "exceeded"
	}

	response := AlertResponse{
		BudgetRef:      ShortRef(a.Budget.ID.String()),
		Level:          level,
		Message:        a.Message,
		Spent:          a.Progress.Spent,
		EffectiveLimit: a.Progress.EffectiveLimit,
	}
	if a.Progress.Pct != nil {
		pct := a.Progress.Pct.StringFixed(1)
		response.Pct = &pct
	}
	return response
}

// ToAlertListResponse converts an alert scan result to its DTO.
func ToAlertListResponse(alerts []budget.Alert) AlertListResponse {
	response := AlertListResponse{
		Alerts: make([]AlertResponse, 0, len(alerts)),
	}
	for _, a := range alerts {
		response.Alerts = append(response.Alerts, ToAlertResponse(a))
	}
	return response
}

// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/expensebot/backend/internal/application/adapter"
	"github.com/expensebot/backend/internal/application/usecase/budget"
	"github.com/expensebot/backend/internal/domain/entity"
	domainerror "github.com/expensebot/backend/internal/domain/error"
	"github.com/expensebot/backend/internal/integration/entrypoint/dto"
	"github.com/expensebot/backend/internal/integration/entrypoint/middleware"
)

// BudgetController handles budget endpoints.
type BudgetController struct {
	addUseCase      *budget.AddBudgetUseCase
	listUseCase     *budget.ListBudgetsUseCase
	deleteUseCase   *budget.DeleteBudgetUseCase
	progressUseCase *budget.GetProgressUseCase
	alertsUseCase   *budget.CheckAlertsUseCase
	budgetRepo      adapter.BudgetRepository
}

// NewBudgetController creates a new budget controller instance.
func NewBudgetController(
	addUseCase *budget.AddBudgetUseCase,
	listUseCase *budget.ListBudgetsUseCase,
	deleteUseCase *budget.DeleteBudgetUseCase,
	progressUseCase *budget.GetProgressUseCase,
	alertsUseCase *budget.CheckAlertsUseCase,
	budgetRepo adapter.BudgetRepository,
) *BudgetController {
	return &BudgetController{
		addUseCase:      addUseCase,
		listUseCase:     listUseCase,
		deleteUseCase:   deleteUseCase,
		progressUseCase: progressUseCase,
		alertsUseCase:   alertsUseCase,
		budgetRepo:      budgetRepo,
	}
}

// Add handles POST /budgets requests.
func (c *BudgetController) Add(ctx *gin.Context) {
	accountID, ok := middleware.GetAccountIDFromContext(ctx)
	if !ok {
		respondMissingAccount(ctx)
		return
	}

	var req dto.AddBudgetRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingBudgetFields),
		})
		return
	}

	output, err := c.addUseCase.Execute(ctx.Request.Context(), budget.AddBudgetInput{
		AccountID: accountID,
		Scope:     entity.BudgetScope(req.Scope),
		Category:  req.Category,
		Limit:     req.Limit,
		Period:    entity.BudgetPeriod(req.Period),
	})
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToBudgetResponse(output.Budget))
}

// List handles GET /budgets requests.
func (c *BudgetController) List(ctx *gin.Context) {
	accountID, ok := middleware.GetAccountIDFromContext(ctx)
	if !ok {
		respondMissingAccount(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), budget.ListBudgetsInput{AccountID: accountID})
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetListResponse(output.Budgets))
}

// Delete handles DELETE /budgets/:ref requests.
func (c *BudgetController) Delete(ctx *gin.Context) {
	accountID, ok := middleware.GetAccountIDFromContext(ctx)
	if !ok {
		respondMissingAccount(ctx)
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), budget.DeleteBudgetInput{
		AccountID: accountID,
		Ref:       ctx.Param("ref"),
	})
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetResponse(output.Budget))
}

// Progress handles GET /budgets/:ref/progress requests. Year and month
// query parameters default to the current UTC period.
func (c *BudgetController) Progress(ctx *gin.Context) {
	accountID, ok := middleware.GetAccountIDFromContext(ctx)
	if !ok {
		respondMissingAccount(ctx)
		return
	}

	b, err := c.budgetRepo.FindByRef(ctx.Request.Context(), accountID, ctx.Param("ref"))
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	year, month, ok := parsePeriodParams(ctx, false)
	if !ok {
		return
	}

	output, err := c.progressUseCase.Execute(ctx.Request.Context(), budget.GetProgressInput{
		Budget: b,
		Year:   year,
		Month:  *month,
	})
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToBudgetProgressResponse(b, output.Progress))
}

// Alerts handles GET /budgets/alerts requests, scanning every active budget
// against the account's current local period.
func (c *BudgetController) Alerts(ctx *gin.Context) {
	accountID, ok := middleware.GetAccountIDFromContext(ctx)
	if !ok {
		respondMissingAccount(ctx)
		return
	}

	output, err := c.alertsUseCase.Execute(ctx.Request.Context(), budget.CheckAlertsInput{AccountID: accountID})
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToAlertListResponse(output.Alerts))
}

// handleError maps domain errors to HTTP responses.
func (c *BudgetController) handleError(ctx *gin.Context, err error) {
	if respondResolutionFailure(ctx, err) {
		return
	}

	var budgetErr *domainerror.BudgetError
	if errors.As(err, &budgetErr) {
		statusCode := http.StatusBadRequest
		if budgetErr.Code == domainerror.ErrCodeBudgetNotFound {
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: budgetErr.Message,
			Code:  string(budgetErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

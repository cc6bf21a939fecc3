// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/expensebot/backend/internal/application/usecase/budget"
	"github.com/expensebot/backend/internal/application/usecase/transaction"
	domainerror "github.com/expensebot/backend/internal/domain/error"
	"github.com/expensebot/backend/internal/integration/entrypoint/dto"
	"github.com/expensebot/backend/internal/integration/entrypoint/middleware"
)

// TransactionController handles ledger transaction endpoints.
type TransactionController struct {
	postUseCase    *transaction.PostTransactionUseCase
	updateUseCase  *transaction.UpdateTransactionUseCase
	deleteUseCase  *transaction.DeleteTransactionUseCase
	listUseCase    *transaction.ListTransactionsUseCase
	searchUseCase  *transaction.SearchTransactionsUseCase
	summaryUseCase *transaction.PeriodSummaryUseCase
	compareUseCase *budget.ComparePeriodsUseCase
	alertsUseCase  *budget.CheckAlertsUseCase
}

// NewTransactionController creates a new transaction controller instance.
func NewTransactionController(
	postUseCase *transaction.PostTransactionUseCase,
	updateUseCase *transaction.UpdateTransactionUseCase,
	deleteUseCase *transaction.DeleteTransactionUseCase,
	listUseCase *transaction.ListTransactionsUseCase,
	searchUseCase *transaction.SearchTransactionsUseCase,
	summaryUseCase *transaction.PeriodSummaryUseCase,
	compareUseCase *budget.ComparePeriodsUseCase,
	alertsUseCase *budget.CheckAlertsUseCase,
) *TransactionController {
	return &TransactionController{
		postUseCase:    postUseCase,
		updateUseCase:  updateUseCase,
		deleteUseCase:  deleteUseCase,
		listUseCase:    listUseCase,
		searchUseCase:  searchUseCase,
		summaryUseCase: summaryUseCase,
		compareUseCase: compareUseCase,
		alertsUseCase:  alertsUseCase,
	}
}

// Post handles POST /transactions requests. The response carries the budget
// alerts the post triggered, computed against the just-committed ledger.
func (c *TransactionController) Post(ctx *gin.Context) {
	accountID, ok := middleware.GetAccountIDFromContext(ctx)
	if !ok {
		respondMissingAccount(ctx)
		return
	}

	var req dto.PostTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingLabel),
		})
		return
	}

	output, err := c.postUseCase.Execute(ctx.Request.Context(), transaction.PostTransactionInput{
		AccountID:  accountID,
		Label:      req.Label,
		Amount:     req.Amount,
		Currency:   req.Currency,
		Category:   req.Category,
		Tags:       req.Tags,
		Note:       req.Note,
		ReceiptRef: req.ReceiptRef,
	})
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	response := dto.PostTransactionResponse{
		Transaction: dto.ToTransactionResponse(output.Transaction),
		Alerts:      []dto.AlertResponse{},
	}
	if output.CreatedRule != nil {
		rule := dto.ToRecurringRuleResponse(output.CreatedRule)
		response.CreatedRule = &rule
	}

	alerts, err := c.alertsUseCase.Execute(ctx.Request.Context(), budget.CheckAlertsInput{AccountID: accountID})
	if err != nil {
		// The post stands either way; surface the transaction without alerts.
		slog.Error("Alert scan after post failed", "account_id", accountID, "error", err)
	} else {
		response.Alerts = dto.ToAlertListResponse(alerts.Alerts).Alerts
	}

	ctx.JSON(http.StatusCreated, response)
}

// Update handles PATCH /transactions/:ref requests.
func (c *TransactionController) Update(ctx *gin.Context) {
	accountID, ok := middleware.GetAccountIDFromContext(ctx)
	if !ok {
		respondMissingAccount(ctx)
		return
	}

	var req dto.UpdateTransactionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	output, err := c.updateUseCase.Execute(ctx.Request.Context(), transaction.UpdateTransactionInput{
		AccountID:  accountID,
		Ref:        ctx.Param("ref"),
		Label:      req.Label,
		Category:   req.Category,
		Tags:       req.Tags,
		Note:       req.Note,
		ReceiptRef: req.ReceiptRef,
	})
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// Delete handles DELETE /transactions/:ref requests.
func (c *TransactionController) Delete(ctx *gin.Context) {
	accountID, ok := middleware.GetAccountIDFromContext(ctx)
	if !ok {
		respondMissingAccount(ctx)
		return
	}

	output, err := c.deleteUseCase.Execute(ctx.Request.Context(), transaction.DeleteTransactionInput{
		AccountID: accountID,
		Ref:       ctx.Param("ref"),
	})
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionResponse(output.Transaction))
}

// List handles GET /transactions requests.
func (c *TransactionController) List(ctx *gin.Context) {
	accountID, ok := middleware.GetAccountIDFromContext(ctx)
	if !ok {
		respondMissingAccount(ctx)
		return
	}

	input := transaction.ListTransactionsInput{AccountID: accountID}
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			input.Limit = limit
		}
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Transactions))
}

// Search handles GET /transactions/search requests.
func (c *TransactionController) Search(ctx *gin.Context) {
	accountID, ok := middleware.GetAccountIDFromContext(ctx)
	if !ok {
		respondMissingAccount(ctx)
		return
	}

	input := transaction.SearchTransactionsInput{
		AccountID: accountID,
		Query:     ctx.Query("q"),
	}
	if limitStr := ctx.Query("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			input.Limit = limit
		}
	}

	output, err := c.searchUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Transactions))
}

// Summary handles GET /transactions/summary requests. Without a month query
// parameter the summary covers the whole year.
func (c *TransactionController) Summary(ctx *gin.Context) {
	accountID, ok := middleware.GetAccountIDFromContext(ctx)
	if !ok {
		respondMissingAccount(ctx)
		return
	}

	year, month, ok := parsePeriodParams(ctx, true)
	if !ok {
		return
	}

	output, err := c.summaryUseCase.Execute(ctx.Request.Context(), transaction.PeriodSummaryInput{
		AccountID: accountID,
		Year:      year,
		Month:     month,
	})
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToPeriodSummaryResponse(output.Window, output.Totals))
}

// Compare handles GET /transactions/compare requests, diffing the given
// month against its predecessor.
func (c *TransactionController) Compare(ctx *gin.Context) {
	accountID, ok := middleware.GetAccountIDFromContext(ctx)
	if !ok {
		respondMissingAccount(ctx)
		return
	}

	year, month, ok := parsePeriodParams(ctx, false)
	if !ok {
		return
	}

	output, err := c.compareUseCase.Execute(ctx.Request.Context(), budget.ComparePeriodsInput{
		AccountID: accountID,
		Year:      year,
		Month:     *month,
	})
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToComparePeriodsResponse(output.Comparison))
}

// parsePeriodParams reads year and month query parameters, defaulting to the
// current UTC period. When monthOptional is true an absent month selects a
// yearly window (nil month).
func parsePeriodParams(ctx *gin.Context, monthOptional bool) (int, *time.Month, bool) {
	now := time.Now().UTC()
	year := now.Year()

	if yearStr := ctx.Query("year"); yearStr != "" {
		y, err := strconv.Atoi(yearStr)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid year"})
			return 0, nil, false
		}
		year = y
	}

	monthStr := ctx.Query("month")
	if monthStr == "" {
		if monthOptional {
			return year, nil, true
		}
		month := now.Month()
		return year, &month, true
	}

	m, err := strconv.Atoi(monthStr)
	if err != nil || m < 1 || m > 12 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid month. Use 1-12"})
		return 0, nil, false
	}
	month := time.Month(m)
	return year, &month, true
}

// handleError maps domain errors to HTTP responses.
func (c *TransactionController) handleError(ctx *gin.Context, err error) {
	if respondResolutionFailure(ctx, err) {
		return
	}

	var ledgerErr *domainerror.LedgerError
	if errors.As(err, &ledgerErr) {
		statusCode := http.StatusBadRequest
		if ledgerErr.Code == domainerror.ErrCodeTransactionNotFound {
			statusCode = http.StatusNotFound
		}
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: ledgerErr.Message,
			Code:  string(ledgerErr.Code),
		})
		return
	}

	var recurringErr *domainerror.RecurringError
	if errors.As(err, &recurringErr) {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: recurringErr.Message,
			Code:  string(recurringErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// respondMissingAccount writes the standard missing-account response.
func respondMissingAccount(ctx *gin.Context) {
	ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error: "Account not identified",
		Code:  string(domainerror.ErrCodeMissingAccount),
	})
}

// respondResolutionFailure maps the two short-reference failures to distinct
// user-visible responses. Returns false when err is neither.
func respondResolutionFailure(ctx *gin.Context, err error) bool {
	switch {
	case errors.Is(err, domainerror.ErrRefNotFound):
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{
			Error: "Nothing matched that reference",
			Code:  string(domainerror.ErrCodeRefNotFound),
		})
		return true
	case errors.Is(err, domainerror.ErrRefAmbiguous):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{
			Error: "That reference matches more than one item. Use more characters",
			Code:  string(domainerror.ErrCodeRefAmbiguous),
		})
		return true
	}
	return false
}

// Package controller implements HTTP handlers for the API endpoints.
package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/expensebot/backend/internal/application/usecase/recurring"
	"github.com/expensebot/backend/internal/domain/entity"
	domainerror "github.com/expensebot/backend/internal/domain/error"
	"github.com/expensebot/backend/internal/integration/entrypoint/dto"
	"github.com/expensebot/backend/internal/integration/entrypoint/middleware"
)

// RecurringController handles recurring rule endpoints.
type RecurringController struct {
	createUseCase      *recurring.CreateRuleUseCase
	listUseCase        *recurring.ListRulesUseCase
	updateStateUseCase *recurring.UpdateRuleStateUseCase
	generateDueUseCase *recurring.GenerateDueUseCase
}

// NewRecurringController creates a new recurring controller instance.
func NewRecurringController(
	createUseCase *recurring.CreateRuleUseCase,
	listUseCase *recurring.ListRulesUseCase,
	updateStateUseCase *recurring.UpdateRuleStateUseCase,
	generateDueUseCase *recurring.GenerateDueUseCase,
) *RecurringController {
	return &RecurringController{
		createUseCase:      createUseCase,
		listUseCase:        listUseCase,
		updateStateUseCase: updateStateUseCase,
		generateDueUseCase: generateDueUseCase,
	}
}

// Create handles POST /rules requests.
func (c *RecurringController) Create(ctx *gin.Context) {
	accountID, ok := middleware.GetAccountIDFromContext(ctx)
	if !ok {
		respondMissingAccount(ctx)
		return
	}

	var req dto.CreateRuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body: " + err.Error(),
			Code:  string(domainerror.ErrCodeMissingRuleFields),
		})
		return
	}

	input := recurring.CreateRuleInput{
		AccountID:   accountID,
		Label:       req.Label,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Category:    req.Category,
		Tags:        req.Tags,
		Note:        req.Note,
		Frequency:   entity.Frequency(req.Frequency),
		DayOfMonth:  req.DayOfMonth,
		RepeatCount: req.RepeatCount,
	}
	if req.DayOfWeek != nil {
		day := time.Weekday(*req.DayOfWeek)
		input.DayOfWeek = &day
	}

	output, err := c.createUseCase.Execute(ctx.Request.Context(), input)
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToRecurringRuleResponse(output.Rule))
}

// List handles GET /rules requests.
func (c *RecurringController) List(ctx *gin.Context) {
	accountID, ok := middleware.GetAccountIDFromContext(ctx)
	if !ok {
		respondMissingAccount(ctx)
		return
	}

	output, err := c.listUseCase.Execute(ctx.Request.Context(), recurring.ListRulesInput{AccountID: accountID})
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringRuleListResponse(output.Rules))
}

// UpdateState handles PATCH /rules/:ref requests (pause/resume/cancel).
func (c *RecurringController) UpdateState(ctx *gin.Context) {
	accountID, ok := middleware.GetAccountIDFromContext(ctx)
	if !ok {
		respondMissingAccount(ctx)
		return
	}

	var req dto.UpdateRuleStateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error: "Invalid request body",
		})
		return
	}

	output, err := c.updateStateUseCase.Execute(ctx.Request.Context(), recurring.UpdateRuleStateInput{
		AccountID: accountID,
		Ref:       ctx.Param("ref"),
		Active:    req.Active,
		Paused:    req.Paused,
	})
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRecurringRuleResponse(output.Rule))
}

// GenerateDue handles POST /rules/generate requests. The periodic worker is
// the normal driver; this endpoint lets an external scheduler or an operator
// trigger the same idempotent pass.
func (c *RecurringController) GenerateDue(ctx *gin.Context) {
	output, err := c.generateDueUseCase.Execute(ctx.Request.Context())
	if err != nil {
		c.handleError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTransactionListResponse(output.Transactions))
}

// handleError maps domain errors to HTTP responses.
func (c *RecurringController) handleError(ctx *gin.Context, err error) {
	if respondResolutionFailure(ctx, err) {
		return
	}

	var recurringErr *domainerror.RecurringError
	if errors.As(err, &recurringErr) {
		statusCode := c.getStatusCodeForRecurringError(recurringErr.Code)
		ctx.JSON(statusCode, dto.ErrorResponse{
			Error: recurringErr.Message,
			Code:  string(recurringErr.Code),
		})
		return
	}

	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Error: "An internal error occurred",
	})
}

// getStatusCodeForRecurringError maps recurring error codes to HTTP status codes.
func (c *RecurringController) getStatusCodeForRecurringError(code domainerror.RecurringErrorCode) int {
	switch code {
	case domainerror.ErrCodeRecurringRuleNotFound:
		return http.StatusNotFound
	case domainerror.ErrCodeInvalidRecurrence,
		domainerror.ErrCodeMissingRuleFields:
		return http.StatusBadRequest
	case domainerror.ErrCodeRuleTerminal:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Package error defines domain-specific errors for the Expense Bot core.
package error

import "errors"

// Budget domain errors.
var (
	// ErrInvalidScope is returned when the scope kind and scope value disagree
	// (category scope without a category, or overall scope with one).
	ErrInvalidScope = errors.New("invalid budget scope")

	// ErrInvalidPeriod is returned when the budget period is not recognized.
	ErrInvalidPeriod = errors.New("invalid budget period")

	// ErrInvalidLimitAmount is returned when the limit amount is zero or negative.
	ErrInvalidLimitAmount = errors.New("invalid limit amount")

	// ErrBudgetNotFound is returned when a budget reference does not resolve to an owned budget.
	ErrBudgetNotFound = errors.New("budget not found")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BDG-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidScope        BudgetErrorCode = "BDG-010001"
	ErrCodeInvalidPeriod       BudgetErrorCode = "BDG-010002"
	ErrCodeInvalidLimitAmount  BudgetErrorCode = "BDG-010003"
	ErrCodeMissingBudgetFields BudgetErrorCode = "BDG-010004"

	// Resolution errors (02XXXX)
	ErrCodeBudgetNotFound BudgetErrorCode = "BDG-020001"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

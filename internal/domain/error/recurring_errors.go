// Package error defines domain-specific errors for the Expense Bot core.
package error

import "errors"

// Recurring rule domain errors.
var (
	// ErrInvalidRecurrence is returned when the frequency or anchor of a rule is invalid at creation.
	ErrInvalidRecurrence = errors.New("invalid recurrence")

	// ErrRecurringRuleNotFound is returned when a rule reference does not resolve to an owned rule.
	ErrRecurringRuleNotFound = errors.New("recurring rule not found")

	// ErrRuleTerminal is returned when a state change is attempted on a cancelled or exhausted rule.
	ErrRuleTerminal = errors.New("recurring rule is cancelled")

	// ErrGenerationConflict is returned when a concurrent generation pass already
	// produced the transaction for this rule and date. Callers treat it as
	// already handled, not as a failure.
	ErrGenerationConflict = errors.New("transaction already generated for this rule and date")
)

// RecurringErrorCode defines error codes for recurring rule errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecurringErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidRecurrence RecurringErrorCode = "REC-010001"
	ErrCodeMissingRuleFields RecurringErrorCode = "REC-010002"

	// Resolution errors (02XXXX)
	ErrCodeRecurringRuleNotFound RecurringErrorCode = "REC-020001"
	ErrCodeRuleTerminal          RecurringErrorCode = "REC-020002"

	// Generation errors (03XXXX)
	ErrCodeGenerationConflict RecurringErrorCode = "REC-030001"
)

// RecurringError represents a recurring rule error with code and message.
type RecurringError struct {
	Code    RecurringErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecurringError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecurringError) Unwrap() error {
	return e.Err
}

// NewRecurringError creates a new RecurringError with the given code and message.
func NewRecurringError(code RecurringErrorCode, message string, err error) *RecurringError {
	return &RecurringError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

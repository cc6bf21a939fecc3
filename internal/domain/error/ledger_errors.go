// Package error defines domain-specific errors for the Expense Bot core.
package error

import "errors"

// Ledger domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction reference does not
	// resolve to an owned transaction.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrInvalidAmount is returned when a transaction amount is zero or negative.
	ErrInvalidAmount = errors.New("invalid transaction amount")

	// ErrMissingLabel is returned when a transaction label is empty.
	ErrMissingLabel = errors.New("transaction label is required")
)

// LedgerErrorCode defines error codes for ledger errors.
// Format: LGR-XXYYYY where XX is category and YYYY is specific error.
type LedgerErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAmount LedgerErrorCode = "LGR-010001"
	ErrCodeMissingLabel  LedgerErrorCode = "LGR-010002"

	// Resolution errors (02XXXX)
	ErrCodeTransactionNotFound LedgerErrorCode = "LGR-020001"
)

// LedgerError represents a ledger error with code and message.
type LedgerError struct {
	Code    LedgerErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *LedgerError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *LedgerError) Unwrap() error {
	return e.Err
}

// NewLedgerError creates a new LedgerError with the given code and message.
func NewLedgerError(code LedgerErrorCode, message string, err error) *LedgerError {
	return &LedgerError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

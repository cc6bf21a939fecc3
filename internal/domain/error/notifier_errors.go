// Package error defines domain-specific errors for the Expense Bot core.
package error

import "errors"

// Notifier errors. Notification failures are always best-effort: they are
// logged by the caller and never roll back the ledger write that triggered
// them.
var (
	// ErrPermanentNotifyFailure marks a failure that retrying cannot fix.
	ErrPermanentNotifyFailure = errors.New("permanent notification failure")

	// ErrTemporaryNotifyFailure marks a failure that may succeed on retry.
	ErrTemporaryNotifyFailure = errors.New("temporary notification failure")
)

// NotifierErrorCode defines error codes for notifier errors.
type NotifierErrorCode string

const (
	ErrCodePermanentNotifyFailure NotifierErrorCode = "NTF-010001"
	ErrCodeTemporaryNotifyFailure NotifierErrorCode = "NTF-010002"
)

// NotifierError represents a notification error with code and message.
type NotifierError struct {
	Code    NotifierErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *NotifierError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *NotifierError) Unwrap() error {
	return e.Err
}

// NewNotifierError creates a new NotifierError with the given code and message.
func NewNotifierError(code NotifierErrorCode, message string, err error) *NotifierError {
	return &NotifierError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

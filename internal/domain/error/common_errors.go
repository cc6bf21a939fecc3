// Package error defines domain-specific errors for the Expense Bot core.
package error

// CommonErrorCode defines error codes shared across the API surface.
type CommonErrorCode string

const (
	ErrCodeMissingAccount CommonErrorCode = "CMN-010001"
	ErrCodeInvalidAccount CommonErrorCode = "CMN-010002"
	ErrCodeRateLimited    CommonErrorCode = "CMN-020001"
)

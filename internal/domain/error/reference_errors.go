// Package error defines domain-specific errors for the Expense Bot core.
package error

import "errors"

// Short-reference resolution errors. Zero matches and multiple matches are
// distinct outcomes so callers can tell "no such item" from "be more
// specific"; both are resolution failures.
var (
	// ErrRefNotFound is returned when a reference matches no owned entity.
	ErrRefNotFound = errors.New("reference matched nothing")

	// ErrRefAmbiguous is returned when a prefix reference matches more than one owned entity.
	ErrRefAmbiguous = errors.New("reference is ambiguous")
)

// ReferenceErrorCode defines error codes for short-reference errors.
// Format: REF-XXYYYY where XX is category and YYYY is specific error.
type ReferenceErrorCode string

const (
	ErrCodeRefNotFound  ReferenceErrorCode = "REF-010001"
	ErrCodeRefAmbiguous ReferenceErrorCode = "REF-010002"
)

// IsResolutionFailure reports whether err is either short-reference failure.
func IsResolutionFailure(err error) bool {
	return errors.Is(err, ErrRefNotFound) || errors.Is(err, ErrRefAmbiguous)
}

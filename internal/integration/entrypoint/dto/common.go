// Package dto defines data transfer objects for API requests and responses.
package dto

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

// shortRefLength is the length of the display prefix of an identifier.
const shortRefLength = 8

// ShortRef returns the display prefix of a full identifier.
func ShortRef(id string) string {
	if len(id) <= shortRefLength {
		return id
	}
	return id[:shortRefLength]
}

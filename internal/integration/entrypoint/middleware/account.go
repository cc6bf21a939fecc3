// Package middleware provides HTTP middleware for the API endpoints.
package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	domainerror "github.com/expensebot/backend/internal/domain/error"
	"github.com/expensebot/backend/internal/integration/entrypoint/dto"
)

// ContextKey is a type for context keys.
type ContextKey string

// AccountIDKey is the context key for the calling account's id.
const AccountIDKey ContextKey = "account_id"

// accountIDHeader carries the caller's account id. The conversational layer
// in front of this API authenticates the chat user; the core trusts the id
// it forwards and scopes every operation to it.
const accountIDHeader = "X-Account-ID"

// AccountMiddleware resolves the calling account for every request.
type AccountMiddleware struct{}

// NewAccountMiddleware creates a new account middleware instance.
func NewAccountMiddleware() *AccountMiddleware {
	return &AccountMiddleware{}
}

// Identify returns a Gin middleware handler that requires the account header.
func (m *AccountMiddleware) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(accountIDHeader)
		if header == "" {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "X-Account-ID header is required",
				Code:  string(domainerror.ErrCodeMissingAccount),
			})
			c.Abort()
			return
		}

		accountID, err := strconv.ParseInt(header, 10, 64)
		if err != nil || accountID <= 0 {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error: "X-Account-ID must be a positive integer",
				Code:  string(domainerror.ErrCodeInvalidAccount),
			})
			c.Abort()
			return
		}

		c.Set(string(AccountIDKey), accountID)
		c.Next()
	}
}

// GetAccountIDFromContext extracts the account id from the Gin context.
func GetAccountIDFromContext(c *gin.Context) (int64, bool) {
	value, exists := c.Get(string(AccountIDKey))
	if !exists {
		return 0, false
	}
	id, ok := value.(int64)
	return id, ok
}

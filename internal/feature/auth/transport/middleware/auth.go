// Package middleware provides the bearer-token guard for protected routes.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"users_backend/internal/shared/apiresponse"
)

// ContextUserID is the Gin context key the authenticated user ID is
// stored under.
const ContextUserID = "userID"

// TokenVerifier resolves a presented bearer token to a user ID.
// Following Go convention: interfaces are defined by the consumer
// (middleware), not the provider (usecase).
type TokenVerifier interface {
	Verify(ctx context.Context, tokenID string) (uint, error)
}

// AuthRequired returns a Gin middleware that validates the bearer
// token on every request and restricts access to authenticated users.
func AuthRequired(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			apiresponse.Abort(c, http.StatusUnauthorized, "authentication required", "missing bearer token")
			return
		}
		tokenID := strings.TrimPrefix(auth, "Bearer ")

		userID, err := verifier.Verify(c.Request.Context(), tokenID)
		if err != nil {
			apiresponse.Abort(c, http.StatusUnauthorized, "authentication required", "invalid or revoked token")
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// CurrentUserID extracts the authenticated user ID set by AuthRequired.
func CurrentUserID(c *gin.Context) uint {
	id, ok := c.Get(ContextUserID)
	if !ok {
		return 0
	}
	userID, ok := id.(uint)
	if !ok {
		return 0
	}
	return userID
}

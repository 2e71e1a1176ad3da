// Package handler provides the HTTP handlers for the auth feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"users_backend/internal/feature/auth/transport/http/dto"
	"users_backend/internal/feature/auth/transport/middleware"
	userentity "users_backend/internal/feature/users/domain/entity"
	"users_backend/internal/shared/apiresponse"
)

// AuthUsecase defines the credential operations the handler depends on.
// Following Go convention: interfaces are defined by the consumer
// (handler), not the provider (usecase).
type AuthUsecase interface {
	// Login authenticates an email/password pair and issues a bearer token.
	Login(ctx context.Context, email, password string) (*userentity.User, string, error)
	// Logout revokes every token of the account.
	Logout(ctx context.Context, userID uint) error
	// Me returns the account bound to the request.
	Me(ctx context.Context, userID uint) (*userentity.User, error)
}

// AuthHandler handles HTTP requests for credential operations.
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Login handles POST /login. Validation failures return 422; any
// authentication failure returns 401 with the same message, so
// accounts cannot be enumerated.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		apiresponse.Error(c, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return
	}

	user, token, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "email", req.Email, "remote_addr", c.ClientIP())
		apiresponse.Error(c, http.StatusUnauthorized, "invalid credentials", nil)
		return
	}

	slog.Info("user login successful", "user_id", user.ID, "remote_addr", c.ClientIP())
	apiresponse.Success(c, http.StatusOK, "logged in successfully", gin.H{
		"user":  user,
		"token": token,
	})
}

// Logout handles POST /logout. All of the account's tokens are
// revoked, not just the one that authenticated this request.
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	if err := h.auth.Logout(c.Request.Context(), userID); err != nil {
		slog.Error("logout failed", "user_id", userID, "error", err)
		apiresponse.Error(c, http.StatusInternalServerError, "failed to log out", nil)
		return
	}

	slog.Info("user logout successful", "user_id", userID)
	apiresponse.Success(c, http.StatusOK, "logged out successfully", nil)
}

// Me handles GET /me.
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.CurrentUserID(c)

	user, err := h.auth.Me(c.Request.Context(), userID)
	if err != nil {
		apiresponse.Error(c, http.StatusNotFound, "user not found", nil)
		return
	}

	apiresponse.Success(c, http.StatusOK, "", user)
}

// Package handler provides the HTTP handlers for the user directory.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"users_backend/internal/feature/avatar"
	"users_backend/internal/feature/users/domain/entity"
	"users_backend/internal/feature/users/transport/http/dto"
	"users_backend/internal/feature/users/usecase"
	"users_backend/internal/shared/apiresponse"
)

// UserUsecase defines the directory operations the handler depends on.
// Following Go convention: interfaces are defined by the consumer
// (handler), not the provider (usecase).
type UserUsecase interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*entity.User, error)
	Get(ctx context.Context, id uint) (*entity.User, error)
	List(ctx context.Context, page int) ([]entity.User, int64, error)
	Update(ctx context.Context, id uint, in usecase.UpdateInput) (*entity.User, error)
	UpdatePassword(ctx context.Context, id uint, password string) error
	Delete(ctx context.Context, id uint) error
	Restore(ctx context.Context, id uint) error
	Annihilate(ctx context.Context, id uint) error
	UpdateAvatar(ctx context.Context, id uint, file avatar.File) (string, error)
	DeleteAvatar(ctx context.Context, id uint) error
}

// UserHandler handles HTTP requests for user-directory operations.
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// parseID reads the :id path parameter. A non-numeric value responds
// 404 and returns false; IDs that merely don't exist also end up as
// 404, so the two cases are indistinguishable to clients.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		apiresponse.Error(c, http.StatusNotFound, "user not found", nil)
		return 0, false
	}
	return uint(id), true
}

// duplicateFieldErrors maps a uniqueness failure to the field->message
// form of the error envelope.
func duplicateFieldErrors(err error) (gin.H, bool) {
	switch {
	case errors.Is(err, usecase.ErrUsernameTaken):
		return gin.H{"username": "has already been taken"}, true
	case errors.Is(err, usecase.ErrEmailTaken):
		return gin.H{"email": "has already been taken"}, true
	}
	return nil, false
}

// formFile converts the optional multipart file part into an avatar.File.
func formFile(c *gin.Context, field string) (*avatar.File, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	return &avatar.File{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     f,
	}, nil
}

// Register handles POST /register. The payload is multipart form data
// with an optional "avatar" file part.
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBind(&req); err != nil {
		apiresponse.Error(c, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return
	}

	file, err := formFile(c, "avatar")
	if err != nil {
		apiresponse.Error(c, http.StatusUnprocessableEntity, "validation failed", "invalid avatar file")
		return
	}

	user, err := h.users.Register(c.Request.Context(), usecase.RegisterInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Avatar:   file,
	})
	if err != nil {
		if fields, ok := duplicateFieldErrors(err); ok {
			apiresponse.Error(c, http.StatusUnprocessableEntity, "validation failed", fields)
			return
		}
		slog.Error("registration failed", "error", err)
		apiresponse.Error(c, http.StatusInternalServerError, "failed to register user", nil)
		return
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	apiresponse.Success(c, http.StatusCreated, "user registered successfully", user)
}

// Index handles GET /users. Pages are fixed-size and 1-based; an
// absent or invalid page parameter means the first page.
func (h *UserHandler) Index(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}

	users, total, err := h.users.List(c.Request.Context(), page)
	if err != nil {
		slog.Error("user listing failed", "error", err)
		apiresponse.Error(c, http.StatusInternalServerError, "failed to list users", nil)
		return
	}

	apiresponse.Success(c, http.StatusOK, "", gin.H{
		"users":     users,
		"total":     total,
		"page":      page,
		"page_size": usecase.PageSize,
	})
}

// Show handles GET /users/:id.
func (h *UserHandler) Show(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	user, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		apiresponse.Error(c, http.StatusNotFound, "user not found", nil)
		return
	}

	apiresponse.Success(c, http.StatusOK, "", user)
}

// Update handles PUT /users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		apiresponse.Error(c, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return
	}

	user, err := h.users.Update(c.Request.Context(), id, usecase.UpdateInput{
		Name:     req.Name,
		Username: req.Username,
		Email:    req.Email,
	})
	if err != nil {
		if fields, ok := duplicateFieldErrors(err); ok {
			apiresponse.Error(c, http.StatusUnprocessableEntity, "validation failed", fields)
			return
		}
		if errors.Is(err, usecase.ErrUserNotFound) {
			apiresponse.Error(c, http.StatusNotFound, "user not found", nil)
			return
		}
		slog.Error("user update failed", "user_id", id, "error", err)
		apiresponse.Error(c, http.StatusInternalServerError, "failed to update user", nil)
		return
	}

	apiresponse.Success(c, http.StatusOK, "user updated successfully", user)
}

// UpdatePassword handles PATCH /users/:id/update-password.
func (h *UserHandler) UpdatePassword(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.UpdatePasswordReq
	if err := c.ShouldBindJSON(&req); err != nil {
		apiresponse.Error(c, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return
	}

	if err := h.users.UpdatePassword(c.Request.Context(), id, req.Password); err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			apiresponse.Error(c, http.StatusNotFound, "user not found", nil)
			return
		}
		slog.Error("password update failed", "user_id", id, "error", err)
		apiresponse.Error(c, http.StatusInternalServerError, "failed to update password", nil)
		return
	}

	apiresponse.Success(c, http.StatusOK, "password updated successfully", nil)
}

// Delete handles DELETE /users/:id (soft delete).
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			apiresponse.Error(c, http.StatusNotFound, "user not found", nil)
			return
		}
		slog.Error("user delete failed", "user_id", id, "error", err)
		apiresponse.Error(c, http.StatusInternalServerError, "failed to delete user", nil)
		return
	}

	apiresponse.Success(c, http.StatusOK, "user deleted successfully", nil)
}

// Restore handles PATCH /users/:id/restore. Only soft-deleted users
// can be restored.
func (h *UserHandler) Restore(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.users.Restore(c.Request.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			apiresponse.Error(c, http.StatusNotFound, "user not found", nil)
			return
		}
		slog.Error("user restore failed", "user_id", id, "error", err)
		apiresponse.Error(c, http.StatusInternalServerError, "failed to restore user", nil)
		return
	}

	apiresponse.Success(c, http.StatusOK, "user restored successfully", nil)
}

// Annihilate handles DELETE /users/:id/annihilate. Permanent and
// irreversible; reaches soft-deleted users too.
func (h *UserHandler) Annihilate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.users.Annihilate(c.Request.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrUserNotFound) {
			apiresponse.Error(c, http.StatusNotFound, "user not found", nil)
			return
		}
		slog.Error("user annihilation failed", "user_id", id, "error", err)
		apiresponse.Error(c, http.StatusInternalServerError, "failed to delete user", nil)
		return
	}

	apiresponse.Success(c, http.StatusOK, "user permanently deleted", nil)
}

// UpdateAvatar handles POST /users/:id/update-avatar. The file part is
// required here, unlike registration.
func (h *UserHandler) UpdateAvatar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	file, err := formFile(c, "avatar")
	if err != nil || file == nil {
		apiresponse.Error(c, http.StatusUnprocessableEntity, "validation failed", gin.H{"avatar": "is required"})
		return
	}

	url, err := h.users.UpdateAvatar(c.Request.Context(), id, *file)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			apiresponse.Error(c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, avatar.ErrUnsupportedFileType):
			apiresponse.Error(c, http.StatusUnprocessableEntity, "validation failed", gin.H{"avatar": "file type is not supported"})
		default:
			slog.Error("avatar update failed", "user_id", id, "error", err)
			apiresponse.Error(c, http.StatusInternalServerError, "failed to update avatar", nil)
		}
		return
	}

	apiresponse.Success(c, http.StatusOK, "avatar updated successfully", gin.H{"avatar_url": url})
}

// DeleteAvatar handles DELETE /users/:id/delete-avatar. Removing an
// avatar that was never set is a client error, stricter than the
// storage layer's idempotent delete.
func (h *UserHandler) DeleteAvatar(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.users.DeleteAvatar(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserNotFound):
			apiresponse.Error(c, http.StatusNotFound, "user not found", nil)
		case errors.Is(err, usecase.ErrNoAvatar):
			apiresponse.Error(c, http.StatusBadRequest, "user has no avatar", nil)
		default:
			slog.Error("avatar delete failed", "user_id", id, "error", err)
			apiresponse.Error(c, http.StatusInternalServerError, "failed to delete avatar", nil)
		}
		return
	}

	apiresponse.Success(c, http.StatusOK, "avatar deleted successfully", nil)
}

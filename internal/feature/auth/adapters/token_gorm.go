package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"users_backend/internal/feature/auth/domain/entity"
	"users_backend/internal/feature/auth/usecase"
)

// tokenGorm is a GORM implementation of the TokenRepository interface.
type tokenGorm struct {
	db *gorm.DB
}

// Compile-time check that tokenGorm implements TokenRepository.
var _ usecase.TokenRepository = (*tokenGorm)(nil)

// NewTokenGorm creates a new tokenGorm instance.
func NewTokenGorm(db *gorm.DB) *tokenGorm {
	return &tokenGorm{db: db}
}

// Create persists a freshly issued token.
func (r *tokenGorm) Create(ctx context.Context, token *entity.Token) error {
	model := TokenModelFromEntity(token)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByID retrieves a token by its value.
func (r *tokenGorm) FindByID(ctx context.Context, id string) (*entity.Token, error) {
	var model TokenModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrTokenNotFound
		}
		return nil, err
	}
	return model.ToEntity(), nil
}

// RevokeAllByUserID revokes every active token of a user.
func (r *tokenGorm) RevokeAllByUserID(ctx context.Context, userID uint) error {
	now := time.Now()
	return r.db.WithContext(ctx).
		Model(&TokenModel{}).
		Where("user_id = ? AND revoked_at IS NULL", userID).
		Update("revoked_at", now).Error
}

// DeleteAllByUserID permanently removes every token of a user.
func (r *tokenGorm) DeleteAllByUserID(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&TokenModel{}).Error
}

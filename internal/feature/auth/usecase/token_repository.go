package usecase

import (
	"context"

	"users_backend/internal/feature/auth/domain/entity"
)

// TokenRepository abstracts the persistence layer for bearer tokens.
// Following Go convention: interfaces are defined by the consumer
// (usecase), not the provider (adapters / platform/token).
type TokenRepository interface {
	// Create persists a freshly issued token.
	Create(ctx context.Context, token *entity.Token) error

	// FindByID retrieves a token by its value.
	FindByID(ctx context.Context, id string) (*entity.Token, error)

	// RevokeAllByUserID revokes every token of a user. Used on logout:
	// invalidation is deliberately whole-account, not per-token.
	RevokeAllByUserID(ctx context.Context, userID uint) error

	// DeleteAllByUserID permanently removes every token of a user.
	// Used when the account itself is annihilated.
	DeleteAllByUserID(ctx context.Context, userID uint) error
}

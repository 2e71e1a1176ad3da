// Package di provides dependency injection factories for creating application components.
package di

import (
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	authadapters "users_backend/internal/feature/auth/adapters"
	"users_backend/internal/feature/auth/usecase"
	"users_backend/internal/platform/token"
)

// NewTokenRepository creates a TokenRepository implementation.
// If Redis is available, it returns a Redis-backed implementation.
// Otherwise, it falls back to the SQL database.
func NewTokenRepository(rdb *redis.Client, db *gorm.DB) usecase.TokenRepository {
	if rdb != nil {
		return token.NewTokenRedis(rdb, "token")
	}
	return authadapters.NewTokenGorm(db)
}

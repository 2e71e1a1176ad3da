// Package token provides a Redis-backed implementation of the auth
// feature's TokenRepository.
package token

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"users_backend/internal/feature/auth/domain/entity"
	"users_backend/internal/feature/auth/usecase"
)

// revokedTTL bounds how long revoked tokens linger for audit lookups.
const revokedTTL = 24 * time.Hour

// TokenRedis implements usecase.TokenRepository using Redis.
type TokenRedis struct {
	client *redis.Client
	prefix string
}

// Compile-time check that TokenRedis implements TokenRepository.
var _ usecase.TokenRepository = (*TokenRedis)(nil)

// NewTokenRedis creates a new TokenRedis instance.
func NewTokenRedis(client *redis.Client, prefix string) *TokenRedis {
	return &TokenRedis{client: client, prefix: prefix}
}

// tokenKey returns the Redis key for a token.
func (r *TokenRedis) tokenKey(id string) string {
	return fmt.Sprintf("%s:%s", r.prefix, id)
}

// userTokensKey returns the Redis key for a user's token set.
func (r *TokenRedis) userTokensKey(userID uint) string {
	return fmt.Sprintf("%s:user:%d", r.prefix, userID)
}

// Create persists a freshly issued token. Tokens have no expiry, so no
// TTL is set while they are active.
func (r *TokenRedis) Create(ctx context.Context, token *entity.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := r.client.Set(ctx, r.tokenKey(token.ID), data, 0).Err(); err != nil {
		return err
	}

	return r.client.SAdd(ctx, r.userTokensKey(token.UserID), token.ID).Err()
}

// FindByID retrieves a token by its value.
func (r *TokenRedis) FindByID(ctx context.Context, id string) (*entity.Token, error) {
	data, err := r.client.Get(ctx, r.tokenKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, usecase.ErrTokenNotFound
		}
		return nil, err
	}

	var token entity.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token: %w", err)
	}
	return &token, nil
}

// revoke marks a single token as revoked and bounds its lifetime.
func (r *TokenRedis) revoke(ctx context.Context, id string) error {
	token, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}

	now := time.Now()
	token.RevokedAt = &now

	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}
	return r.client.Set(ctx, r.tokenKey(id), data, revokedTTL).Err()
}

// RevokeAllByUserID revokes every token of a user.
func (r *TokenRedis) RevokeAllByUserID(ctx context.Context, userID uint) error {
	ids, err := r.client.SMembers(ctx, r.userTokensKey(userID)).Result()
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := r.revoke(ctx, id); err != nil && !errors.Is(err, usecase.ErrTokenNotFound) {
			return err
		}
	}
	return nil
}

// DeleteAllByUserID permanently removes every token of a user.
func (r *TokenRedis) DeleteAllByUserID(ctx context.Context, userID uint) error {
	setKey := r.userTokensKey(userID)

	ids, err := r.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := r.client.Del(ctx, r.tokenKey(id)).Err(); err != nil {
			return err
		}
	}
	return r.client.Del(ctx, setKey).Err()
}

// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"users_backend/internal/feature/users/domain/entity"
	"users_backend/internal/feature/users/usecase"
)

// cachedUser is the storage shape of a cached user. The entity's JSON
// tags are transport-oriented: the password hash and the deletion
// marker are excluded from API responses, so marshaling the entity
// itself would strip the hash and feed an empty credential back into
// later Save calls.
type cachedUser struct {
	ID        uint           `json:"id"`
	Name      string         `json:"name"`
	Username  string         `json:"username"`
	Email     string         `json:"email"`
	Password  string         `json:"password"`
	Avatar    *string        `json:"avatar"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at"`
}

func newCachedUser(u *entity.User) cachedUser {
	return cachedUser{
		ID:        u.ID,
		Name:      u.Name,
		Username:  u.Username,
		Email:     u.Email,
		Password:  u.Password,
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
		DeletedAt: u.DeletedAt,
	}
}

func (c cachedUser) toEntity() *entity.User {
	return &entity.User{
		ID:        c.ID,
		Name:      c.Name,
		Username:  c.Username,
		Email:     c.Email,
		Password:  c.Password,
		Avatar:    c.Avatar,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		DeletedAt: c.DeletedAt,
	}
}

// CachingUserRepository decorates a UserRepository with Redis caching
// of single-user lookups. It implements the decorator pattern,
// transparently adding caching without modifying the underlying
// repository. Listing is not cached: pages change on every mutation
// and the directory is small.
type CachingUserRepository struct {
	inner     usecase.UserRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check that CachingUserRepository implements UserRepository.
var _ usecase.UserRepository = (*CachingUserRepository)(nil)

// NewCachingUserRepository decorates a UserRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "users".
func NewCachingUserRepository(rdb *redis.Client, ttl time.Duration, inner usecase.UserRepository, namespace string) *CachingUserRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "users"
	}
	return &CachingUserRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// cacheKey generates the cache key for a user ID.
func (c *CachingUserRepository) cacheKey(id uint) string {
	return fmt.Sprintf("%s:%d", c.namespace, id)
}

// invalidate drops the cache entry for a user. Best effort: a failed
// deletion only means a stale read until the TTL expires.
func (c *CachingUserRepository) invalidate(ctx context.Context, id uint) {
	if c.rdb == nil {
		return
	}
	_ = c.rdb.Del(ctx, c.cacheKey(id)).Err()
}

// Create adds a user through the underlying repository.
func (c *CachingUserRepository) Create(ctx context.Context, u *entity.User) error {
	return c.inner.Create(ctx, u)
}

// FindByID retrieves an active user, checking cache first then falling
// back to the database.
func (c *CachingUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.cacheKey(id)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var cu cachedUser
		if err := json.Unmarshal(b, &cu); err == nil {
			return cu.toEntity(), nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	u, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Store in cache (best effort)
	if b, err := json.Marshal(newCachedUser(u)); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return u, nil
}

// FindTrashedByID passes through: trashed lookups are rare admin paths.
func (c *CachingUserRepository) FindTrashedByID(ctx context.Context, id uint) (*entity.User, error) {
	return c.inner.FindTrashedByID(ctx, id)
}

// FindAnyByID passes through, same as FindTrashedByID.
func (c *CachingUserRepository) FindAnyByID(ctx context.Context, id uint) (*entity.User, error) {
	return c.inner.FindAnyByID(ctx, id)
}

// List passes through to the underlying repository.
func (c *CachingUserRepository) List(ctx context.Context, offset, limit int) ([]entity.User, int64, error) {
	return c.inner.List(ctx, offset, limit)
}

// Save persists changes and invalidates the cached copy.
func (c *CachingUserRepository) Save(ctx context.Context, u *entity.User) error {
	if err := c.inner.Save(ctx, u); err != nil {
		return err
	}
	c.invalidate(ctx, u.ID)
	return nil
}

// SoftDelete marks a user deleted and invalidates the cached copy.
func (c *CachingUserRepository) SoftDelete(ctx context.Context, id uint) error {
	if err := c.inner.SoftDelete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

// Restore brings a user back and invalidates the cached copy.
func (c *CachingUserRepository) Restore(ctx context.Context, id uint) error {
	if err := c.inner.Restore(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

// HardDelete permanently removes a user and invalidates the cached copy.
func (c *CachingUserRepository) HardDelete(ctx context.Context, id uint) error {
	if err := c.inner.HardDelete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

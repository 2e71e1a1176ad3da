package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"users_backend/internal/feature/users/adapters"
	"users_backend/internal/feature/users/domain/entity"
)

// mockUserRepository is a configurable fake for the inner repository.
type mockUserRepository struct {
	findByIDFn   func(ctx context.Context, id uint) (*entity.User, error)
	saveFn       func(ctx context.Context, u *entity.User) error
	softDeleteFn func(ctx context.Context, id uint) error

	findByIDCalls int
}

func (m *mockUserRepository) Create(ctx context.Context, u *entity.User) error { return nil }

func (m *mockUserRepository) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	m.findByIDCalls++
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, errors.New("not configured")
}

func (m *mockUserRepository) FindTrashedByID(ctx context.Context, id uint) (*entity.User, error) {
	return nil, errors.New("not configured")
}

func (m *mockUserRepository) FindAnyByID(ctx context.Context, id uint) (*entity.User, error) {
	return nil, errors.New("not configured")
}

func (m *mockUserRepository) List(ctx context.Context, offset, limit int) ([]entity.User, int64, error) {
	return nil, 0, nil
}

func (m *mockUserRepository) Save(ctx context.Context, u *entity.User) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) SoftDelete(ctx context.Context, id uint) error {
	if m.softDeleteFn != nil {
		return m.softDeleteFn(ctx, id)
	}
	return nil
}

func (m *mockUserRepository) Restore(ctx context.Context, id uint) error    { return nil }
func (m *mockUserRepository) HardDelete(ctx context.Context, id uint) error { return nil }

func TestNewCachingUserRepository_Defaults(t *testing.T) {
	t.Parallel()

	repo := NewCachingUserRepository(nil, 0, &mockUserRepository{}, "")

	assert.Equal(t, 5*time.Minute, repo.ttl)
	assert.Equal(t, "users", repo.namespace)
}

func TestCachingUserRepository_FindByID_NilRedis(t *testing.T) {
	t.Parallel()

	expected := &entity.User{ID: 1, Username: "ana-silva"}
	inner := &mockUserRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.User, error) {
			return expected, nil
		},
	}
	repo := NewCachingUserRepository(nil, time.Minute, inner, "users")

	got, err := repo.FindByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, expected, got)
	assert.Equal(t, 1, inner.findByIDCalls, "nil redis should hit the inner repository directly")
}

func TestCachingUserRepository_FindByID_CacheMissThenHit(t *testing.T) {
	t.Parallel()

	user := &entity.User{ID: 1, Username: "ana-silva"}
	data, err := json.Marshal(newCachedUser(user))
	require.NoError(t, err)

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("users:1").RedisNil()
	mock.ExpectSet("users:1", data, time.Minute).SetVal("OK")

	inner := &mockUserRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.User, error) {
			return user, nil
		},
	}
	repo := NewCachingUserRepository(rdb, time.Minute, inner, "users")

	got, err := repo.FindByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, user.Username, got.Username)
	assert.Equal(t, 1, inner.findByIDCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingUserRepository_FindByID_CacheHitSkipsInner(t *testing.T) {
	t.Parallel()

	user := &entity.User{ID: 1, Username: "ana-silva", Password: "$2a$10$stored-hash"}
	data, err := json.Marshal(newCachedUser(user))
	require.NoError(t, err)

	rdb, mock := redismock.NewClientMock()
	mock.ExpectGet("users:1").SetVal(string(data))

	inner := &mockUserRepository{}
	repo := NewCachingUserRepository(rdb, time.Minute, inner, "users")

	got, err := repo.FindByID(context.Background(), 1)

	require.NoError(t, err)
	assert.Equal(t, user.Username, got.Username)
	assert.Equal(t, user.Password, got.Password, "the cached copy must keep the password hash")
	assert.Zero(t, inner.findByIDCalls, "a cache hit must not touch the inner repository")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A cached read feeds FindByID-then-Save flows; if the cache dropped
// the hash, the next Save would overwrite the stored credential with
// an empty string. Exercise the full path against a real adapter.
func TestCachingUserRepository_CachedReadKeepsPasswordHash(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.User{}))

	repo := NewCachingUserRepository(rdb, time.Minute, adapters.NewUserGorm(db), "users")

	const hash = "$2a$10$N9qo8uLOickgx2ZMRZoMye"
	u := &entity.User{Name: "Ana Silva", Username: "ana-silva", Email: "ana@example.com", Password: hash}
	require.NoError(t, repo.Create(context.Background(), u))

	// First read fills the cache, second is served from Redis.
	_, err = repo.FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	cached, err := repo.FindByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, hash, cached.Password, "cache round-trip must keep the stored hash")

	cached.Name = "Ana Maria Silva"
	require.NoError(t, repo.Save(context.Background(), cached))

	var row entity.User
	require.NoError(t, db.First(&row, u.ID).Error)
	assert.Equal(t, hash, row.Password, "saving a cached read must not wipe the hash")
}

func TestCachingUserRepository_Save_Invalidates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	mock.ExpectDel("users:1").SetVal(1)

	repo := NewCachingUserRepository(rdb, time.Minute, &mockUserRepository{}, "users")

	require.NoError(t, repo.Save(context.Background(), &entity.User{ID: 1}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingUserRepository_Save_InnerFailureSkipsInvalidation(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	inner := &mockUserRepository{
		saveFn: func(ctx context.Context, u *entity.User) error {
			return errors.New("storage down")
		},
	}
	repo := NewCachingUserRepository(rdb, time.Minute, inner, "users")

	err := repo.Save(context.Background(), &entity.User{ID: 1})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet(), "no cache operation should run on failure")
}

func TestCachingUserRepository_SoftDelete_Invalidates(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	mock.ExpectDel("users:1").SetVal(1)

	repo := NewCachingUserRepository(rdb, time.Minute, &mockUserRepository{}, "users")

	require.NoError(t, repo.SoftDelete(context.Background(), 1))
	assert.NoError(t, mock.ExpectationsWereMet())
}

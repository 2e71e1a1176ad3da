package adapters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"users_backend/internal/feature/users/domain/entity"
	"users_backend/internal/feature/users/usecase"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&entity.User{})
	require.NoError(t, err, "failed to migrate table")

	return db
}

func seedUser(t *testing.T, repo *userGorm, username, email string) *entity.User {
	t.Helper()

	u := &entity.User{
		Name:     "Test User",
		Username: username,
		Email:    email,
		Password: "hashed_password",
	}
	require.NoError(t, repo.Create(context.Background(), u), "failed to seed user")
	return u
}

func TestUserGorm_Create(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))

		u := seedUser(t, repo, "ana-silva", "a@x.com")

		assert.NotZero(t, u.ID, "ID is not set")
		assert.False(t, u.CreatedAt.IsZero(), "CreatedAt is not set")
	})

	t.Run("duplicate username", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))
		seedUser(t, repo, "ana-silva", "a@x.com")

		err := repo.Create(context.Background(), &entity.User{
			Name:     "Other",
			Username: "ana-silva",
			Email:    "b@x.com",
			Password: "hashed",
		})

		assert.ErrorIs(t, err, usecase.ErrUsernameTaken)
	})

	t.Run("duplicate email", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))
		seedUser(t, repo, "ana-silva", "a@x.com")

		err := repo.Create(context.Background(), &entity.User{
			Name:     "Other",
			Username: "other",
			Email:    "a@x.com",
			Password: "hashed",
		})

		assert.ErrorIs(t, err, usecase.ErrEmailTaken)
	})
}

func TestUserGorm_FindByEmail(t *testing.T) {
	repo := NewUserGorm(setupTestDB(t))
	expected := seedUser(t, repo, "ana-silva", "a@x.com")

	found, err := repo.FindByEmail(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, expected.ID, found.ID)

	_, err = repo.FindByEmail(context.Background(), "missing@x.com")
	assert.ErrorIs(t, err, usecase.ErrUserNotFound)
}

func TestUserGorm_List(t *testing.T) {
	repo := NewUserGorm(setupTestDB(t))
	seedUser(t, repo, "u1", "u1@x.com")
	seedUser(t, repo, "u2", "u2@x.com")
	seedUser(t, repo, "u3", "u3@x.com")

	users, total, err := repo.List(context.Background(), 1, 2)

	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, users, 2)
	assert.Equal(t, "u2", users[0].Username, "listing should be ordered by ID")
}

func TestUserGorm_SoftDeleteLifecycle(t *testing.T) {
	t.Run("soft delete hides the user from default queries", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))
		u := seedUser(t, repo, "ana", "a@x.com")

		require.NoError(t, repo.SoftDelete(context.Background(), u.ID))

		_, err := repo.FindByID(context.Background(), u.ID)
		assert.ErrorIs(t, err, usecase.ErrUserNotFound)

		trashed, err := repo.FindTrashedByID(context.Background(), u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.ID, trashed.ID)
	})

	t.Run("soft delete of unknown id reports not found", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))

		assert.ErrorIs(t, repo.SoftDelete(context.Background(), 99), usecase.ErrUserNotFound)
	})

	t.Run("restore brings the user back", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))
		u := seedUser(t, repo, "ana", "a@x.com")
		require.NoError(t, repo.SoftDelete(context.Background(), u.ID))

		require.NoError(t, repo.Restore(context.Background(), u.ID))

		found, err := repo.FindByID(context.Background(), u.ID)
		require.NoError(t, err)
		assert.Equal(t, u.ID, found.ID)
	})

	t.Run("restore fails for active users", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))
		u := seedUser(t, repo, "ana", "a@x.com")

		assert.ErrorIs(t, repo.Restore(context.Background(), u.ID), usecase.ErrUserNotFound)
	})

	t.Run("restore fails for ids that never existed", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))

		assert.ErrorIs(t, repo.Restore(context.Background(), 99), usecase.ErrUserNotFound)
	})
}

func TestUserGorm_HardDelete(t *testing.T) {
	t.Run("removes even soft-deleted users for good", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))
		u := seedUser(t, repo, "ana", "a@x.com")
		require.NoError(t, repo.SoftDelete(context.Background(), u.ID))

		require.NoError(t, repo.HardDelete(context.Background(), u.ID))

		_, err := repo.FindAnyByID(context.Background(), u.ID)
		assert.ErrorIs(t, err, usecase.ErrUserNotFound, "annihilated user must not be found even unscoped")
	})

	t.Run("frees unique values for reuse", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))
		u := seedUser(t, repo, "ana", "a@x.com")
		require.NoError(t, repo.HardDelete(context.Background(), u.ID))

		err := repo.Create(context.Background(), &entity.User{
			Name:     "New Ana",
			Username: "ana",
			Email:    "a@x.com",
			Password: "hashed",
		})

		assert.NoError(t, err)
	})
}

func TestUserGorm_Save(t *testing.T) {
	t.Run("updates profile fields", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))
		u := seedUser(t, repo, "ana", "a@x.com")

		u.Name = "Ana Maria"
		require.NoError(t, repo.Save(context.Background(), u))

		found, err := repo.FindByID(context.Background(), u.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ana Maria", found.Name)
	})

	t.Run("saving own username again is not a duplicate", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))
		u := seedUser(t, repo, "ana", "a@x.com")

		u.Name = "Renamed"
		assert.NoError(t, repo.Save(context.Background(), u))
	})

	t.Run("maps duplicate username on update", func(t *testing.T) {
		repo := NewUserGorm(setupTestDB(t))
		seedUser(t, repo, "taken", "t@x.com")
		u := seedUser(t, repo, "ana", "a@x.com")

		u.Username = "taken"
		assert.ErrorIs(t, repo.Save(context.Background(), u), usecase.ErrUsernameTaken)
	})
}

// Package adapters provides repository implementations for the users feature.
package adapters

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"users_backend/internal/feature/users/domain/entity"
	"users_backend/internal/feature/users/usecase"
)

// userGorm is a GORM implementation of the UserRepository interface.
// It runs against Postgres in production and SQLite in tests.
type userGorm struct {
	db *gorm.DB
}

// Compile-time check that userGorm implements UserRepository.
var _ usecase.UserRepository = (*userGorm)(nil)

// NewUserGorm creates a new userGorm instance for dependency injection.
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// duplicateError maps a storage unique-violation to the matching
// usecase error, or returns nil when err is a different failure.
// Postgres reports code 23505 with the violated constraint name;
// SQLite (used in tests) reports a plain "UNIQUE constraint failed"
// message naming the column.
func duplicateError(err error) error {
	var detail string

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		detail = pgErr.ConstraintName
	} else if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		detail = err.Error()
	} else {
		return nil
	}

	switch {
	case strings.Contains(detail, "username"):
		return usecase.ErrUsernameTaken
	case strings.Contains(detail, "email"):
		return usecase.ErrEmailTaken
	default:
		return usecase.ErrUsernameTaken
	}
}

// Create adds a user to the database, mapping unique-constraint
// collisions to ErrUsernameTaken / ErrEmailTaken.
func (r *userGorm) Create(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		if dup := duplicateError(err); dup != nil {
			return dup
		}
		return err
	}
	return nil
}

// FindByID retrieves an active user. Soft-deleted users are excluded
// by GORM's default scope.
func (r *userGorm) FindByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindByEmail retrieves an active user by email address. Consumed by
// the auth feature's login path.
func (r *userGorm) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindTrashedByID retrieves a user from the soft-deleted subset only.
func (r *userGorm) FindTrashedByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	err := r.db.WithContext(ctx).Unscoped().
		Where("id = ? AND deleted_at IS NOT NULL", id).
		First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// FindAnyByID retrieves a user regardless of its soft-delete state.
func (r *userGorm) FindAnyByID(ctx context.Context, id uint) (*entity.User, error) {
	var u entity.User
	if err := r.db.WithContext(ctx).Unscoped().Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// List returns a page of active users ordered by ID plus the total count.
func (r *userGorm) List(ctx context.Context, offset, limit int) ([]entity.User, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&entity.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []entity.User
	err := r.db.WithContext(ctx).
		Order("id ASC").
		Offset(offset).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

// Save persists changes to an existing user, mapping duplicates like Create.
func (r *userGorm) Save(ctx context.Context, u *entity.User) error {
	if err := r.db.WithContext(ctx).Save(u).Error; err != nil {
		if dup := duplicateError(err); dup != nil {
			return dup
		}
		return err
	}
	return nil
}

// SoftDelete marks an active user as deleted.
func (r *userGorm) SoftDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// Restore clears the soft-delete marker. Only rows that are currently
// soft-deleted match, so active and unknown IDs report not found.
func (r *userGorm) Restore(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Unscoped().
		Model(&entity.User{}).
		Where("id = ? AND deleted_at IS NOT NULL", id).
		Update("deleted_at", nil)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

// HardDelete permanently removes a user, bypassing the soft-delete scope.
func (r *userGorm) HardDelete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Unscoped().Delete(&entity.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrUserNotFound
	}
	return nil
}

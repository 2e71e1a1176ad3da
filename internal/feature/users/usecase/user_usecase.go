package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"users_backend/internal/feature/avatar"
	"users_backend/internal/feature/users/domain/entity"
	"users_backend/internal/shared/strutil"
)

const (
	// PageSize is the fixed page size for user listings.
	PageSize = 50

	// minPasswordLength is the minimum accepted password length.
	minPasswordLength = 6
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer
// (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. It returns ErrUsernameTaken or
	// ErrEmailTaken on unique-constraint collisions.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves an active (non-deleted) user by ID.
	FindByID(ctx context.Context, id uint) (*entity.User, error)

	// FindTrashedByID retrieves a soft-deleted user by ID.
	FindTrashedByID(ctx context.Context, id uint) (*entity.User, error)

	// FindAnyByID retrieves a user by ID, including soft-deleted ones.
	FindAnyByID(ctx context.Context, id uint) (*entity.User, error)

	// List returns a page of active users plus the total count.
	List(ctx context.Context, offset, limit int) ([]entity.User, int64, error)

	// Save persists changes to an existing user. It returns
	// ErrUsernameTaken or ErrEmailTaken on unique-constraint collisions.
	Save(ctx context.Context, user *entity.User) error

	// SoftDelete marks an active user as deleted.
	SoftDelete(ctx context.Context, id uint) error

	// Restore clears the soft-delete marker of a trashed user.
	Restore(ctx context.Context, id uint) error

	// HardDelete permanently removes a user, soft-deleted or not.
	HardDelete(ctx context.Context, id uint) error
}

// AvatarManager is the avatar capability the directory delegates to.
type AvatarManager interface {
	Upload(ctx context.Context, owner avatar.Owner, file avatar.File) (string, error)
	Delete(ctx context.Context, owner avatar.Owner) error
	PublicURL(owner avatar.Owner) (string, bool)
}

// TokenPurger removes every auth token of a user. Used on permanent
// deletion so no credential outlives the account.
type TokenPurger interface {
	DeleteAllByUserID(ctx context.Context, userID uint) error
}

// RegisterInput carries the validated fields of a registration request.
type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
	Avatar   *avatar.File
}

// UpdateInput carries the profile fields a user may change.
// Password and avatar have dedicated operations.
type UpdateInput struct {
	Name     string
	Username string
	Email    string
}

// userUsecase implements the user directory's business logic.
type userUsecase struct {
	users   UserRepository
	avatars AvatarManager
	tokens  TokenPurger
}

// NewUserUsecase creates a new userUsecase instance.
func NewUserUsecase(users UserRepository, avatars AvatarManager, tokens TokenPurger) *userUsecase {
	return &userUsecase{users: users, avatars: avatars, tokens: tokens}
}

// validatePassword checks the password against the minimum length.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}
	return nil
}

// Register creates an account with a hashed password and a normalized
// username, then uploads the optional avatar. The account and the
// avatar are deliberately not transactional: a failed upload is
// logged and reported nowhere else, so registration still succeeds.
func (u *userUsecase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Name:     in.Name,
		Username: strutil.Kebab(in.Username),
		Email:    in.Email,
		Password: string(hashed),
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}

	if in.Avatar != nil {
		key, err := u.avatars.Upload(ctx, user, *in.Avatar)
		if err != nil {
			slog.Warn("avatar upload failed after registration", "user_id", user.ID, "error", err)
			return user, nil
		}
		user.Avatar = &key
		if err := u.users.Save(ctx, user); err != nil {
			slog.Warn("failed to persist avatar path", "user_id", user.ID, "error", err)
		}
	}

	return user, nil
}

// Get retrieves an active user by ID.
func (u *userUsecase) Get(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindByID(ctx, id)
}

// List returns the requested page of active users and the total count.
// Pages are 1-based; out-of-range values clamp to the first page.
func (u *userUsecase) List(ctx context.Context, page int) ([]entity.User, int64, error) {
	if page < 1 {
		page = 1
	}
	return u.users.List(ctx, (page-1)*PageSize, PageSize)
}

// Update changes name, username and email. Uniqueness is enforced by
// the storage constraint, which naturally excludes the record's own row.
func (u *userUsecase) Update(ctx context.Context, id uint, in UpdateInput) (*entity.User, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = in.Name
	user.Username = in.Username
	user.Email = in.Email
	if err := u.users.Save(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// UpdatePassword re-hashes and stores a new password.
func (u *userUsecase) UpdatePassword(ctx context.Context, id uint, password string) error {
	if err := validatePassword(password); err != nil {
		return err
	}

	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashed)
	return u.users.Save(ctx, user)
}

// Delete soft-deletes an active user.
func (u *userUsecase) Delete(ctx context.Context, id uint) error {
	return u.users.SoftDelete(ctx, id)
}

// Restore brings a soft-deleted user back. IDs that are active or
// never existed report ErrUserNotFound.
func (u *userUsecase) Restore(ctx context.Context, id uint) error {
	return u.users.Restore(ctx, id)
}

// Annihilate permanently removes a user, soft-deleted or not, after
// purging every auth token of the account. Irreversible.
func (u *userUsecase) Annihilate(ctx context.Context, id uint) error {
	user, err := u.users.FindAnyByID(ctx, id)
	if err != nil {
		return err
	}
	if err := u.tokens.DeleteAllByUserID(ctx, user.ID); err != nil {
		return fmt.Errorf("failed to purge tokens: %w", err)
	}
	return u.users.HardDelete(ctx, user.ID)
}

// UpdateAvatar replaces the user's avatar and returns its public URL.
func (u *userUsecase) UpdateAvatar(ctx context.Context, id uint, file avatar.File) (string, error) {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return "", err
	}

	key, err := u.avatars.Upload(ctx, user, file)
	if err != nil {
		return "", err
	}
	user.Avatar = &key
	if err := u.users.Save(ctx, user); err != nil {
		return "", err
	}

	url, _ := u.avatars.PublicURL(user)
	return url, nil
}

// DeleteAvatar removes the user's avatar. Unlike the manager's
// idempotent delete, a user without an avatar is an error here.
func (u *userUsecase) DeleteAvatar(ctx context.Context, id uint) error {
	user, err := u.users.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if user.Avatar == nil {
		return ErrNoAvatar
	}

	if err := u.avatars.Delete(ctx, user); err != nil {
		return err
	}
	user.Avatar = nil
	return u.users.Save(ctx, user)
}

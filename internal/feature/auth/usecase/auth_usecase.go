package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"users_backend/internal/feature/auth/domain/entity"
	userentity "users_backend/internal/feature/users/domain/entity"
)

// UserRepository is the slice of the user store the credential
// service needs. Soft-deleted accounts are excluded by the provider,
// so they can neither log in nor resolve through Me.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*userentity.User, error)
	FindByID(ctx context.Context, id uint) (*userentity.User, error)
}

// dummyHash keeps bcrypt work constant when the email is unknown, so
// response timing does not reveal whether an account exists.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// authUsecase implements the credential service: login with a uniform
// failure delay, opaque token issuance, whole-account revocation.
type authUsecase struct {
	users  UserRepository
	tokens TokenRepository

	// failureDelay is slept on every failed login, whether the email
	// is unknown or the password is wrong. It serializes the cost of
	// brute-force probing per attempt.
	failureDelay time.Duration
}

// NewAuthUsecase creates a new authUsecase instance.
func NewAuthUsecase(users UserRepository, tokens TokenRepository, failureDelay time.Duration) *authUsecase {
	return &authUsecase{users: users, tokens: tokens, failureDelay: failureDelay}
}

// newTokenID generates an opaque 64-character hex token value.
func newTokenID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// Login authenticates the email/password pair and issues a fresh
// bearer token. The bcrypt comparison always runs, and every failure
// path sleeps the configured delay and returns the same generic error.
func (u *authUsecase) Login(ctx context.Context, email, password string) (*userentity.User, string, error) {
	user, err := u.users.FindByEmail(ctx, email)

	passwordHash := dummyHash
	if err == nil {
		passwordHash = user.Password
	}
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	if err != nil || compareErr != nil {
		time.Sleep(u.failureDelay)
		return nil, "", ErrInvalidCredentials
	}

	id, err := newTokenID()
	if err != nil {
		return nil, "", err
	}
	token := &entity.Token{ID: id, UserID: user.ID, CreatedAt: time.Now()}
	if err := u.tokens.Create(ctx, token); err != nil {
		return nil, "", fmt.Errorf("failed to persist token: %w", err)
	}

	return user, id, nil
}

// Verify resolves a presented bearer token to its user ID. Unknown
// and revoked tokens both fail with ErrInvalidToken.
func (u *authUsecase) Verify(ctx context.Context, tokenID string) (uint, error) {
	if tokenID == "" {
		return 0, ErrInvalidToken
	}
	token, err := u.tokens.FindByID(ctx, tokenID)
	if err != nil {
		return 0, ErrInvalidToken
	}
	if token.IsRevoked() {
		return 0, ErrInvalidToken
	}
	return token.UserID, nil
}

// Logout revokes every token of the account, not just the one that
// authenticated this call.
func (u *authUsecase) Logout(ctx context.Context, userID uint) error {
	if userID == 0 {
		return ErrNotAuthenticated
	}
	return u.tokens.RevokeAllByUserID(ctx, userID)
}

// Me returns the account bound to the request.
func (u *authUsecase) Me(ctx context.Context, userID uint) (*userentity.User, error) {
	if userID == 0 {
		return nil, ErrUserNotFound
	}
	return u.users.FindByID(ctx, userID)
}

// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrInvalidCredentials is returned for any login failure. The
	// message is identical whether the email is unknown or the
	// password is wrong, so accounts cannot be enumerated.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a presented bearer token is
	// unknown, malformed or revoked.
	ErrInvalidToken = errors.New("invalid or revoked token")

	// ErrTokenNotFound is returned when a token cannot be found by ID.
	ErrTokenNotFound = errors.New("token not found")

	// ErrNotAuthenticated is returned when an operation requires an
	// authenticated account and none is bound to the request.
	ErrNotAuthenticated = errors.New("not authenticated")

	// ErrUserNotFound is returned when the account bound to the
	// request no longer exists.
	ErrUserNotFound = errors.New("user not found")
)

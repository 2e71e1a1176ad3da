// Package usecase implements the business logic for the users feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found in the
	// queried subset (active, trashed, or all, depending on the call).
	ErrUserNotFound = errors.New("user not found")

	// ErrUsernameTaken is returned when the username collides with an
	// existing record.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrEmailTaken is returned when the email collides with an
	// existing record.
	ErrEmailTaken = errors.New("email already taken")

	// ErrNoAvatar is returned by DeleteAvatar when the user has no
	// avatar set. The avatar manager itself treats this as a no-op;
	// the directory layer adds the stricter precondition.
	ErrNoAvatar = errors.New("user has no avatar to delete")
)

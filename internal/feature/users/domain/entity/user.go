// Package entity defines the domain entities for the users feature.
package entity

import (
	"time"

	"gorm.io/gorm"
)

// User represents an account in the user directory.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey" json:"id"`

	// Name is the user's display name.
	Name string `gorm:"size:191;not null" json:"name"`

	// Username is the unique, lower-kebab-case handle.
	Username string `gorm:"uniqueIndex;size:30;not null" json:"username"`

	// Email is the user's unique email address used for authentication.
	Email string `gorm:"uniqueIndex;size:254;not null" json:"email"`

	// Password is the bcrypt hash of the user's password.
	// It is never serialized.
	Password string `gorm:"size:255;not null" json:"-"`

	// Avatar is the relative storage path of the user's avatar,
	// nil when no avatar is set.
	Avatar *string `gorm:"size:255" json:"avatar"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is the timestamp when the user was last updated.
	UpdatedAt time.Time `json:"updated_at"`

	// DeletedAt marks the user as soft-deleted. Soft-deleted users
	// are excluded from default queries and can be restored.
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// AvatarOwnerID reports the persisted identity the avatar file name
// is keyed on. Zero means the record has not been saved yet.
func (u *User) AvatarOwnerID() uint { return u.ID }

// AvatarOwnerKind reports the entity-type segment of avatar storage paths.
func (u *User) AvatarOwnerKind() string { return "user" }

// AvatarPath reports the currently stored avatar key, "" when unset.
func (u *User) AvatarPath() string {
	if u.Avatar == nil {
		return ""
	}
	return *u.Avatar
}

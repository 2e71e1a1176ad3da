// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// Token is an opaque bearer credential bound to exactly one user.
// It is issued on login and stays valid until revoked; there are no
// expiry semantics.
type Token struct {
	ID        string     // Token value presented by clients (64-character hex string)
	UserID    uint       // Associated user ID
	CreatedAt time.Time  // Issue time
	RevokedAt *time.Time // Revocation time (nil if active)
}

// IsRevoked returns true if the token has been revoked.
func (t *Token) IsRevoked() bool {
	return t.RevokedAt != nil
}

// IsValid returns true if the token can still authenticate requests.
func (t *Token) IsValid() bool {
	return !t.IsRevoked()
}

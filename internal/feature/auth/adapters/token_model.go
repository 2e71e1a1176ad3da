// Package adapters provides repository implementations for the auth feature.
package adapters

import (
	"time"

	"users_backend/internal/feature/auth/domain/entity"
)

// TokenModel is the GORM persistence model for bearer tokens.
type TokenModel struct {
	ID        string `gorm:"primaryKey;size:64"`
	UserID    uint   `gorm:"index;not null"`
	CreatedAt time.Time
	RevokedAt *time.Time
}

// TableName overrides the default table name.
func (TokenModel) TableName() string {
	return "auth_tokens"
}

// ToEntity converts the persistence model to a domain entity.
func (m *TokenModel) ToEntity() *entity.Token {
	return &entity.Token{
		ID:        m.ID,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
		RevokedAt: m.RevokedAt,
	}
}

// TokenModelFromEntity converts a domain entity to the persistence model.
func TokenModelFromEntity(t *entity.Token) *TokenModel {
	return &TokenModel{
		ID:        t.ID,
		UserID:    t.UserID,
		CreatedAt: t.CreatedAt,
		RevokedAt: t.RevokedAt,
	}
}

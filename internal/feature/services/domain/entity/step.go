// Package entity defines the domain entities for the services feature.
package entity

import (
	"time"

	"gorm.io/gorm"
)

// Step is a named unit of work that services compose.
type Step struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name string `gorm:"size:191;not null" json:"name"`

	// DefaultCommission is the commission applied when a service does
	// not override it, nil when the step has none.
	DefaultCommission *float64 `gorm:"type:decimal(10,2)" json:"default_commission"`

	// AverageExecutionTime is the expected duration in seconds.
	AverageExecutionTime uint `gorm:"not null" json:"average_execution_time"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Step) TableName() string { return "steps" }

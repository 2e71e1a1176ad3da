package entity

import "time"

// Service owns an ordered, optionally grouped set of steps.
type Service struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:191;not null" json:"name"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Service) TableName() string { return "services" }

// ServiceStep associates a step with a service, carrying its position
// and an optional group for steps that may execute interchangeably.
// Order uniqueness is not enforced.
type ServiceStep struct {
	ID        uint  `gorm:"primaryKey" json:"id"`
	ServiceID uint  `gorm:"index;not null" json:"service_id"`
	StepID    uint  `gorm:"index;not null" json:"step_id"`
	Order     uint  `gorm:"column:order;not null" json:"order"`
	Group     *uint `gorm:"column:group" json:"group"`

	Step Step `gorm:"foreignKey:StepID" json:"step"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ServiceStep) TableName() string { return "service_step" }

// ServiceStepDependency is a directed edge between two steps scoped
// to one service: the dependent step may not start until the
// prerequisite completes. The edge set per service must stay acyclic.
type ServiceStepDependency struct {
	ID                 uint `gorm:"primaryKey" json:"id"`
	ServiceID          uint `gorm:"index;not null" json:"service_id"`
	DependentStepID    uint `gorm:"not null" json:"dependent_step_id"`
	PrerequisiteStepID uint `gorm:"not null" json:"prerequisite_step_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ServiceStepDependency) TableName() string { return "service_step_dependencies" }

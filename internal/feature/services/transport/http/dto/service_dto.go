// Package dto defines request payloads for the services endpoints.
package dto

// CreateStepReq is the request body for POST /steps.
type CreateStepReq struct {
	Name                 string   `json:"name" binding:"required"`
	DefaultCommission    *float64 `json:"default_commission"`
	AverageExecutionTime uint     `json:"average_execution_time" binding:"required"`
}

// CreateServiceReq is the request body for POST /services.
type CreateServiceReq struct {
	Name string `json:"name" binding:"required"`
}

// AttachStepReq is the request body for POST /services/:id/steps.
type AttachStepReq struct {
	StepID uint  `json:"step_id" binding:"required"`
	Order  uint  `json:"order" binding:"required"`
	Group  *uint `json:"group"`
}

// AddDependencyReq is the request body for POST /services/:id/dependencies.
type AddDependencyReq struct {
	PrerequisiteStepID uint `json:"prerequisite_step_id" binding:"required"`
	DependentStepID    uint `json:"dependent_step_id" binding:"required"`
}

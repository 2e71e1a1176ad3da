// Package usecase implements the business logic for the services feature.
package usecase

import "errors"

var (
	// ErrStepNotFound is returned when a step does not exist.
	ErrStepNotFound = errors.New("step not found")

	// ErrServiceNotFound is returned when a service does not exist.
	ErrServiceNotFound = errors.New("service not found")

	// ErrStepNotAttached is returned when a dependency references a
	// step that is not part of the service.
	ErrStepNotAttached = errors.New("step is not attached to the service")

	// ErrStepAlreadyAttached is returned when a step is attached to the
	// same service twice.
	ErrStepAlreadyAttached = errors.New("step is already attached to the service")

	// ErrSelfDependency is returned when a step is declared to depend
	// on itself.
	ErrSelfDependency = errors.New("a step cannot depend on itself")

	// ErrDuplicateDependency is returned when the exact edge already exists.
	ErrDuplicateDependency = errors.New("dependency already exists")

	// ErrCyclicDependency is returned when an edge would close a cycle,
	// or when stored edges already form one.
	ErrCyclicDependency = errors.New("dependency would create a cycle")
)

package usecase

import (
	"context"

	"users_backend/internal/feature/services/domain/entity"
)

// ServiceRepository abstracts the persistence layer for steps,
// services and their dependency edges. Following Go convention:
// interfaces are defined by the consumer (usecase), not the provider
// (adapters).
type ServiceRepository interface {
	// CreateStep persists a new step.
	CreateStep(ctx context.Context, step *entity.Step) error

	// FindStepByID retrieves an active step.
	FindStepByID(ctx context.Context, id uint) (*entity.Step, error)

	// ListSteps returns every active step ordered by ID.
	ListSteps(ctx context.Context) ([]entity.Step, error)

	// SoftDeleteStep marks a step as deleted.
	SoftDeleteStep(ctx context.Context, id uint) error

	// CreateService persists a new service.
	CreateService(ctx context.Context, service *entity.Service) error

	// FindServiceByID retrieves a service.
	FindServiceByID(ctx context.Context, id uint) (*entity.Service, error)

	// CreateServiceStep persists a step attachment.
	CreateServiceStep(ctx context.Context, link *entity.ServiceStep) error

	// ListServiceSteps returns a service's attachments, step preloaded,
	// ordered by position.
	ListServiceSteps(ctx context.Context, serviceID uint) ([]entity.ServiceStep, error)

	// CreateDependency persists a dependency edge.
	CreateDependency(ctx context.Context, dep *entity.ServiceStepDependency) error

	// ListDependencies returns all dependency edges of a service.
	ListDependencies(ctx context.Context, serviceID uint) ([]entity.ServiceStepDependency, error)
}

// StepInput carries the fields of a step creation request.
type StepInput struct {
	Name                 string
	DefaultCommission    *float64
	AverageExecutionTime uint
}

// AttachStepInput carries the fields of a step attachment request.
type AttachStepInput struct {
	StepID uint
	Order  uint
	Group  *uint
}

// OrderedStep is one entry of a service's execution order.
type OrderedStep struct {
	// Position is the 1-based place in the computed order.
	Position int `json:"position"`

	// Group mirrors the attachment's group, nil when ungrouped.
	Group *uint `json:"group"`

	Step entity.Step `json:"step"`
}

// serviceUsecase implements step and service management plus the
// per-service dependency DAG.
type serviceUsecase struct {
	repo ServiceRepository
}

// NewServiceUsecase creates a new serviceUsecase instance.
func NewServiceUsecase(repo ServiceRepository) *serviceUsecase {
	return &serviceUsecase{repo: repo}
}

// CreateStep registers a new step.
func (u *serviceUsecase) CreateStep(ctx context.Context, in StepInput) (*entity.Step, error) {
	step := &entity.Step{
		Name:                 in.Name,
		DefaultCommission:    in.DefaultCommission,
		AverageExecutionTime: in.AverageExecutionTime,
	}
	if err := u.repo.CreateStep(ctx, step); err != nil {
		return nil, err
	}
	return step, nil
}

// ListSteps returns every active step.
func (u *serviceUsecase) ListSteps(ctx context.Context) ([]entity.Step, error) {
	return u.repo.ListSteps(ctx)
}

// DeleteStep soft-deletes a step. Existing attachments keep pointing
// at the trashed row.
func (u *serviceUsecase) DeleteStep(ctx context.Context, id uint) error {
	return u.repo.SoftDeleteStep(ctx, id)
}

// CreateService registers a new service.
func (u *serviceUsecase) CreateService(ctx context.Context, name string) (*entity.Service, error) {
	service := &entity.Service{Name: name}
	if err := u.repo.CreateService(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

// AttachStep links a step to a service at a position. A step may be
// attached to a service only once; order values may repeat.
func (u *serviceUsecase) AttachStep(ctx context.Context, serviceID uint, in AttachStepInput) (*entity.ServiceStep, error) {
	if _, err := u.repo.FindServiceByID(ctx, serviceID); err != nil {
		return nil, err
	}
	if _, err := u.repo.FindStepByID(ctx, in.StepID); err != nil {
		return nil, err
	}

	links, err := u.repo.ListServiceSteps(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	for _, link := range links {
		if link.StepID == in.StepID {
			return nil, ErrStepAlreadyAttached
		}
	}

	link := &entity.ServiceStep{
		ServiceID: serviceID,
		StepID:    in.StepID,
		Order:     in.Order,
		Group:     in.Group,
	}
	if err := u.repo.CreateServiceStep(ctx, link); err != nil {
		return nil, err
	}
	return link, nil
}

// AddDependency records that `dependent` may not start before
// `prerequisite` within the service. Self-edges, duplicates, steps not
// attached to the service and cycle-closing edges are rejected.
func (u *serviceUsecase) AddDependency(ctx context.Context, serviceID, prerequisiteStepID, dependentStepID uint) (*entity.ServiceStepDependency, error) {
	if prerequisiteStepID == dependentStepID {
		return nil, ErrSelfDependency
	}
	if _, err := u.repo.FindServiceByID(ctx, serviceID); err != nil {
		return nil, err
	}

	links, err := u.repo.ListServiceSteps(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	attached := make(map[uint]bool, len(links))
	for _, link := range links {
		attached[link.StepID] = true
	}
	if !attached[prerequisiteStepID] || !attached[dependentStepID] {
		return nil, ErrStepNotAttached
	}

	deps, err := u.repo.ListDependencies(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	edges := make([]edge, 0, len(deps))
	for _, d := range deps {
		if d.PrerequisiteStepID == prerequisiteStepID && d.DependentStepID == dependentStepID {
			return nil, ErrDuplicateDependency
		}
		edges = append(edges, edge{prerequisite: d.PrerequisiteStepID, dependent: d.DependentStepID})
	}

	// The new edge closes a cycle when the prerequisite is already
	// reachable from the dependent.
	if hasPath(edges, dependentStepID, prerequisiteStepID) {
		return nil, ErrCyclicDependency
	}

	dep := &entity.ServiceStepDependency{
		ServiceID:          serviceID,
		DependentStepID:    dependentStepID,
		PrerequisiteStepID: prerequisiteStepID,
	}
	if err := u.repo.CreateDependency(ctx, dep); err != nil {
		return nil, err
	}
	return dep, nil
}

// ExecutionOrder computes a valid execution order for the service's
// steps: a topological sort of the dependency edges, with ties broken
// by attachment order and then step ID so the result is stable.
func (u *serviceUsecase) ExecutionOrder(ctx context.Context, serviceID uint) ([]OrderedStep, error) {
	if _, err := u.repo.FindServiceByID(ctx, serviceID); err != nil {
		return nil, err
	}

	links, err := u.repo.ListServiceSteps(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	deps, err := u.repo.ListDependencies(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	byStepID := make(map[uint]entity.ServiceStep, len(links))
	ids := make([]uint, 0, len(links))
	for _, link := range links {
		byStepID[link.StepID] = link
		ids = append(ids, link.StepID)
	}
	edges := make([]edge, 0, len(deps))
	for _, d := range deps {
		edges = append(edges, edge{prerequisite: d.PrerequisiteStepID, dependent: d.DependentStepID})
	}

	ordered, ok := topoOrder(ids, edges, func(a, b uint) bool {
		la, lb := byStepID[a], byStepID[b]
		if la.Order != lb.Order {
			return la.Order < lb.Order
		}
		return a < b
	})
	if !ok {
		return nil, ErrCyclicDependency
	}

	out := make([]OrderedStep, len(ordered))
	for i, stepID := range ordered {
		link := byStepID[stepID]
		out[i] = OrderedStep{
			Position: i + 1,
			Group:    link.Group,
			Step:     link.Step,
		}
	}
	return out, nil
}

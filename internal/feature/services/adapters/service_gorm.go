// Package adapters provides repository implementations for the services feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"users_backend/internal/feature/services/domain/entity"
	"users_backend/internal/feature/services/usecase"
)

// serviceGorm is a GORM implementation of the ServiceRepository interface.
type serviceGorm struct {
	db *gorm.DB
}

// Compile-time check that serviceGorm implements ServiceRepository.
var _ usecase.ServiceRepository = (*serviceGorm)(nil)

// NewServiceGorm creates a new serviceGorm instance.
func NewServiceGorm(db *gorm.DB) *serviceGorm {
	return &serviceGorm{db: db}
}

// CreateStep persists a new step.
func (r *serviceGorm) CreateStep(ctx context.Context, step *entity.Step) error {
	return r.db.WithContext(ctx).Create(step).Error
}

// FindStepByID retrieves an active step. Soft-deleted steps are
// excluded by GORM's default scope.
func (r *serviceGorm) FindStepByID(ctx context.Context, id uint) (*entity.Step, error) {
	var step entity.Step
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&step).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrStepNotFound
		}
		return nil, err
	}
	return &step, nil
}

// ListSteps returns every active step ordered by ID.
func (r *serviceGorm) ListSteps(ctx context.Context) ([]entity.Step, error) {
	var steps []entity.Step
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&steps).Error; err != nil {
		return nil, err
	}
	return steps, nil
}

// SoftDeleteStep marks a step as deleted.
func (r *serviceGorm) SoftDeleteStep(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Step{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return usecase.ErrStepNotFound
	}
	return nil
}

// CreateService persists a new service.
func (r *serviceGorm) CreateService(ctx context.Context, service *entity.Service) error {
	return r.db.WithContext(ctx).Create(service).Error
}

// FindServiceByID retrieves a service.
func (r *serviceGorm) FindServiceByID(ctx context.Context, id uint) (*entity.Service, error) {
	var service entity.Service
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrServiceNotFound
		}
		return nil, err
	}
	return &service, nil
}

// CreateServiceStep persists a step attachment.
func (r *serviceGorm) CreateServiceStep(ctx context.Context, link *entity.ServiceStep) error {
	return r.db.WithContext(ctx).Create(link).Error
}

// ListServiceSteps returns a service's attachments with their steps
// preloaded, ordered by position then ID. "order" needs quoting on
// every supported dialect, hence the clause builder.
func (r *serviceGorm) ListServiceSteps(ctx context.Context, serviceID uint) ([]entity.ServiceStep, error) {
	var links []entity.ServiceStep
	err := r.db.WithContext(ctx).
		Preload("Step", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Where("service_id = ?", serviceID).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "order"}}).
		Order("id ASC").
		Find(&links).Error
	if err != nil {
		return nil, err
	}
	return links, nil
}

// CreateDependency persists a dependency edge.
func (r *serviceGorm) CreateDependency(ctx context.Context, dep *entity.ServiceStepDependency) error {
	return r.db.WithContext(ctx).Create(dep).Error
}

// ListDependencies returns all dependency edges of a service.
func (r *serviceGorm) ListDependencies(ctx context.Context, serviceID uint) ([]entity.ServiceStepDependency, error) {
	var deps []entity.ServiceStepDependency
	if err := r.db.WithContext(ctx).Where("service_id = ?", serviceID).Find(&deps).Error; err != nil {
		return nil, err
	}
	return deps, nil
}

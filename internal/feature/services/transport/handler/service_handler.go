// Package handler provides the HTTP handlers for the services feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"users_backend/internal/feature/services/domain/entity"
	"users_backend/internal/feature/services/transport/http/dto"
	"users_backend/internal/feature/services/usecase"
	"users_backend/internal/shared/apiresponse"
)

// ServiceUsecase defines the operations the handler depends on.
// Following Go convention: interfaces are defined by the consumer
// (handler), not the provider (usecase).
type ServiceUsecase interface {
	CreateStep(ctx context.Context, in usecase.StepInput) (*entity.Step, error)
	ListSteps(ctx context.Context) ([]entity.Step, error)
	DeleteStep(ctx context.Context, id uint) error
	CreateService(ctx context.Context, name string) (*entity.Service, error)
	AttachStep(ctx context.Context, serviceID uint, in usecase.AttachStepInput) (*entity.ServiceStep, error)
	AddDependency(ctx context.Context, serviceID, prerequisiteStepID, dependentStepID uint) (*entity.ServiceStepDependency, error)
	ExecutionOrder(ctx context.Context, serviceID uint) ([]usecase.OrderedStep, error)
}

// ServiceHandler handles HTTP requests for step and service operations.
type ServiceHandler struct {
	services ServiceUsecase
}

// NewServiceHandler creates a new ServiceHandler instance.
func NewServiceHandler(services ServiceUsecase) *ServiceHandler {
	return &ServiceHandler{services: services}
}

func parseID(c *gin.Context, message string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		apiresponse.Error(c, http.StatusNotFound, message, nil)
		return 0, false
	}
	return uint(id), true
}

// CreateStep handles POST /steps.
func (h *ServiceHandler) CreateStep(c *gin.Context) {
	var req dto.CreateStepReq
	if err := c.ShouldBindJSON(&req); err != nil {
		apiresponse.Error(c, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return
	}

	step, err := h.services.CreateStep(c.Request.Context(), usecase.StepInput{
		Name:                 req.Name,
		DefaultCommission:    req.DefaultCommission,
		AverageExecutionTime: req.AverageExecutionTime,
	})
	if err != nil {
		slog.Error("step creation failed", "error", err)
		apiresponse.Error(c, http.StatusInternalServerError, "failed to create step", nil)
		return
	}

	apiresponse.Success(c, http.StatusCreated, "step created successfully", step)
}

// ListSteps handles GET /steps.
func (h *ServiceHandler) ListSteps(c *gin.Context) {
	steps, err := h.services.ListSteps(c.Request.Context())
	if err != nil {
		slog.Error("step listing failed", "error", err)
		apiresponse.Error(c, http.StatusInternalServerError, "failed to list steps", nil)
		return
	}

	apiresponse.Success(c, http.StatusOK, "", steps)
}

// DeleteStep handles DELETE /steps/:id (soft delete).
func (h *ServiceHandler) DeleteStep(c *gin.Context) {
	id, ok := parseID(c, "step not found")
	if !ok {
		return
	}

	if err := h.services.DeleteStep(c.Request.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrStepNotFound) {
			apiresponse.Error(c, http.StatusNotFound, "step not found", nil)
			return
		}
		slog.Error("step delete failed", "step_id", id, "error", err)
		apiresponse.Error(c, http.StatusInternalServerError, "failed to delete step", nil)
		return
	}

	apiresponse.Success(c, http.StatusOK, "step deleted successfully", nil)
}

// CreateService handles POST /services.
func (h *ServiceHandler) CreateService(c *gin.Context) {
	var req dto.CreateServiceReq
	if err := c.ShouldBindJSON(&req); err != nil {
		apiresponse.Error(c, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return
	}

	service, err := h.services.CreateService(c.Request.Context(), req.Name)
	if err != nil {
		slog.Error("service creation failed", "error", err)
		apiresponse.Error(c, http.StatusInternalServerError, "failed to create service", nil)
		return
	}

	apiresponse.Success(c, http.StatusCreated, "service created successfully", service)
}

// AttachStep handles POST /services/:id/steps.
func (h *ServiceHandler) AttachStep(c *gin.Context) {
	id, ok := parseID(c, "service not found")
	if !ok {
		return
	}

	var req dto.AttachStepReq
	if err := c.ShouldBindJSON(&req); err != nil {
		apiresponse.Error(c, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return
	}

	link, err := h.services.AttachStep(c.Request.Context(), id, usecase.AttachStepInput{
		StepID: req.StepID,
		Order:  req.Order,
		Group:  req.Group,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrServiceNotFound):
			apiresponse.Error(c, http.StatusNotFound, "service not found", nil)
		case errors.Is(err, usecase.ErrStepNotFound):
			apiresponse.Error(c, http.StatusNotFound, "step not found", nil)
		case errors.Is(err, usecase.ErrStepAlreadyAttached):
			apiresponse.Error(c, http.StatusUnprocessableEntity, "validation failed", gin.H{"step_id": "is already attached to the service"})
		default:
			slog.Error("step attachment failed", "service_id", id, "error", err)
			apiresponse.Error(c, http.StatusInternalServerError, "failed to attach step", nil)
		}
		return
	}

	apiresponse.Success(c, http.StatusCreated, "step attached successfully", link)
}

// AddDependency handles POST /services/:id/dependencies.
func (h *ServiceHandler) AddDependency(c *gin.Context) {
	id, ok := parseID(c, "service not found")
	if !ok {
		return
	}

	var req dto.AddDependencyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		apiresponse.Error(c, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return
	}

	dep, err := h.services.AddDependency(c.Request.Context(), id, req.PrerequisiteStepID, req.DependentStepID)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrServiceNotFound):
			apiresponse.Error(c, http.StatusNotFound, "service not found", nil)
		case errors.Is(err, usecase.ErrSelfDependency),
			errors.Is(err, usecase.ErrDuplicateDependency),
			errors.Is(err, usecase.ErrStepNotAttached),
			errors.Is(err, usecase.ErrCyclicDependency):
			apiresponse.Error(c, http.StatusUnprocessableEntity, "validation failed", err.Error())
		default:
			slog.Error("dependency creation failed", "service_id", id, "error", err)
			apiresponse.Error(c, http.StatusInternalServerError, "failed to add dependency", nil)
		}
		return
	}

	apiresponse.Success(c, http.StatusCreated, "dependency added successfully", dep)
}

// ExecutionOrder handles GET /services/:id/execution-order.
func (h *ServiceHandler) ExecutionOrder(c *gin.Context) {
	id, ok := parseID(c, "service not found")
	if !ok {
		return
	}

	order, err := h.services.ExecutionOrder(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrServiceNotFound):
			apiresponse.Error(c, http.StatusNotFound, "service not found", nil)
		case errors.Is(err, usecase.ErrCyclicDependency):
			apiresponse.Error(c, http.StatusConflict, "service dependencies contain a cycle", nil)
		default:
			slog.Error("execution order failed", "service_id", id, "error", err)
			apiresponse.Error(c, http.StatusInternalServerError, "failed to compute execution order", nil)
		}
		return
	}

	apiresponse.Success(c, http.StatusOK, "", order)
}

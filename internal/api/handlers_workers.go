// handlers_workers.go - Shop worker operation handlers
package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tailorpro/backend/internal/models"
)

// WorkerHandlerImpl implements the WorkerHandler interface
type WorkerHandlerImpl struct {
	workers WorkerStore
}

// NewWorkerHandler creates a new worker handler instance
func NewWorkerHandler(workers WorkerStore) WorkerHandler {
	return &WorkerHandlerImpl{workers: workers}
}

type workerRequest struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Role     string `json:"role"`
	IsActive *bool  `json:"isActive"`
}

func (r *workerRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return NewValidationError("name")
	}
	switch models.WorkerRole(r.Role) {
	case models.RoleCutter, models.RoleChecker, models.RoleKarigar:
		return nil
	}
	return NewValidationError("role")
}

// HandleListWorkers returns workers, optionally filtered by role
func (h *WorkerHandlerImpl) HandleListWorkers(c echo.Context) error {
	role := models.WorkerRole(c.QueryParam("role"))

	workers, err := h.workers.List(c.Request().Context(), role)
	if err != nil {
		return NewInternalError("failed to list workers", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"workers": workers,
		"count":   len(workers),
	})
}

// HandleCreateWorker creates a new worker record
func (h *WorkerHandlerImpl) HandleCreateWorker(c echo.Context) error {
	var req workerRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if err := req.validate(); err != nil {
		return err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	worker, err := h.workers.Create(c.Request().Context(), &models.Worker{
		Name:     strings.TrimSpace(req.Name),
		Phone:    strings.TrimSpace(req.Phone),
		Role:     models.WorkerRole(req.Role),
		IsActive: active,
	})
	if err != nil {
		return NewInternalError("failed to create worker", err)
	}

	return c.JSON(http.StatusCreated, worker)
}

// HandleGetWorker returns one worker by id
func (h *WorkerHandlerImpl) HandleGetWorker(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	worker, err := h.workers.Get(c.Request().Context(), id)
	if err != nil {
		return NewNotFoundError("worker", c.Param("id"))
	}

	return c.JSON(http.StatusOK, worker)
}

// HandleUpdateWorker updates an existing worker record
func (h *WorkerHandlerImpl) HandleUpdateWorker(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req workerRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if err := req.validate(); err != nil {
		return err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	worker, err := h.workers.Update(c.Request().Context(), &models.Worker{
		ID:       id,
		Name:     strings.TrimSpace(req.Name),
		Phone:    strings.TrimSpace(req.Phone),
		Role:     models.WorkerRole(req.Role),
		IsActive: active,
	})
	if err != nil {
		return NewNotFoundError("worker", c.Param("id"))
	}

	return c.JSON(http.StatusOK, worker)
}

// HandleDeleteWorker removes a worker record
func (h *WorkerHandlerImpl) HandleDeleteWorker(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.workers.Delete(c.Request().Context(), id); err != nil {
		return NewNotFoundError("worker", c.Param("id"))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"deleted": id,
	})
}

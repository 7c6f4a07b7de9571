// handlers_designer.go - Layout editor session handlers
package api

import (
	"encoding/base64"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tailorpro/backend/internal/designer"
	"github.com/tailorpro/backend/internal/models"
)

// DesignerHandlerImpl implements the DesignerHandler interface
type DesignerHandlerImpl struct {
	manager *designer.Manager
}

// NewDesignerHandler creates a new designer handler instance
func NewDesignerHandler(manager *designer.Manager) DesignerHandler {
	return &DesignerHandlerImpl{manager: manager}
}

// designerError maps editor errors onto API responses
func designerError(err error) error {
	switch {
	case errors.Is(err, designer.ErrFixed):
		return &APIError{
			Status:  http.StatusConflict,
			Code:    "FIXED_ELEMENT",
			Message: "fixed elements cannot be selected or edited",
		}
	case errors.Is(err, designer.ErrNoSelection), errors.Is(err, designer.ErrBadTransition):
		return &APIError{
			Status:  http.StatusConflict,
			Code:    "BAD_EDITOR_STATE",
			Message: err.Error(),
		}
	case strings.Contains(err.Error(), "not found"):
		return &APIError{
			Status:  http.StatusNotFound,
			Code:    "NOT_FOUND",
			Message: err.Error(),
		}
	}
	return NewInternalError("designer operation failed", err)
}

// HandleCreateDesignerSession opens an editor session on the saved layout
func (h *DesignerHandlerImpl) HandleCreateDesignerSession(c echo.Context) error {
	info, err := h.manager.Create(c.Request().Context())
	if err != nil {
		return NewInternalError("failed to create designer session", err)
	}
	return c.JSON(http.StatusCreated, info)
}

// HandleGetDesignerSession returns the session summary
func (h *DesignerHandlerImpl) HandleGetDesignerSession(c echo.Context) error {
	info, err := h.manager.Get(c.Param("id"))
	if err != nil {
		return designerError(err)
	}
	return c.JSON(http.StatusOK, info)
}

// HandleDesignerDocument returns the render document for the editor canvas
func (h *DesignerHandlerImpl) HandleDesignerDocument(c echo.Context) error {
	doc, err := h.manager.Document(c.Param("id"))
	if err != nil {
		return designerError(err)
	}
	return c.JSON(http.StatusOK, doc)
}

type selectRequest struct {
	ElementID string `json:"elementId"`
}

// HandleSelectElement selects a movable element
func (h *DesignerHandlerImpl) HandleSelectElement(c echo.Context) error {
	var req selectRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if req.ElementID == "" {
		return NewValidationError("elementId")
	}

	if err := h.manager.Select(c.Param("id"), req.ElementID); err != nil {
		return designerError(err)
	}
	return h.respondInfo(c)
}

// HandleDeselectElement clears the selection
func (h *DesignerHandlerImpl) HandleDeselectElement(c echo.Context) error {
	if err := h.manager.Deselect(c.Param("id")); err != nil {
		return designerError(err)
	}
	return h.respondInfo(c)
}

// HandleBeginDrag starts a drag gesture on the selected element
func (h *DesignerHandlerImpl) HandleBeginDrag(c echo.Context) error {
	if err := h.manager.BeginDrag(c.Param("id")); err != nil {
		return designerError(err)
	}
	return h.respondInfo(c)
}

type dropRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// HandleEndDrag commits a drag at the dropped pixel position
func (h *DesignerHandlerImpl) HandleEndDrag(c echo.Context) error {
	var req dropRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	if err := h.manager.EndDrag(c.Param("id"), req.X, req.Y); err != nil {
		return designerError(err)
	}
	return h.respondInfo(c)
}

// HandleBeginResize starts a resize gesture on the selected element
func (h *DesignerHandlerImpl) HandleBeginResize(c echo.Context) error {
	if err := h.manager.BeginResize(c.Param("id")); err != nil {
		return designerError(err)
	}
	return h.respondInfo(c)
}

type resizeRequest struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// HandleEndResize commits a resize with the final pixel box
func (h *DesignerHandlerImpl) HandleEndResize(c echo.Context) error {
	var req resizeRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	if err := h.manager.EndResize(c.Param("id"), req.X, req.Y, req.Width, req.Height); err != nil {
		return designerError(err)
	}
	return h.respondInfo(c)
}

// HandleUpdateElement applies property-inspector edits to one element
func (h *DesignerHandlerImpl) HandleUpdateElement(c echo.Context) error {
	var patch designer.ElementPatch
	if err := c.Bind(&patch); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	if err := h.manager.UpdateElement(c.Param("id"), c.Param("elementId"), patch); err != nil {
		return designerError(err)
	}
	return h.respondInfo(c)
}

// HandleAddShapeInput adds an overlay input to a measurement shape
func (h *DesignerHandlerImpl) HandleAddShapeInput(c echo.Context) error {
	input, err := h.manager.AddShapeInput(c.Param("id"), c.Param("shapeId"))
	if err != nil {
		return designerError(err)
	}
	return c.JSON(http.StatusCreated, input)
}

// HandleUpdateShapeInput edits an overlay input's id, position or anchors
func (h *DesignerHandlerImpl) HandleUpdateShapeInput(c echo.Context) error {
	var patch designer.ShapeInputPatch
	if err := c.Bind(&patch); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	if err := h.manager.UpdateShapeInput(c.Param("id"), c.Param("shapeId"), c.Param("inputId"), patch); err != nil {
		return designerError(err)
	}
	return h.respondInfo(c)
}

// HandleRemoveShapeInput removes an overlay input from a shape
func (h *DesignerHandlerImpl) HandleRemoveShapeInput(c echo.Context) error {
	if err := h.manager.RemoveShapeInput(c.Param("id"), c.Param("shapeId"), c.Param("inputId")); err != nil {
		return designerError(err)
	}
	return h.respondInfo(c)
}

type pageSizeRequest struct {
	PageSize string `json:"pageSize"`
}

// HandleSetDesignerPageSize switches the working page size
func (h *DesignerHandlerImpl) HandleSetDesignerPageSize(c echo.Context) error {
	var req pageSizeRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	if err := h.manager.SetPageSize(c.Param("id"), models.PageSize(req.PageSize)); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return designerError(err)
		}
		return NewValidationError("pageSize")
	}
	return h.respondInfo(c)
}

// HandleResetDesigner replaces the working layout with the factory default
func (h *DesignerHandlerImpl) HandleResetDesigner(c echo.Context) error {
	if err := h.manager.ResetToDefault(c.Param("id")); err != nil {
		return designerError(err)
	}
	return h.respondInfo(c)
}

type importDesignerRequest struct {
	Data string `json:"data"` // base64-encoded layout JSON
}

// HandleImportDesignerLayout loads an exported layout into the session
func (h *DesignerHandlerImpl) HandleImportDesignerLayout(c echo.Context) error {
	var req importDesignerRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	decoded, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return NewBadRequestError("invalid base64 data", err)
	}

	if err := h.manager.Import(c.Param("id"), decoded); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return designerError(err)
		}
		return NewBadRequestError("invalid layout document", err)
	}
	return h.respondInfo(c)
}

// HandleExportDesignerLayout serializes the session's working layout
func (h *DesignerHandlerImpl) HandleExportDesignerLayout(c echo.Context) error {
	data, err := h.manager.Export(c.Param("id"))
	if err != nil {
		return designerError(err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="slip-layout.json"`)
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

// HandleSaveDesigner persists the working layout as the shop's saved layout
func (h *DesignerHandlerImpl) HandleSaveDesigner(c echo.Context) error {
	if err := h.manager.Save(c.Request().Context(), c.Param("id")); err != nil {
		return designerError(err)
	}
	return h.respondInfo(c)
}

// HandleCloseDesignerSession discards the editor session
func (h *DesignerHandlerImpl) HandleCloseDesignerSession(c echo.Context) error {
	if err := h.manager.Close(c.Param("id")); err != nil {
		return designerError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"closed": c.Param("id"),
	})
}

// respondInfo returns the refreshed session summary after a mutation
func (h *DesignerHandlerImpl) respondInfo(c echo.Context) error {
	info, err := h.manager.Get(c.Param("id"))
	if err != nil {
		return designerError(err)
	}
	return c.JSON(http.StatusOK, info)
}

// handlers_layout.go - Saved slip layout and layout archive handlers
package api

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/tailorpro/backend/internal/layout"
	"github.com/tailorpro/backend/internal/models"
	"github.com/tailorpro/backend/internal/storage"
)

// LayoutHandlerImpl implements the LayoutHandler interface
type LayoutHandlerImpl struct {
	settings    SettingsStore
	archive     storage.Store
	recentLimit int
}

// NewLayoutHandler creates a new layout handler instance
func NewLayoutHandler(settings SettingsStore, archive storage.Store, recentLimit int) LayoutHandler {
	return &LayoutHandlerImpl{
		settings:    settings,
		archive:     archive,
		recentLimit: recentLimit,
	}
}

// HandleGetLayout returns the saved layout resolved against the factory
// default, so the client always sees a complete element list
func (h *LayoutHandlerImpl) HandleGetLayout(c echo.Context) error {
	settings, err := h.settings.Get(c.Request().Context())
	if err != nil {
		return NewInternalError("failed to load settings", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"elements": layout.Resolve(settings.SlipLayout),
		"pageSize": settings.PageSize,
	})
}

type saveLayoutRequest struct {
	Elements []models.LayoutElement `json:"elements"`
	PageSize string                 `json:"pageSize"`
}

// HandleSaveLayout persists a layout wholesale
func (h *LayoutHandlerImpl) HandleSaveLayout(c echo.Context) error {
	var req saveLayoutRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	pageSize := models.PageSize(req.PageSize)
	if !pageSize.Valid() {
		return NewValidationError("pageSize")
	}

	if err := h.settings.SaveLayout(c.Request().Context(), req.Elements, pageSize); err != nil {
		return NewInternalError("failed to save layout", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"saved":    len(req.Elements),
		"pageSize": pageSize,
	})
}

type importLayoutRequest struct {
	Name string `json:"name"`
	Data string `json:"data"` // base64-encoded layout JSON
}

// HandleImportLayout validates an exported layout document, saves it as
// the active layout and archives the original file
func (h *LayoutHandlerImpl) HandleImportLayout(c echo.Context) error {
	var req importLayoutRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if strings.TrimSpace(req.Name) == "" {
		return NewValidationError("name")
	}

	decoded, err := base64.StdEncoding.DecodeString(req.Data)
	if err != nil {
		return NewBadRequestError("invalid base64 data", err)
	}

	elements, err := layout.Import(decoded)
	if err != nil {
		if errors.Is(err, layout.ErrNotList) || errors.Is(err, layout.ErrBadElement) {
			return NewBadRequestError("invalid layout document", err)
		}
		return NewBadRequestError("failed to parse layout document", err)
	}

	settings, err := h.settings.Get(c.Request().Context())
	if err != nil {
		return NewInternalError("failed to load settings", err)
	}
	if err := h.settings.SaveLayout(c.Request().Context(), elements, settings.PageSize); err != nil {
		return NewInternalError("failed to save imported layout", err)
	}

	info, err := h.archive.SaveBytes(req.Name, "imported", decoded)
	if err != nil {
		return NewInternalError("failed to archive layout file", err)
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"file":     info,
		"elements": len(elements),
	})
}

// HandleExportLayout serializes the resolved layout, archives a copy and
// returns the document for download
func (h *LayoutHandlerImpl) HandleExportLayout(c echo.Context) error {
	settings, err := h.settings.Get(c.Request().Context())
	if err != nil {
		return NewInternalError("failed to load settings", err)
	}

	data, err := layout.Export(layout.Resolve(settings.SlipLayout))
	if err != nil {
		return NewInternalError("failed to serialize layout", err)
	}

	name := fmt.Sprintf("slip-layout-%s.json", time.Now().Format("2006-01-02"))
	if _, err := h.archive.SaveBytes(name, "exported", data); err != nil {
		return NewInternalError("failed to archive layout file", err)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+name+`"`)
	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

// HandleResetLayout discards the saved layout so the factory default
// applies again
func (h *LayoutHandlerImpl) HandleResetLayout(c echo.Context) error {
	settings, err := h.settings.Get(c.Request().Context())
	if err != nil {
		return NewInternalError("failed to load settings", err)
	}

	if err := h.settings.SaveLayout(c.Request().Context(), nil, settings.PageSize); err != nil {
		return NewInternalError("failed to reset layout", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"elements": layout.Factory(),
		"pageSize": settings.PageSize,
	})
}

// HandleRecentLayoutFiles lists archived layout files, newest first
func (h *LayoutHandlerImpl) HandleRecentLayoutFiles(c echo.Context) error {
	limit := h.recentLimit
	if raw := c.QueryParam("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			return NewBadRequestError("invalid limit parameter", err)
		}
		limit = parsed
	}

	files, err := h.archive.List(limit)
	if err != nil {
		return NewInternalError("failed to list layout files", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"files": files,
		"count": len(files),
	})
}

// HandleGetLayoutFile returns an archived layout document by id
func (h *LayoutHandlerImpl) HandleGetLayoutFile(c echo.Context) error {
	id := c.Param("id")

	data, err := h.archive.ReadBytes(id)
	if err != nil {
		return NewNotFoundError("layout file", id)
	}

	return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
}

// HandleDeleteLayoutFile removes an archived layout file
func (h *LayoutHandlerImpl) HandleDeleteLayoutFile(c echo.Context) error {
	id := c.Param("id")

	if err := h.archive.Delete(id); err != nil {
		return NewNotFoundError("layout file", id)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"deleted": id,
	})
}

type renameFileRequest struct {
	Name string `json:"name"`
}

// HandleRenameLayoutFile renames an archived layout file
func (h *LayoutHandlerImpl) HandleRenameLayoutFile(c echo.Context) error {
	id := c.Param("id")

	var req renameFileRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if strings.TrimSpace(req.Name) == "" {
		return NewValidationError("name")
	}

	info, err := h.archive.Rename(id, strings.TrimSpace(req.Name))
	if err != nil {
		return NewNotFoundError("layout file", id)
	}

	return c.JSON(http.StatusOK, info)
}

// handlers_settings.go - Shop settings operation handlers
package api

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tailorpro/backend/internal/models"
)

// SettingsHandlerImpl implements the SettingsHandler interface
type SettingsHandlerImpl struct {
	settings SettingsStore
}

// NewSettingsHandler creates a new settings handler instance
func NewSettingsHandler(settings SettingsStore) SettingsHandler {
	return &SettingsHandlerImpl{settings: settings}
}

type settingsRequest struct {
	ShopName string `json:"shopName"`
	Address  string `json:"address"`
	Phone1   string `json:"phone1"`
	Phone2   string `json:"phone2"`
	PageSize string `json:"slipPageSize"`
}

// HandleGetSettings returns the shop settings record
func (h *SettingsHandlerImpl) HandleGetSettings(c echo.Context) error {
	settings, err := h.settings.Get(c.Request().Context())
	if err != nil {
		return NewInternalError("failed to load settings", err)
	}

	return c.JSON(http.StatusOK, settings)
}

// HandleUpdateSettings updates the shop identity and page size. The
// saved slip layout is left untouched, the designer owns that.
func (h *SettingsHandlerImpl) HandleUpdateSettings(c echo.Context) error {
	var req settingsRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if strings.TrimSpace(req.ShopName) == "" {
		return NewValidationError("shopName")
	}
	pageSize := models.PageSize(req.PageSize)
	if req.PageSize != "" && !pageSize.Valid() {
		return NewValidationError("slipPageSize")
	}

	settings, err := h.settings.Get(c.Request().Context())
	if err != nil {
		return NewInternalError("failed to load settings", err)
	}

	settings.ShopName = strings.TrimSpace(req.ShopName)
	settings.Address = strings.TrimSpace(req.Address)
	settings.Phone1 = strings.TrimSpace(req.Phone1)
	settings.Phone2 = strings.TrimSpace(req.Phone2)
	if req.PageSize != "" {
		settings.PageSize = pageSize
	}

	if err := h.settings.Save(c.Request().Context(), settings); err != nil {
		return NewInternalError("failed to save settings", err)
	}

	return c.JSON(http.StatusOK, settings)
}

// handlers_settings_test.go - Tests for settings handlers
package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tailorpro/backend/internal/models"
)

func TestSettingsHandler_HandleGetSettings(t *testing.T) {
	handler := NewSettingsHandler(newMockSettings())
	e := echo.New()
	c, rec := newJSONContext(e, http.MethodGet, "/api/settings", nil)

	if err := handler.HandleGetSettings(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got models.Settings
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if got.ShopName != "New Style Tailors" {
		t.Errorf("unexpected shop name %q", got.ShopName)
	}
	if got.PageSize != models.PageA5 {
		t.Errorf("unexpected page size %q", got.PageSize)
	}
}

func TestSettingsHandler_HandleUpdateSettings(t *testing.T) {
	settings := newMockSettings()
	settings.settings.SlipLayout = []models.LayoutElement{{ID: "custom"}}
	handler := NewSettingsHandler(settings)
	e := echo.New()

	t.Run("updates identity and keeps layout", func(t *testing.T) {
		c, rec := newJSONContext(e, http.MethodPut, "/api/settings", settingsRequest{
			ShopName: "Al-Karam Tailors",
			Phone1:   "0311-2223344",
			PageSize: "A4",
		})

		if err := handler.HandleUpdateSettings(c); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
		if settings.settings.ShopName != "Al-Karam Tailors" {
			t.Errorf("shop name not saved: %q", settings.settings.ShopName)
		}
		if settings.settings.PageSize != models.PageA4 {
			t.Errorf("page size not saved: %q", settings.settings.PageSize)
		}
		if len(settings.settings.SlipLayout) != 1 || settings.settings.SlipLayout[0].ID != "custom" {
			t.Error("saved layout should be untouched by a settings update")
		}
	})

	t.Run("rejects empty shop name", func(t *testing.T) {
		c, _ := newJSONContext(e, http.MethodPut, "/api/settings", settingsRequest{ShopName: ""})

		err := handler.HandleUpdateSettings(c)
		apiErr, ok := err.(*APIError)
		if !ok || apiErr.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("rejects unknown page size", func(t *testing.T) {
		c, _ := newJSONContext(e, http.MethodPut, "/api/settings", settingsRequest{
			ShopName: "Al-Karam Tailors",
			PageSize: "letter",
		})

		err := handler.HandleUpdateSettings(c)
		apiErr, ok := err.(*APIError)
		if !ok || apiErr.Code != "VALIDATION_ERROR" {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

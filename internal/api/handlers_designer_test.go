// handlers_designer_test.go - Tests for layout editor handlers
package api

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tailorpro/backend/internal/designer"
)

func newDesignerFixture(t *testing.T) (*DesignerHandlerImpl, *mockSettings) {
	t.Helper()
	settings := newMockSettings()
	manager := designer.NewManager(settings)
	handler := NewDesignerHandler(manager).(*DesignerHandlerImpl)
	return handler, settings
}

func openDesignerSession(t *testing.T, handler *DesignerHandlerImpl, e *echo.Echo) string {
	t.Helper()
	c, rec := newJSONContext(e, http.MethodPost, "/api/designer/sessions", nil)
	if err := handler.HandleCreateDesignerSession(c); err != nil {
		t.Fatalf("create session failed: %v", err)
	}
	var info designer.Info
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if info.ID == "" {
		t.Fatal("expected session id")
	}
	return info.ID
}

func TestDesignerHandler_SelectElement(t *testing.T) {
	handler, _ := newDesignerFixture(t)
	e := echo.New()
	sessionID := openDesignerSession(t, handler, e)

	t.Run("movable element", func(t *testing.T) {
		c, rec := newJSONContext(e, http.MethodPost, "/x", selectRequest{ElementID: "svg_shape14"})
		c.SetParamNames("id")
		c.SetParamValues(sessionID)

		if err := handler.HandleSelectElement(c); err != nil {
			t.Fatalf("select failed: %v", err)
		}
		var info designer.Info
		if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		if info.State != designer.StateSelected || info.Selected != "svg_shape14" {
			t.Errorf("unexpected info %+v", info)
		}
	})

	t.Run("fixed element rejected", func(t *testing.T) {
		c, _ := newJSONContext(e, http.MethodPost, "/x", selectRequest{ElementID: "header_title"})
		c.SetParamNames("id")
		c.SetParamValues(sessionID)

		err := handler.HandleSelectElement(c)
		apiErr, ok := err.(*APIError)
		if !ok || apiErr.Code != "FIXED_ELEMENT" {
			t.Fatalf("expected FIXED_ELEMENT, got %v", err)
		}
	})

	t.Run("unknown element", func(t *testing.T) {
		c, _ := newJSONContext(e, http.MethodPost, "/x", selectRequest{ElementID: "nope"})
		c.SetParamNames("id")
		c.SetParamValues(sessionID)

		err := handler.HandleSelectElement(c)
		apiErr, ok := err.(*APIError)
		if !ok || apiErr.Status != http.StatusNotFound {
			t.Fatalf("expected not found, got %v", err)
		}
	})
}

func TestDesignerHandler_DragFlow(t *testing.T) {
	handler, _ := newDesignerFixture(t)
	e := echo.New()
	sessionID := openDesignerSession(t, handler, e)

	post := func(path string, body interface{}, handle func(echo.Context) error) (*designer.Info, error) {
		c, rec := newJSONContext(e, http.MethodPost, path, body)
		c.SetParamNames("id")
		c.SetParamValues(sessionID)
		if err := handle(c); err != nil {
			return nil, err
		}
		var info designer.Info
		if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
			t.Fatalf("invalid response body: %v", err)
		}
		return &info, nil
	}

	// Drag before selecting anything is a state error
	if _, err := post("/drag/begin", nil, handler.HandleBeginDrag); err == nil {
		t.Fatal("expected error for drag without selection")
	}

	if _, err := post("/select", selectRequest{ElementID: "svg_shape14"}, handler.HandleSelectElement); err != nil {
		t.Fatalf("select failed: %v", err)
	}
	info, err := post("/drag/begin", nil, handler.HandleBeginDrag)
	if err != nil {
		t.Fatalf("begin drag failed: %v", err)
	}
	if info.State != designer.StateDragging {
		t.Errorf("expected dragging state, got %s", info.State)
	}

	info, err = post("/drag/end", dropRequest{X: 100, Y: 140}, handler.HandleEndDrag)
	if err != nil {
		t.Fatalf("end drag failed: %v", err)
	}
	if info.State != designer.StateSelected {
		t.Errorf("expected selected state after drop, got %s", info.State)
	}
	if !info.Dirty {
		t.Error("session should be dirty after a move")
	}
}

func TestDesignerHandler_SavePersists(t *testing.T) {
	handler, settings := newDesignerFixture(t)
	e := echo.New()
	sessionID := openDesignerSession(t, handler, e)

	c, _ := newJSONContext(e, http.MethodPut, "/page-size", pageSizeRequest{PageSize: "A4"})
	c.SetParamNames("id")
	c.SetParamValues(sessionID)
	if err := handler.HandleSetDesignerPageSize(c); err != nil {
		t.Fatalf("set page size failed: %v", err)
	}

	c, rec := newJSONContext(e, http.MethodPost, "/save", nil)
	c.SetParamNames("id")
	c.SetParamValues(sessionID)
	if err := handler.HandleSaveDesigner(c); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	var info designer.Info
	if err := json.Unmarshal(rec.Body.Bytes(), &info); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if info.Dirty {
		t.Error("dirty flag should clear after save")
	}
	if len(settings.settings.SlipLayout) == 0 {
		t.Error("layout not persisted")
	}
	if settings.settings.PageSize != "A4" {
		t.Errorf("page size not persisted, got %q", settings.settings.PageSize)
	}
}

func TestDesignerHandler_PageSizeValidation(t *testing.T) {
	handler, _ := newDesignerFixture(t)
	e := echo.New()
	sessionID := openDesignerSession(t, handler, e)

	c, _ := newJSONContext(e, http.MethodPut, "/page-size", pageSizeRequest{PageSize: "letter"})
	c.SetParamNames("id")
	c.SetParamValues(sessionID)

	err := handler.HandleSetDesignerPageSize(c)
	apiErr, ok := err.(*APIError)
	if !ok || apiErr.Code != "VALIDATION_ERROR" {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDesignerHandler_ShapeInputs(t *testing.T) {
	handler, _ := newDesignerFixture(t)
	e := echo.New()
	sessionID := openDesignerSession(t, handler, e)

	c, rec := newJSONContext(e, http.MethodPost, "/inputs", nil)
	c.SetParamNames("id", "shapeId")
	c.SetParamValues(sessionID, "svg_shape14")
	if err := handler.HandleAddShapeInput(c); err != nil {
		t.Fatalf("add input failed: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	var input struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &input); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if input.ID != "shape14_3" {
		t.Errorf("expected shape14_3, got %q", input.ID)
	}

	c, _ = newJSONContext(e, http.MethodDelete, "/inputs", nil)
	c.SetParamNames("id", "shapeId", "inputId")
	c.SetParamValues(sessionID, "svg_shape14", input.ID)
	if err := handler.HandleRemoveShapeInput(c); err != nil {
		t.Fatalf("remove input failed: %v", err)
	}
}

func TestDesignerHandler_ExportImport(t *testing.T) {
	handler, _ := newDesignerFixture(t)
	e := echo.New()
	sessionID := openDesignerSession(t, handler, e)

	c, rec := newJSONContext(e, http.MethodGet, "/export", nil)
	c.SetParamNames("id")
	c.SetParamValues(sessionID)
	if err := handler.HandleExportDesignerLayout(c); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if rec.Body.Len() == 0 {
		t.Fatal("expected exported document")
	}
}

// handlers_slip.go - Live slip session handlers
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tailorpro/backend/internal/render"
	"github.com/tailorpro/backend/internal/slip"
)

// SlipHandlerImpl implements the SlipHandler interface
type SlipHandlerImpl struct {
	manager *slip.Manager
}

// NewSlipHandler creates a new slip handler instance
func NewSlipHandler(manager *slip.Manager) SlipHandler {
	return &SlipHandlerImpl{manager: manager}
}

// slipError maps session errors onto API responses
func slipError(err error) error {
	if strings.Contains(err.Error(), "not found") {
		return &APIError{
			Status:  http.StatusNotFound,
			Code:    "NOT_FOUND",
			Message: err.Error(),
		}
	}
	return NewBadRequestError("slip operation failed", err)
}

type openSlipRequest struct {
	CustomerID int64 `json:"customerId"`
}

// HandleOpenSlipSession opens a measurement session for a customer
func (h *SlipHandlerImpl) HandleOpenSlipSession(c echo.Context) error {
	var req openSlipRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if req.CustomerID == 0 {
		return NewValidationError("customerId")
	}

	info, err := h.manager.Open(c.Request().Context(), req.CustomerID)
	if err != nil {
		return slipError(err)
	}
	return c.JSON(http.StatusCreated, info)
}

// HandleGetSlipSession returns the session summary
func (h *SlipHandlerImpl) HandleGetSlipSession(c echo.Context) error {
	info, err := h.manager.Get(c.Param("id"))
	if err != nil {
		return slipError(err)
	}
	return c.JSON(http.StatusOK, info)
}

// HandleSlipDocument returns the form render document. Clients that send
// ?format=msgpack get the compact binary encoding.
func (h *SlipHandlerImpl) HandleSlipDocument(c echo.Context) error {
	doc, err := h.manager.Document(c.Param("id"))
	if err != nil {
		return slipError(err)
	}

	if c.QueryParam("format") == "msgpack" {
		data, err := render.MarshalMsgpackDocument(doc)
		if err != nil {
			return NewInternalError("failed to encode document", err)
		}
		return c.Blob(http.StatusOK, "application/x-msgpack", data)
	}

	return c.JSON(http.StatusOK, doc)
}

type fieldRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// HandleSetSlipField stores one measurement value. The raw text is parsed
// for fraction glyphs before it lands in the value map.
func (h *SlipHandlerImpl) HandleSetSlipField(c echo.Context) error {
	var req fieldRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if req.Field == "" {
		return NewValidationError("field")
	}

	if err := h.manager.SetField(c.Param("id"), req.Field, req.Value); err != nil {
		return slipError(err)
	}
	return h.respondInfo(c)
}

type choiceRequest struct {
	Group string `json:"group"`
	Key   string `json:"key"`
}

// HandleSelectSlipChoice selects one option of a choice group. An empty
// key clears the group.
func (h *SlipHandlerImpl) HandleSelectSlipChoice(c echo.Context) error {
	var req choiceRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if req.Group == "" {
		return NewValidationError("group")
	}

	if err := h.manager.SelectChoice(c.Param("id"), req.Group, req.Key); err != nil {
		return slipError(err)
	}
	return h.respondInfo(c)
}

type optionRequest struct {
	Key string `json:"key"`
	On  bool   `json:"on"`
}

// HandleSetSlipOption toggles a design option flag
func (h *SlipHandlerImpl) HandleSetSlipOption(c echo.Context) error {
	var req optionRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if req.Key == "" {
		return NewValidationError("key")
	}

	if err := h.manager.SetDesignOption(c.Param("id"), req.Key, req.On); err != nil {
		return slipError(err)
	}
	return h.respondInfo(c)
}

// HandleResetSlipValues clears every measurement field and design option
// back to the new-customer state
func (h *SlipHandlerImpl) HandleResetSlipValues(c echo.Context) error {
	if err := h.manager.ResetValues(c.Param("id")); err != nil {
		return slipError(err)
	}
	return h.respondInfo(c)
}

// HandleSlipStatus returns the current autosave status
func (h *SlipHandlerImpl) HandleSlipStatus(c echo.Context) error {
	status, err := h.manager.Status(c.Param("id"))
	if err != nil {
		return slipError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": status,
	})
}

// HandleSlipStatusStream streams autosave status transitions over SSE so
// the form can show the idle/saving/saved indicator without polling
func (h *SlipHandlerImpl) HandleSlipStatusStream(c echo.Context) error {
	sessionID := c.Param("id")

	watch, err := h.manager.WatchStatus(sessionID)
	if err != nil {
		return slipError(err)
	}
	defer h.manager.UnwatchStatus(sessionID, watch)

	// Set SSE headers
	c.Response().Header().Set(echo.HeaderContentType, "text/event-stream")
	c.Response().Header().Set("Cache-Control", "no-cache")
	c.Response().Header().Set("Connection", "keep-alive")
	c.Response().Header().Set("X-Accel-Buffering", "no")
	c.Response().WriteHeader(http.StatusOK)

	// Send the current status immediately so the client starts in sync
	if status, err := h.manager.Status(sessionID); err == nil {
		sendSSEStatus(c, status)
	}

	ctx := c.Request().Context()
	for {
		select {
		case <-ctx.Done():
			return nil
		case status, ok := <-watch:
			if !ok {
				// Session closed, end the stream
				return nil
			}
			sendSSEStatus(c, status)
		}
	}
}

// sendSSEStatus writes one status event and flushes
func sendSSEStatus(c echo.Context, status slip.Status) {
	payload, _ := json.Marshal(map[string]interface{}{
		"status": status,
	})
	fmt.Fprintf(c.Response(), "data: %s\n\n", payload)
	c.Response().Flush()
}

// HandleCloseSlipSession flushes any pending save and closes the session
func (h *SlipHandlerImpl) HandleCloseSlipSession(c echo.Context) error {
	if err := h.manager.Close(c.Request().Context(), c.Param("id")); err != nil {
		if strings.Contains(err.Error(), "not found") {
			return slipError(err)
		}
		return NewInternalError("failed to flush session", err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"closed": c.Param("id"),
	})
}

// respondInfo returns the refreshed session summary after a mutation
func (h *SlipHandlerImpl) respondInfo(c echo.Context) error {
	info, err := h.manager.Get(c.Param("id"))
	if err != nil {
		return slipError(err)
	}
	return c.JSON(http.StatusOK, info)
}

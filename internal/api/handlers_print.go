// handlers_print.go - Printable slip page handler
package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tailorpro/backend/internal/layout"
	"github.com/tailorpro/backend/internal/render"
)

// PrintHandlerImpl implements the PrintHandler interface
type PrintHandlerImpl struct {
	customers    CustomerStore
	orders       OrderStore
	workers      WorkerStore
	measurements MeasurementStore
	settings     SettingsStore
}

// NewPrintHandler creates a new print handler instance
func NewPrintHandler(customers CustomerStore, orders OrderStore, workers WorkerStore, measurements MeasurementStore, settings SettingsStore) PrintHandler {
	return &PrintHandlerImpl{
		customers:    customers,
		orders:       orders,
		workers:      workers,
		measurements: measurements,
		settings:     settings,
	}
}

// HandlePrintSlip renders the customer's saved measurement as a printable
// HTML page. An optional orderId query adds the order context line and
// resolves assigned worker names.
func (h *PrintHandlerImpl) HandlePrintSlip(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}
	reqCtx := c.Request().Context()

	customer, err := h.customers.Get(reqCtx, id)
	if err != nil {
		return NewNotFoundError("customer", c.Param("id"))
	}

	settings, err := h.settings.Get(reqCtx)
	if err != nil {
		return NewInternalError("failed to load settings", err)
	}

	measurement, err := h.measurements.GetByCustomer(reqCtx, id)
	if err != nil {
		return NewInternalError("failed to load measurement", err)
	}
	fields := map[string]string{}
	if measurement != nil {
		fields, _ = measurement.CloneValues()
	}

	renderCtx := &render.Context{
		Customer: customer,
		Settings: settings,
		PageSize: settings.PageSize,
		SerialNo: fields["sNo"],
	}
	if renderCtx.SerialNo == "" {
		renderCtx.SerialNo = strconv.FormatInt(id, 10)
	}

	if raw := c.QueryParam("orderId"); raw != "" {
		orderID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return NewBadRequestError("invalid orderId parameter", err)
		}
		order, err := h.orders.Get(reqCtx, orderID)
		if err != nil {
			return NewNotFoundError("order", raw)
		}
		if order.CustomerID != id {
			return NewBadRequestError("order belongs to a different customer", nil)
		}
		names, err := h.workers.NamesForOrder(reqCtx, order)
		if err != nil {
			return NewInternalError("failed to resolve worker names", err)
		}
		renderCtx.Order = order
		renderCtx.Workers = names
	}

	tree := render.Build(layout.Resolve(settings.SlipLayout), fields, renderCtx)
	html, err := render.PrintHTML(tree, renderCtx)
	if err != nil {
		return NewInternalError("failed to render slip", err)
	}

	return c.HTML(http.StatusOK, html)
}

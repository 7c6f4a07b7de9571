// handlers_orders.go - Order operation handlers
package api

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/tailorpro/backend/internal/models"
)

// OrderHandlerImpl implements the OrderHandler interface
type OrderHandlerImpl struct {
	orders    OrderStore
	customers CustomerStore
}

// NewOrderHandler creates a new order handler instance
func NewOrderHandler(orders OrderStore, customers CustomerStore) OrderHandler {
	return &OrderHandlerImpl{
		orders:    orders,
		customers: customers,
	}
}

func validOrderStatus(s models.OrderStatus) bool {
	switch s {
	case models.OrderNew, models.OrderInProgress, models.OrderReady,
		models.OrderDelivered, models.OrderCompleted:
		return true
	}
	return false
}

// HandleCreateOrder creates a new order for a customer
func (h *OrderHandlerImpl) HandleCreateOrder(c echo.Context) error {
	var order models.Order
	if err := c.Bind(&order); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	if order.CustomerID == 0 {
		return NewValidationError("customerId")
	}
	if order.Status != "" && !validOrderStatus(order.Status) {
		return NewValidationError("status")
	}
	if _, err := h.customers.Get(c.Request().Context(), order.CustomerID); err != nil {
		return NewNotFoundError("customer", strconv.FormatInt(order.CustomerID, 10))
	}

	created, err := h.orders.Create(c.Request().Context(), &order)
	if err != nil {
		return NewInternalError("failed to create order", err)
	}

	return c.JSON(http.StatusCreated, created)
}

// HandleGetOrder returns one order by id
func (h *OrderHandlerImpl) HandleGetOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	order, err := h.orders.Get(c.Request().Context(), id)
	if err != nil {
		return NewNotFoundError("order", c.Param("id"))
	}

	return c.JSON(http.StatusOK, order)
}

// HandleUpdateOrder updates an existing order
func (h *OrderHandlerImpl) HandleUpdateOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var order models.Order
	if err := c.Bind(&order); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	order.ID = id

	if order.Status != "" && !validOrderStatus(order.Status) {
		return NewValidationError("status")
	}

	updated, err := h.orders.Update(c.Request().Context(), &order)
	if err != nil {
		return NewNotFoundError("order", c.Param("id"))
	}

	return c.JSON(http.StatusOK, updated)
}

// HandleDeleteOrder removes an order
func (h *OrderHandlerImpl) HandleDeleteOrder(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.orders.Delete(c.Request().Context(), id); err != nil {
		return NewNotFoundError("order", c.Param("id"))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"deleted": id,
	})
}

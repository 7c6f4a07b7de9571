// handlers_customers.go - Customer record operation handlers
package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/tailorpro/backend/internal/models"
)

// CustomerHandlerImpl implements the CustomerHandler interface
type CustomerHandlerImpl struct {
	customers     CustomerStore
	orders        OrderStore
	allowDeletion bool
}

// NewCustomerHandler creates a new customer handler instance
func NewCustomerHandler(customers CustomerStore, orders OrderStore, allowDeletion bool) CustomerHandler {
	return &CustomerHandlerImpl{
		customers:     customers,
		orders:        orders,
		allowDeletion: allowDeletion,
	}
}

// parseIDParam reads a numeric path parameter
func parseIDParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil {
		return 0, NewBadRequestError("invalid "+name+" parameter", err)
	}
	return id, nil
}

type customerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (r *customerRequest) validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return NewValidationError("name")
	}
	return nil
}

// HandleListCustomers returns all customers, optionally filtered by a
// name or phone search term
func (h *CustomerHandlerImpl) HandleListCustomers(c echo.Context) error {
	search := c.QueryParam("search")

	customers, err := h.customers.List(c.Request().Context(), search)
	if err != nil {
		return NewInternalError("failed to list customers", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"customers": customers,
		"count":     len(customers),
	})
}

// HandleCreateCustomer creates a new customer record
func (h *CustomerHandlerImpl) HandleCreateCustomer(c echo.Context) error {
	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if err := req.validate(); err != nil {
		return err
	}

	customer, err := h.customers.Create(c.Request().Context(), &models.Customer{
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
	})
	if err != nil {
		return NewInternalError("failed to create customer", err)
	}

	return c.JSON(http.StatusCreated, customer)
}

// HandleGetCustomer returns one customer by id
func (h *CustomerHandlerImpl) HandleGetCustomer(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	customer, err := h.customers.Get(c.Request().Context(), id)
	if err != nil {
		return NewNotFoundError("customer", c.Param("id"))
	}

	return c.JSON(http.StatusOK, customer)
}

// HandleUpdateCustomer updates an existing customer record
func (h *CustomerHandlerImpl) HandleUpdateCustomer(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	var req customerRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}
	if err := req.validate(); err != nil {
		return err
	}

	customer, err := h.customers.Update(c.Request().Context(), &models.Customer{
		ID:      id,
		Name:    strings.TrimSpace(req.Name),
		Phone:   strings.TrimSpace(req.Phone),
		Address: strings.TrimSpace(req.Address),
	})
	if err != nil {
		return NewNotFoundError("customer", c.Param("id"))
	}

	return c.JSON(http.StatusOK, customer)
}

// HandleDeleteCustomer removes a customer and their measurement record
func (h *CustomerHandlerImpl) HandleDeleteCustomer(c echo.Context) error {
	if !h.allowDeletion {
		return &APIError{
			Status:  http.StatusForbidden,
			Code:    "DELETION_DISABLED",
			Message: "customer deletion is disabled in the shop configuration",
		}
	}

	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.customers.Delete(c.Request().Context(), id); err != nil {
		return NewNotFoundError("customer", c.Param("id"))
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"deleted": id,
	})
}

// HandleCustomerOrders returns the customer's orders, newest first
func (h *CustomerHandlerImpl) HandleCustomerOrders(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return err
	}

	if _, err := h.customers.Get(c.Request().Context(), id); err != nil {
		return NewNotFoundError("customer", c.Param("id"))
	}

	orders, err := h.orders.ListByCustomer(c.Request().Context(), id)
	if err != nil {
		return NewInternalError("failed to list orders", err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"orders": orders,
		"count":  len(orders),
	})
}

// handlers_print_test.go - Tests for the printable slip handler
package api

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/tailorpro/backend/internal/models"
)

func newPrintFixture() (PrintHandler, *mockCustomers, *mockOrders, *mockWorkers, *mockMeasurements) {
	customers := newMockCustomers()
	orders := newMockOrders()
	workers := newMockWorkers()
	measurements := newMockMeasurements()
	handler := NewPrintHandler(customers, orders, workers, measurements, newMockSettings())
	return handler, customers, orders, workers, measurements
}

func TestPrintHandler_HandlePrintSlip(t *testing.T) {
	handler, customers, _, _, measurements := newPrintFixture()
	customers.add("Ahmed Khan", "0300-1111111")
	measurements.Put(context.Background(), &models.Measurement{
		CustomerID: 1,
		Fields:     map[string]string{"left1": "9.5", "sNo": "1"},
	})

	e := echo.New()
	c, rec := newJSONContext(e, http.MethodGet, "/api/customers/1/slip", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.HandlePrintSlip(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}

	html := rec.Body.String()
	if !strings.Contains(html, "Ahmed Khan") {
		t.Error("slip should carry the customer name")
	}
	if !strings.Contains(html, "9½") {
		t.Error("slip should format values as glyphs")
	}
	if !strings.Contains(html, "@media print") {
		t.Error("slip should hide the action bar in print media")
	}
}

func TestPrintHandler_MissingMeasurementStillRenders(t *testing.T) {
	handler, customers, _, _, _ := newPrintFixture()
	customers.add("Ahmed Khan", "")

	e := echo.New()
	c, rec := newJSONContext(e, http.MethodGet, "/api/customers/1/slip", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.HandlePrintSlip(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(rec.Body.String(), "Ahmed Khan") {
		t.Error("blank slip should still carry the customer name")
	}
}

func TestPrintHandler_UnknownCustomer(t *testing.T) {
	handler, _, _, _, _ := newPrintFixture()
	e := echo.New()
	c, _ := newJSONContext(e, http.MethodGet, "/api/customers/9/slip", nil)
	c.SetParamNames("id")
	c.SetParamValues("9")

	err := handler.HandlePrintSlip(c)
	apiErr, ok := err.(*APIError)
	if !ok || apiErr.Status != http.StatusNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestPrintHandler_OrderContext(t *testing.T) {
	handler, customers, orders, workers, _ := newPrintFixture()
	customers.add("Ahmed Khan", "")
	cutter, _ := workers.Create(context.Background(), &models.Worker{Name: "Rashid", Role: models.RoleCutter})
	orders.Create(context.Background(), &models.Order{
		CustomerID:     1,
		AdvancePayment: "500",
		CutterID:       cutter.ID,
	})

	e := echo.New()
	c, rec := newJSONContext(e, http.MethodGet, "/api/customers/1/slip?orderId=1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.HandlePrintSlip(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	html := rec.Body.String()
	if !strings.Contains(html, "Rashid") {
		t.Error("slip should resolve the assigned cutter's name")
	}
	if !strings.Contains(html, "500") {
		t.Error("slip should carry the advance payment")
	}

	// An order from another customer is rejected
	orders.Create(context.Background(), &models.Order{CustomerID: 42})
	c, _ = newJSONContext(e, http.MethodGet, "/api/customers/1/slip?orderId=2", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	err := handler.HandlePrintSlip(c)
	apiErr, ok := err.(*APIError)
	if !ok || apiErr.Status != http.StatusBadRequest {
		t.Fatalf("expected bad request for mismatched order, got %v", err)
	}
}

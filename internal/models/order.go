package models

import "time"

// OrderStatus tracks an order through the shop.
type OrderStatus string

const (
	OrderNew        OrderStatus = "new"
	OrderInProgress OrderStatus = "in_progress"
	OrderReady      OrderStatus = "ready"
	OrderDelivered  OrderStatus = "delivered"
	OrderCompleted  OrderStatus = "completed"
)

// Order is one tailoring order for a customer.
type Order struct {
	ID             int64       `json:"id"`
	CustomerID     int64       `json:"customerId"`
	Status         OrderStatus `json:"status"`
	DueDate        time.Time   `json:"dueDate"`
	AdvancePayment string      `json:"advancePayment,omitempty"`
	SuitsCount     int         `json:"suitsCount,omitempty"`
	DeliveryNotes  string      `json:"deliveryNotes,omitempty"`
	CutterID       int64       `json:"cutterId,omitempty"`
	CheckerID      int64       `json:"checkerId,omitempty"`
	KarigarID      int64       `json:"karigarId,omitempty"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

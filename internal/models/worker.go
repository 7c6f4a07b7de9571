package models

import "time"

// WorkerRole is the job a worker performs on an order.
type WorkerRole string

const (
	RoleCutter  WorkerRole = "cutter"
	RoleChecker WorkerRole = "checker"
	RoleKarigar WorkerRole = "karigar"
)

// Worker is one shop worker.
type Worker struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Phone     string     `json:"phone,omitempty"`
	Role      WorkerRole `json:"role"`
	IsActive  bool       `json:"isActive"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// WorkerNames carries resolved worker names for slip rendering. Any field
// may be empty when the order has no assignment.
type WorkerNames struct {
	Cutter  string `json:"cutter,omitempty"`
	Checker string `json:"checker,omitempty"`
	Karigar string `json:"karigar,omitempty"`
}

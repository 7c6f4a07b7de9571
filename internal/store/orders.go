package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tailorpro/backend/internal/models"
)

// OrderStore persists tailoring orders.
type OrderStore struct {
	db *sql.DB
}

const orderColumns = `id, customer_id, status, due_date, COALESCE(advance_payment, ''),
	COALESCE(suits_count, 0), COALESCE(delivery_notes, ''),
	COALESCE(cutter_id, 0), COALESCE(checker_id, 0), COALESCE(karigar_id, 0),
	created_at, updated_at`

// Create inserts an order and returns it with its assigned id. An empty
// status defaults to new.
func (s *OrderStore) Create(ctx context.Context, o *models.Order) (*models.Order, error) {
	if o.Status == "" {
		o.Status = models.OrderNew
	}
	now := time.Now()
	o.CreatedAt = now
	o.UpdatedAt = now

	row := s.db.QueryRowContext(ctx,
		`INSERT INTO orders (customer_id, status, due_date, advance_payment, suits_count,
		                     delivery_notes, cutter_id, checker_id, karigar_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`,
		o.CustomerID, string(o.Status), o.DueDate, o.AdvancePayment, o.SuitsCount,
		o.DeliveryNotes, o.CutterID, o.CheckerID, o.KarigarID, o.CreatedAt, o.UpdatedAt)
	if err := row.Scan(&o.ID); err != nil {
		return nil, fmt.Errorf("inserting order: %w", err)
	}
	return o, nil
}

// Get returns one order by id.
func (s *OrderStore) Get(ctx context.Context, id int64) (*models.Order, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = ?`, id)
	o, err := scanOrder(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("order not found: %d", id)
		}
		return nil, fmt.Errorf("loading order %d: %w", id, err)
	}
	return o, nil
}

// ListByCustomer returns a customer's orders, newest first.
func (s *OrderStore) ListByCustomer(ctx context.Context, customerID int64) ([]models.Order, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE customer_id = ? ORDER BY created_at DESC`,
		customerID)
	if err != nil {
		return nil, fmt.Errorf("listing orders for customer %d: %w", customerID, err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning order: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// Update overwrites an order's editable fields.
func (s *OrderStore) Update(ctx context.Context, o *models.Order) (*models.Order, error) {
	o.UpdatedAt = time.Now()
	res, err := s.db.ExecContext(ctx,
		`UPDATE orders SET status = ?, due_date = ?, advance_payment = ?, suits_count = ?,
		        delivery_notes = ?, cutter_id = ?, checker_id = ?, karigar_id = ?, updated_at = ?
		 WHERE id = ?`,
		string(o.Status), o.DueDate, o.AdvancePayment, o.SuitsCount,
		o.DeliveryNotes, o.CutterID, o.CheckerID, o.KarigarID, o.UpdatedAt, o.ID)
	if err != nil {
		return nil, fmt.Errorf("updating order %d: %w", o.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("order not found: %d", o.ID)
	}
	return s.Get(ctx, o.ID)
}

// Delete removes an order.
func (s *OrderStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM orders WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting order %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("order not found: %d", id)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var o models.Order
	var status string
	var due sql.NullTime
	if err := row.Scan(&o.ID, &o.CustomerID, &status, &due, &o.AdvancePayment,
		&o.SuitsCount, &o.DeliveryNotes, &o.CutterID, &o.CheckerID, &o.KarigarID,
		&o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, err
	}
	o.Status = models.OrderStatus(status)
	if due.Valid {
		o.DueDate = due.Time
	}
	return &o, nil
}

package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/tailorpro/backend/internal/models"
)

// CustomerStore persists customer records.
type CustomerStore struct {
	db *sql.DB
}

// Create inserts a customer and returns it with its assigned id.
func (s *CustomerStore) Create(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	row := s.db.QueryRowContext(ctx,
		`INSERT INTO customers (name, phone, address, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?) RETURNING id`,
		c.Name, c.Phone, c.Address, c.CreatedAt, c.UpdatedAt)
	if err := row.Scan(&c.ID); err != nil {
		return nil, fmt.Errorf("inserting customer: %w", err)
	}
	return c, nil
}

// Get returns one customer by id.
func (s *CustomerStore) Get(ctx context.Context, id int64) (*models.Customer, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, phone, COALESCE(address, ''), created_at, updated_at
		 FROM customers WHERE id = ?`, id)

	var c models.Customer
	if err := row.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("customer not found: %d", id)
		}
		return nil, fmt.Errorf("loading customer %d: %w", id, err)
	}
	return &c, nil
}

// List returns customers, newest first, optionally filtered by a
// case-insensitive name/phone substring.
func (s *CustomerStore) List(ctx context.Context, search string) ([]models.Customer, error) {
	query := `SELECT id, name, phone, COALESCE(address, ''), created_at, updated_at FROM customers`
	args := []any{}
	if search != "" {
		query += ` WHERE lower(name) LIKE ? OR phone LIKE ?`
		pattern := "%" + strings.ToLower(search) + "%"
		args = append(args, pattern, pattern)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}
	defer rows.Close()

	customers := []models.Customer{}
	for rows.Next() {
		var c models.Customer
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Address, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// Update overwrites a customer's editable fields.
func (s *CustomerStore) Update(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	c.UpdatedAt = time.Now()
	res, err := s.db.ExecContext(ctx,
		`UPDATE customers SET name = ?, phone = ?, address = ?, updated_at = ? WHERE id = ?`,
		c.Name, c.Phone, c.Address, c.UpdatedAt, c.ID)
	if err != nil {
		return nil, fmt.Errorf("updating customer %d: %w", c.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("customer not found: %d", c.ID)
	}
	return s.Get(ctx, c.ID)
}

// Delete removes a customer and their measurement record.
func (s *CustomerStore) Delete(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM measurements WHERE customer_id = ?`, id); err != nil {
		return fmt.Errorf("deleting measurements for customer %d: %w", id, err)
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM customers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting customer %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("customer not found: %d", id)
	}
	return nil
}

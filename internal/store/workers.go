package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/tailorpro/backend/internal/models"
)

// WorkerStore persists shop worker records.
type WorkerStore struct {
	db *sql.DB
}

// Create inserts a worker and returns it with its assigned id.
func (s *WorkerStore) Create(ctx context.Context, w *models.Worker) (*models.Worker, error) {
	now := time.Now()
	w.CreatedAt = now
	w.UpdatedAt = now

	row := s.db.QueryRowContext(ctx,
		`INSERT INTO workers (name, phone, role, is_active, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`,
		w.Name, w.Phone, string(w.Role), w.IsActive, w.CreatedAt, w.UpdatedAt)
	if err := row.Scan(&w.ID); err != nil {
		return nil, fmt.Errorf("inserting worker: %w", err)
	}
	return w, nil
}

// Get returns one worker by id.
func (s *WorkerStore) Get(ctx context.Context, id int64) (*models.Worker, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, COALESCE(phone, ''), role, is_active, created_at, updated_at
		 FROM workers WHERE id = ?`, id)

	var w models.Worker
	var role string
	if err := row.Scan(&w.ID, &w.Name, &w.Phone, &role, &w.IsActive, &w.CreatedAt, &w.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("worker not found: %d", id)
		}
		return nil, fmt.Errorf("loading worker %d: %w", id, err)
	}
	w.Role = models.WorkerRole(role)
	return &w, nil
}

// List returns workers, optionally filtered by role, active ones first.
func (s *WorkerStore) List(ctx context.Context, role models.WorkerRole) ([]models.Worker, error) {
	query := `SELECT id, name, COALESCE(phone, ''), role, is_active, created_at, updated_at FROM workers`
	args := []any{}
	if role != "" {
		query += ` WHERE role = ?`
		args = append(args, string(role))
	}
	query += ` ORDER BY is_active DESC, name`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing workers: %w", err)
	}
	defer rows.Close()

	workers := []models.Worker{}
	for rows.Next() {
		var w models.Worker
		var r string
		if err := rows.Scan(&w.ID, &w.Name, &w.Phone, &r, &w.IsActive, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning worker: %w", err)
		}
		w.Role = models.WorkerRole(r)
		workers = append(workers, w)
	}
	return workers, rows.Err()
}

// Update overwrites a worker's editable fields.
func (s *WorkerStore) Update(ctx context.Context, w *models.Worker) (*models.Worker, error) {
	w.UpdatedAt = time.Now()
	res, err := s.db.ExecContext(ctx,
		`UPDATE workers SET name = ?, phone = ?, role = ?, is_active = ?, updated_at = ? WHERE id = ?`,
		w.Name, w.Phone, string(w.Role), w.IsActive, w.UpdatedAt, w.ID)
	if err != nil {
		return nil, fmt.Errorf("updating worker %d: %w", w.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("worker not found: %d", w.ID)
	}
	return s.Get(ctx, w.ID)
}

// Delete removes a worker.
func (s *WorkerStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM workers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting worker %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("worker not found: %d", id)
	}
	return nil
}

// NamesForOrder resolves the worker names assigned to an order. Unassigned
// or missing workers resolve to empty names rather than errors.
func (s *WorkerStore) NamesForOrder(ctx context.Context, order *models.Order) (*models.WorkerNames, error) {
	names := &models.WorkerNames{}
	if order == nil {
		return names, nil
	}

	lookup := func(id int64) string {
		if id == 0 {
			return ""
		}
		w, err := s.Get(ctx, id)
		if err != nil {
			return ""
		}
		return w.Name
	}

	names.Cutter = lookup(order.CutterID)
	names.Checker = lookup(order.CheckerID)
	names.Karigar = lookup(order.KarigarID)
	return names, nil
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tailorpro/backend/internal/models"
)

// MeasurementStore persists one measurement record per customer. The field
// and design-option maps are stored as JSON columns; values in the field
// map are canonical decimal strings, never display glyphs.
type MeasurementStore struct {
	db *sql.DB
}

// GetByCustomer returns the customer's measurement, or (nil, nil) when the
// customer has never been measured.
func (s *MeasurementStore) GetByCustomer(ctx context.Context, customerID int64) (*models.Measurement, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, customer_id, fields, design_options, created_at, updated_at
		 FROM measurements WHERE customer_id = ?`, customerID)

	var m models.Measurement
	var fields, options string
	if err := row.Scan(&m.ID, &m.CustomerID, &fields, &options, &m.CreatedAt, &m.UpdatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("loading measurement for customer %d: %w", customerID, err)
	}

	if err := json.Unmarshal([]byte(fields), &m.Fields); err != nil {
		return nil, fmt.Errorf("decoding measurement fields for customer %d: %w", customerID, err)
	}
	if err := json.Unmarshal([]byte(options), &m.DesignOptions); err != nil {
		return nil, fmt.Errorf("decoding design options for customer %d: %w", customerID, err)
	}
	return &m, nil
}

// Put upserts the customer's measurement record. Last write wins; there is
// no conflict detection between concurrent editors.
func (s *MeasurementStore) Put(ctx context.Context, m *models.Measurement) error {
	if m.Fields == nil {
		m.Fields = map[string]string{}
	}
	if m.DesignOptions == nil {
		m.DesignOptions = map[string]bool{}
	}

	fields, err := json.Marshal(m.Fields)
	if err != nil {
		return fmt.Errorf("encoding measurement fields: %w", err)
	}
	options, err := json.Marshal(m.DesignOptions)
	if err != nil {
		return fmt.Errorf("encoding design options: %w", err)
	}

	now := time.Now()
	res, err := s.db.ExecContext(ctx,
		`UPDATE measurements SET fields = ?, design_options = ?, updated_at = ? WHERE customer_id = ?`,
		string(fields), string(options), now, m.CustomerID)
	if err != nil {
		return fmt.Errorf("updating measurement for customer %d: %w", m.CustomerID, err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO measurements (customer_id, fields, design_options, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		m.CustomerID, string(fields), string(options), now, now)
	if err != nil {
		return fmt.Errorf("inserting measurement for customer %d: %w", m.CustomerID, err)
	}
	return nil
}

// Package store persists the shop's records in a single DuckDB file:
// customers, workers, orders, measurements, and the settings row that
// carries the saved slip layout.
package store

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"

	"github.com/marcboeker/go-duckdb"
)

// DB wraps the DuckDB handle and exposes the typed stores.
type DB struct {
	db     *sql.DB
	dbPath string

	Customers    *CustomerStore
	Workers      *WorkerStore
	Orders       *OrderStore
	Measurements *MeasurementStore
	Settings     *SettingsStore
}

// Open creates or opens the shop database file and ensures the schema.
func Open(dbPath string) (*DB, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	fmt.Printf("[Store] Opening database at: %s\n", dbPath)
	connector, err := duckdb.NewConnector(dbPath, func(execer driver.ExecerContext) error {
		pragmas := []string{
			"PRAGMA memory_limit='256MB'",
			"PRAGMA threads=2",
			"PRAGMA enable_progress_bar=false",
		}
		for _, pragma := range pragmas {
			if _, err := execer.ExecContext(context.Background(), pragma, nil); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create DuckDB connector: %w", err)
	}

	db := sql.OpenDB(connector)
	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	s := &DB{db: db, dbPath: dbPath}
	s.Customers = &CustomerStore{db: db}
	s.Workers = &WorkerStore{db: db}
	s.Orders = &OrderStore{db: db}
	s.Measurements = &MeasurementStore{db: db}
	s.Settings = &SettingsStore{db: db}

	fmt.Printf("[Store] Schema ready\n")
	return s, nil
}

func createSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE SEQUENCE IF NOT EXISTS customers_seq START 1`,
		`CREATE SEQUENCE IF NOT EXISTS workers_seq START 1`,
		`CREATE SEQUENCE IF NOT EXISTS orders_seq START 1`,
		`CREATE SEQUENCE IF NOT EXISTS measurements_seq START 1`,
		`CREATE TABLE IF NOT EXISTS customers (
			id         BIGINT PRIMARY KEY DEFAULT nextval('customers_seq'),
			name       VARCHAR NOT NULL,
			phone      VARCHAR NOT NULL,
			address    VARCHAR,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS workers (
			id         BIGINT PRIMARY KEY DEFAULT nextval('workers_seq'),
			name       VARCHAR NOT NULL,
			phone      VARCHAR,
			role       VARCHAR NOT NULL,
			is_active  BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id              BIGINT PRIMARY KEY DEFAULT nextval('orders_seq'),
			customer_id     BIGINT NOT NULL,
			status          VARCHAR NOT NULL,
			due_date        TIMESTAMP,
			advance_payment VARCHAR,
			suits_count     INTEGER,
			delivery_notes  VARCHAR,
			cutter_id       BIGINT,
			checker_id      BIGINT,
			karigar_id      BIGINT,
			created_at      TIMESTAMP NOT NULL,
			updated_at      TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS measurements (
			id             BIGINT PRIMARY KEY DEFAULT nextval('measurements_seq'),
			customer_id    BIGINT NOT NULL UNIQUE,
			fields         VARCHAR NOT NULL,
			design_options VARCHAR NOT NULL,
			created_at     TIMESTAMP NOT NULL,
			updated_at     TIMESTAMP NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			id          BIGINT PRIMARY KEY,
			shop_name   VARCHAR,
			address     VARCHAR,
			phone1      VARCHAR,
			phone2      VARCHAR,
			slip_layout VARCHAR,
			page_size   VARCHAR,
			updated_at  TIMESTAMP NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}
	return nil
}

// Close closes the database.
func (s *DB) Close() error {
	return s.db.Close()
}

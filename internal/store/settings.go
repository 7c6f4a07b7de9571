package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tailorpro/backend/internal/models"
)

// settingsRowID pins the settings table to a single row.
const settingsRowID = 1

// SettingsStore persists the shop's single settings record, including the
// customized slip layout as a JSON column.
type SettingsStore struct {
	db *sql.DB
}

// Get returns the settings record. A fresh database yields defaults with
// no saved layout, so callers always resolve against the factory default.
func (s *SettingsStore) Get(ctx context.Context) (*models.Settings, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(shop_name, ''), COALESCE(address, ''), COALESCE(phone1, ''),
		        COALESCE(phone2, ''), COALESCE(slip_layout, ''), COALESCE(page_size, ''), updated_at
		 FROM settings WHERE id = ?`, settingsRowID)

	settings := &models.Settings{ID: settingsRowID, PageSize: models.PageA5}
	var layoutJSON, pageSize string
	err := row.Scan(&settings.ShopName, &settings.Address, &settings.Phone1,
		&settings.Phone2, &layoutJSON, &pageSize, &settings.UpdatedAt)
	if err == sql.ErrNoRows {
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	if models.PageSize(pageSize).Valid() {
		settings.PageSize = models.PageSize(pageSize)
	}
	if layoutJSON != "" {
		if err := json.Unmarshal([]byte(layoutJSON), &settings.SlipLayout); err != nil {
			return nil, fmt.Errorf("decoding saved layout: %w", err)
		}
	}
	return settings, nil
}

// Save upserts the whole settings record.
func (s *SettingsStore) Save(ctx context.Context, settings *models.Settings) error {
	layoutJSON := ""
	if len(settings.SlipLayout) > 0 {
		data, err := json.Marshal(settings.SlipLayout)
		if err != nil {
			return fmt.Errorf("encoding layout: %w", err)
		}
		layoutJSON = string(data)
	}

	pageSize := settings.PageSize
	if !pageSize.Valid() {
		pageSize = models.PageA5
	}

	now := time.Now()
	res, err := s.db.ExecContext(ctx,
		`UPDATE settings SET shop_name = ?, address = ?, phone1 = ?, phone2 = ?,
		        slip_layout = ?, page_size = ?, updated_at = ?
		 WHERE id = ?`,
		settings.ShopName, settings.Address, settings.Phone1, settings.Phone2,
		layoutJSON, string(pageSize), now, settingsRowID)
	if err != nil {
		return fmt.Errorf("updating settings: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		settings.ID = settingsRowID
		settings.UpdatedAt = now
		return nil
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO settings (id, shop_name, address, phone1, phone2, slip_layout, page_size, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		settingsRowID, settings.ShopName, settings.Address, settings.Phone1, settings.Phone2,
		layoutJSON, string(pageSize), now)
	if err != nil {
		return fmt.Errorf("inserting settings: %w", err)
	}
	settings.ID = settingsRowID
	settings.UpdatedAt = now
	return nil
}

// SaveLayout persists just the slip layout and page size, keeping the rest
// of the record intact. This is the designer's save path.
func (s *SettingsStore) SaveLayout(ctx context.Context, elements []models.LayoutElement, pageSize models.PageSize) error {
	settings, err := s.Get(ctx)
	if err != nil {
		return err
	}
	settings.SlipLayout = elements
	settings.PageSize = pageSize
	return s.Save(ctx, settings)
}

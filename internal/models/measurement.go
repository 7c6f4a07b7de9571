package models

import "time"

// Measurement is a customer's measurement slip record. Fields maps field
// keys to canonical decimal strings (never Unicode fraction glyphs);
// DesignOptions are the independent farmaish toggles, distinct from the
// exclusive "<group>_selected" entries held in Fields.
type Measurement struct {
	ID            int64             `json:"id"`
	CustomerID    int64             `json:"customerId"`
	Fields        map[string]string `json:"fields"`
	DesignOptions map[string]bool   `json:"designOptions"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// CloneValues deep-copies the mutable value maps.
func (m *Measurement) CloneValues() (map[string]string, map[string]bool) {
	fields := make(map[string]string, len(m.Fields))
	for k, v := range m.Fields {
		fields[k] = v
	}
	opts := make(map[string]bool, len(m.DesignOptions))
	for k, v := range m.DesignOptions {
		opts[k] = v
	}
	return fields, opts
}

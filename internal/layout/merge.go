package layout

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tailorpro/backend/internal/models"
)

var (
	// ErrNotList means an imported document was not a JSON list of elements.
	ErrNotList = errors.New("layout document is not a list of elements")
	// ErrBadElement means an imported element record is missing required fields.
	ErrBadElement = errors.New("layout element is missing id, type or position")
)

// Resolve reconciles a saved customization against the factory layout.
// The result always has the factory's element set and order: fixed elements
// come from the factory unconditionally, customizable elements come wholesale
// from saved when a same-id element exists there, and elements saved layouts
// know nothing about fall back to the factory. Saved elements with ids the
// factory no longer has are dropped, so renamed fields do not leak into new
// sessions. Resolve(Resolve(x)) == Resolve(x).
func Resolve(saved []models.LayoutElement) []models.LayoutElement {
	if len(saved) == 0 {
		return Factory()
	}

	byID := make(map[string]models.LayoutElement, len(saved))
	for _, el := range saved {
		byID[el.ID] = el
	}

	merged := Factory()
	for i, factoryEl := range merged {
		if factoryEl.Fixed {
			continue
		}
		if savedEl, ok := byID[factoryEl.ID]; ok {
			// Wholesale replacement, never a field-by-field merge.
			merged[i] = savedEl.Clone()
		}
	}
	return merged
}

// rawElement is the minimal shape an imported record must have.
type rawElement struct {
	ID   string   `json:"id"`
	Kind *string  `json:"type"`
	X    *float64 `json:"x"`
	Y    *float64 `json:"y"`
}

// Import parses an exported layout document and applies the same merge
// policy as Resolve, so an import can't resurrect or move fixed elements.
// The caller's current layout must be left untouched on error.
func Import(data []byte) ([]models.LayoutElement, error) {
	var probe []json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotList, err)
	}

	elements := make([]models.LayoutElement, 0, len(probe))
	for i, raw := range probe {
		var check rawElement
		if err := json.Unmarshal(raw, &check); err != nil {
			return nil, fmt.Errorf("%w (element %d): %v", ErrBadElement, i, err)
		}
		if check.ID == "" || check.Kind == nil || check.X == nil || check.Y == nil {
			return nil, fmt.Errorf("%w (element %d)", ErrBadElement, i)
		}
		var el models.LayoutElement
		if err := json.Unmarshal(raw, &el); err != nil {
			return nil, fmt.Errorf("%w (element %d): %v", ErrBadElement, i, err)
		}
		elements = append(elements, el)
	}

	return Resolve(elements), nil
}

// Export serializes the full layout, fixed elements included, as
// pretty-printed JSON so documents stay portable and diffable.
func Export(layout []models.LayoutElement) ([]byte, error) {
	data, err := json.MarshalIndent(layout, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("exporting layout: %w", err)
	}
	return data, nil
}

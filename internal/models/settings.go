package models

import "time"

// PageSize selects the slip's physical page preset.
type PageSize string

const (
	PageA5 PageSize = "A5"
	PageA4 PageSize = "A4"
)

// Logical page dimensions in layout units. Percent geometry maps onto this
// box, so A4 and A5 share a width and differ only in height.
const (
	PageWidthUnits    = 500
	PageHeightA5Units = 700
	PageHeightA4Units = 707
)

// HeightUnits returns the logical page height for the size.
func (p PageSize) HeightUnits() int {
	if p == PageA4 {
		return PageHeightA4Units
	}
	return PageHeightA5Units
}

// Valid reports whether the value is a known page size.
func (p PageSize) Valid() bool {
	return p == PageA4 || p == PageA5
}

// Settings is the shop's single settings record.
type Settings struct {
	ID         int64           `json:"id"`
	ShopName   string          `json:"shopName"`
	Address    string          `json:"address"`
	Phone1     string          `json:"phone1"`
	Phone2     string          `json:"phone2"`
	SlipLayout []LayoutElement `json:"slipLayout,omitempty"`
	PageSize   PageSize        `json:"slipPageSize"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

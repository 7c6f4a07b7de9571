package models

// ElementKind identifies what a layout element renders as.
type ElementKind string

const (
	KindTextBlock  ElementKind = "textBlock"
	KindInput      ElementKind = "input"
	KindShape      ElementKind = "shape"
	KindDamanGroup ElementKind = "damanGroup"
	KindSilaiGroup ElementKind = "silaiGroup"
	KindBanGroup   ElementKind = "banGroup"
)

// IsChoiceGroup reports whether the kind is one of the exclusive-choice groups.
func (k ElementKind) IsChoiceGroup() bool {
	return k == KindDamanGroup || k == KindSilaiGroup || k == KindBanGroup
}

// ChoiceGroupKey returns the value-map group prefix for a choice-group kind
// ("daman", "silai", "ban"), or "" for any other kind. Selections are stored
// as a single "<group>_selected" entry in the value map.
func (k ElementKind) ChoiceGroupKey() string {
	switch k {
	case KindDamanGroup:
		return "daman"
	case KindSilaiGroup:
		return "silai"
	case KindBanGroup:
		return "ban"
	}
	return ""
}

// Anchor pins a shape input to an edge or center of its parent shape box.
// AnchorManual means the percentage offset is used directly.
type Anchor string

const (
	AnchorManual Anchor = "manual"
	AnchorLeft   Anchor = "left"
	AnchorCenter Anchor = "center"
	AnchorRight  Anchor = "right"
	AnchorTop    Anchor = "top"
	AnchorBottom Anchor = "bottom"
)

// ShapeInput is a measurement box nested inside a vector shape.
// RelX/RelY are percentages of the shape's own bounding box, not the page.
type ShapeInput struct {
	ID     string  `json:"id"` // doubles as the value-map field key
	RelX   float64 `json:"relX"`
	RelY   float64 `json:"relY"`
	PlaceX Anchor  `json:"placeX,omitempty"` // manual|left|center|right
	PlaceY Anchor  `json:"placeY,omitempty"` // manual|top|center|bottom
}

// ChoiceOption is one selectable entry of a choice group.
type ChoiceOption struct {
	Key     string `json:"key"`
	LabelUr string `json:"labelUr"`
	LabelEn string `json:"labelEn,omitempty"`
	Asset   string `json:"asset,omitempty"` // embedded SVG name, daman options only
}

// InputContent is the payload of a KindInput element.
type InputContent struct {
	Label      string `json:"label"`
	Field      string `json:"field"` // value-map key the input binds to
	HideLabel  bool   `json:"hideLabel,omitempty"`
	DottedLine bool   `json:"dottedLine,omitempty"`
}

// ShapeContent is the payload of a KindShape element.
type ShapeContent struct {
	Asset  string       `json:"asset"` // embedded SVG name
	Inputs []ShapeInput `json:"inputs"`
}

// GroupContent is the payload of a choice-group element.
type GroupContent struct {
	Options []ChoiceOption `json:"options"`
}

// LayoutElement is one absolutely positioned unit on the slip. All geometry
// is expressed as percentages of the page box, origin top-left. Width and
// height of 0 mean intrinsic ("auto") sizing.
type LayoutElement struct {
	ID     string      `json:"id"`
	Kind   ElementKind `json:"type"`
	X      float64     `json:"x"`
	Y      float64     `json:"y"`
	Width  float64     `json:"width,omitempty"`
	Height float64     `json:"height,omitempty"`

	FontSize  int    `json:"fontSize,omitempty"`  // px
	Color     string `json:"color,omitempty"`     // CSS color
	Direction string `json:"direction,omitempty"` // "ltr" or "rtl"

	// Kind-specific payloads; exactly one is set depending on Kind.
	Text  string        `json:"content,omitempty"`
	Input *InputContent `json:"input,omitempty"`
	Shape *ShapeContent `json:"shape,omitempty"`
	Group *GroupContent `json:"group,omitempty"`

	// Fixed elements are shop chrome: the designer never moves them and
	// the merge adapter always takes the factory version.
	Fixed bool `json:"isFixed,omitempty"`
}

// Clone returns a deep copy of the element.
func (e LayoutElement) Clone() LayoutElement {
	c := e
	if e.Input != nil {
		in := *e.Input
		c.Input = &in
	}
	if e.Shape != nil {
		sh := ShapeContent{Asset: e.Shape.Asset}
		sh.Inputs = make([]ShapeInput, len(e.Shape.Inputs))
		copy(sh.Inputs, e.Shape.Inputs)
		c.Shape = &sh
	}
	if e.Group != nil {
		g := GroupContent{Options: make([]ChoiceOption, len(e.Group.Options))}
		copy(g.Options, e.Group.Options)
		c.Group = &g
	}
	return c
}

// CloneLayout deep-copies a whole layout preserving order.
func CloneLayout(layout []LayoutElement) []LayoutElement {
	out := make([]LayoutElement, len(layout))
	for i, e := range layout {
		out[i] = e.Clone()
	}
	return out
}

// Package render turns a resolved layout plus a measurement value map into
// a tree of fully resolved nodes, then feeds that one tree to the three
// output backends: the designer document, the live form document, and the
// static print HTML. Keeping a single per-kind resolution pass here is what
// guarantees the three surfaces stay visually identical.
package render

import (
	"strings"
	"unicode/utf8"

	"github.com/tailorpro/backend/internal/assets"
	"github.com/tailorpro/backend/internal/fraction"
	"github.com/tailorpro/backend/internal/models"
)

// Identity fields render from the customer/context, never from the value
// map, and are locked against editing in the live form.
var identityFields = map[string]bool{
	"sNo":          true,
	"customerName": true,
	"phone":        true,
}

// MinInputWidthCh is the floor for a shape input's width in character units.
const MinInputWidthCh = 2.5

// Context carries everything outside the layout and value map that
// rendering needs. Missing order/worker context renders as blanks, so slips
// can be produced from a bare customer and measurement pair.
type Context struct {
	Customer *models.Customer
	Settings *models.Settings
	Workers  *models.WorkerNames
	Order    *models.Order
	PageSize models.PageSize
	SerialNo string
}

// ShopName returns the configured shop name or the factory placeholder.
func (c *Context) ShopName() string {
	if c.Settings != nil && c.Settings.ShopName != "" {
		return c.Settings.ShopName
	}
	return ""
}

// NodeKind is the resolved node type a backend switches on.
type NodeKind string

const (
	NodeText   NodeKind = "text"
	NodeRule   NodeKind = "rule"
	NodeInput  NodeKind = "input"
	NodeShape  NodeKind = "shape"
	NodeChoice NodeKind = "choice"
)

// ShapeBox is a resolved nested input: its anchor policy already collapsed
// into a position percentage and a translate shift per axis.
type ShapeBox struct {
	Field   string  `json:"field" msgpack:"field"`
	LeftPct float64 `json:"leftPct" msgpack:"leftPct"`
	TopPct  float64 `json:"topPct" msgpack:"topPct"`
	ShiftX  float64 `json:"shiftX" msgpack:"shiftX"` // translate % of own box: 0, -50 or -100
	ShiftY  float64 `json:"shiftY" msgpack:"shiftY"`
	WidthCh float64 `json:"widthCh" msgpack:"widthCh"`
	Value   string  `json:"value" msgpack:"value"` // display-formatted
}

// OptionNode is one resolved choice-group entry.
type OptionNode struct {
	Key      string `json:"key" msgpack:"key"`
	Label    string `json:"label" msgpack:"label"`
	AssetSVG string `json:"assetSvg,omitempty" msgpack:"assetSvg,omitempty"`
	Selected bool   `json:"selected" msgpack:"selected"`
}

// Node is one resolved layout element. Geometry stays in page percentages;
// backends apply their own percent-to-pixel mapping against the page box.
type Node struct {
	ID     string   `json:"id" msgpack:"id"`
	Kind   NodeKind `json:"kind" msgpack:"kind"`
	X      float64  `json:"x" msgpack:"x"`
	Y      float64  `json:"y" msgpack:"y"`
	Width  float64  `json:"width,omitempty" msgpack:"width,omitempty"`
	Height float64  `json:"height,omitempty" msgpack:"height,omitempty"`
	Fixed  bool     `json:"fixed,omitempty" msgpack:"fixed,omitempty"`

	FontSize  int    `json:"fontSize,omitempty" msgpack:"fontSize,omitempty"`
	Color     string `json:"color,omitempty" msgpack:"color,omitempty"`
	Direction string `json:"direction,omitempty" msgpack:"direction,omitempty"`

	Lines []string `json:"lines,omitempty" msgpack:"lines,omitempty"`

	Field      string `json:"field,omitempty" msgpack:"field,omitempty"`
	Label      string `json:"label,omitempty" msgpack:"label,omitempty"`
	HideLabel  bool   `json:"hideLabel,omitempty" msgpack:"hideLabel,omitempty"`
	DottedLine bool   `json:"dottedLine,omitempty" msgpack:"dottedLine,omitempty"`
	ReadOnly   bool   `json:"readOnly,omitempty" msgpack:"readOnly,omitempty"`
	Value      string `json:"value,omitempty" msgpack:"value,omitempty"`

	AssetSVG string     `json:"assetSvg,omitempty" msgpack:"assetSvg,omitempty"`
	Inputs   []ShapeBox `json:"inputs,omitempty" msgpack:"inputs,omitempty"`

	Group       string       `json:"group,omitempty" msgpack:"group,omitempty"`
	Options     []OptionNode `json:"options,omitempty" msgpack:"options,omitempty"`
	SelectedKey string       `json:"selectedKey,omitempty" msgpack:"selectedKey,omitempty"`
}

// Tree is the resolved render tree for one slip.
type Tree struct {
	PageSize   models.PageSize `json:"pageSize" msgpack:"pageSize"`
	PageWidth  int             `json:"pageWidth" msgpack:"pageWidth"`
	PageHeight int             `json:"pageHeight" msgpack:"pageHeight"`
	Nodes      []Node          `json:"nodes" msgpack:"nodes"`
}

// Build resolves a layout against a value map and context. Field keys
// absent from the value map resolve to empty display text, never an error:
// slips are usually partially filled.
func Build(layout []models.LayoutElement, values map[string]string, ctx *Context) *Tree {
	if ctx == nil {
		ctx = &Context{}
	}
	pageSize := ctx.PageSize
	if !pageSize.Valid() {
		pageSize = models.PageA5
	}

	tree := &Tree{
		PageSize:   pageSize,
		PageWidth:  models.PageWidthUnits,
		PageHeight: pageSize.HeightUnits(),
		Nodes:      make([]Node, 0, len(layout)),
	}

	for _, el := range layout {
		node := Node{
			ID:        el.ID,
			X:         el.X,
			Y:         el.Y,
			Width:     el.Width,
			Height:    el.Height,
			Fixed:     el.Fixed,
			FontSize:  el.FontSize,
			Color:     el.Color,
			Direction: el.Direction,
		}

		switch el.Kind {
		case models.KindTextBlock:
			if el.Height > 0 && el.Text == "" && el.FontSize == 0 {
				// Divider rule: a text block with height and no content.
				node.Kind = NodeRule
			} else {
				node.Kind = NodeText
				node.Lines = strings.Split(resolveText(el, ctx), "\n")
			}

		case models.KindInput:
			node.Kind = NodeInput
			if el.Input != nil {
				node.Field = el.Input.Field
				node.Label = el.Input.Label
				node.HideLabel = el.Input.HideLabel
				node.DottedLine = el.Input.DottedLine
			}
			node.ReadOnly = identityFields[node.Field]
			node.Value = resolveValue(node.Field, values, ctx)

		case models.KindShape:
			node.Kind = NodeShape
			if el.Shape != nil {
				if raw, err := assets.Raw(el.Shape.Asset); err == nil {
					node.AssetSVG = raw
				}
				node.Inputs = make([]ShapeBox, 0, len(el.Shape.Inputs))
				for _, in := range el.Shape.Inputs {
					val := fraction.Format(values[in.ID])
					node.Inputs = append(node.Inputs, resolveShapeBox(in, val))
				}
			}

		default:
			if !el.Kind.IsChoiceGroup() {
				continue // unknown kind, skip rather than fail
			}
			node.Kind = NodeChoice
			node.Group = el.Kind.ChoiceGroupKey()
			node.SelectedKey = values[node.Group+"_selected"]
			if el.Group != nil {
				node.Options = make([]OptionNode, 0, len(el.Group.Options))
				for _, opt := range el.Group.Options {
					o := OptionNode{
						Key:      opt.Key,
						Label:    opt.LabelUr,
						Selected: opt.Key == node.SelectedKey,
					}
					if opt.Asset != "" {
						if raw, err := assets.Raw(opt.Asset); err == nil {
							o.AssetSVG = raw
						}
					}
					node.Options = append(node.Options, o)
				}
			}
		}

		tree.Nodes = append(tree.Nodes, node)
	}

	return tree
}

// resolveText substitutes shop settings into the header chrome.
func resolveText(el models.LayoutElement, ctx *Context) string {
	if ctx.Settings != nil {
		switch el.ID {
		case "header_title":
			if ctx.Settings.ShopName != "" {
				return ctx.Settings.ShopName
			}
		case "header_subtitle":
			if ctx.Settings.Phone1 != "" {
				return "Contact No: " + ctx.Settings.Phone1
			}
		}
	}
	return el.Text
}

// resolveValue produces the display text for a bound input. Identity fields
// come from the context; everything else comes from the value map through
// the fraction formatter.
func resolveValue(field string, values map[string]string, ctx *Context) string {
	switch field {
	case "customerName":
		if ctx.Customer != nil {
			return ctx.Customer.Name
		}
		return ""
	case "phone":
		if ctx.Customer != nil {
			return ctx.Customer.Phone
		}
		return ""
	case "sNo":
		if ctx.SerialNo != "" {
			return ctx.SerialNo
		}
		return values[field]
	case "karigar":
		if v := values[field]; v != "" {
			return fraction.Format(v)
		}
		if ctx.Workers != nil {
			return ctx.Workers.Karigar
		}
		return ""
	}
	return fraction.Format(values[field])
}

// resolveShapeBox collapses the per-axis anchor policy. A manual axis uses
// the stored percentage with a centering shift; an anchored axis pins to
// the edge or center of the shape box regardless of the stored value.
func resolveShapeBox(in models.ShapeInput, value string) ShapeBox {
	box := ShapeBox{
		Field:   in.ID,
		LeftPct: in.RelX,
		TopPct:  in.RelY,
		ShiftX:  -50,
		ShiftY:  -50,
		Value:   value,
		WidthCh: inputWidthCh(value),
	}

	switch in.PlaceX {
	case models.AnchorLeft:
		box.LeftPct, box.ShiftX = 0, 0
	case models.AnchorCenter:
		box.LeftPct, box.ShiftX = 50, -50
	case models.AnchorRight:
		box.LeftPct, box.ShiftX = 100, -100
	}

	switch in.PlaceY {
	case models.AnchorTop:
		box.TopPct, box.ShiftY = 0, 0
	case models.AnchorCenter:
		box.TopPct, box.ShiftY = 50, -50
	case models.AnchorBottom:
		box.TopPct, box.ShiftY = 100, -100
	}

	return box
}

// inputWidthCh sizes a shape input so its value never clips: half a
// character of padding past the text, never narrower than the floor.
func inputWidthCh(value string) float64 {
	w := float64(utf8.RuneCountInString(value)) + 0.5
	if w < MinInputWidthCh {
		return MinInputWidthCh
	}
	return w
}

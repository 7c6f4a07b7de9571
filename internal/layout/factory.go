// Package layout owns the slip layout model: the factory default design,
// the merge policy that reconciles saved customizations against it, and
// JSON import/export of layout documents.
package layout

import (
	"fmt"

	"github.com/tailorpro/backend/internal/models"
)

// numberedField is one entry of the numbered left-hand measurement column.
type numberedField struct {
	Key    string
	Number int
}

// shapeField describes one vector-shape diagram and its nested inputs.
// Top/Left/Width/Height are percentages of the diagram area before mapping
// into the page (the right-hand 63% of the slip below the header).
type shapeField struct {
	Key    string
	Asset  string
	Top    float64
	Left   float64
	Width  float64
	Height float64
	Inputs []models.ShapeInput
}

var headerFields = []struct {
	Key   string
	Label string
}{
	{"sNo", "S.No."},
	{"customerName", "Name"},
	{"phone", "Phone"},
	{"karigar", "Karigar"},
}

var leftNumberedFields = func() []numberedField {
	fields := make([]numberedField, 11)
	for i := range fields {
		fields[i] = numberedField{Key: fmt.Sprintf("left%d", i+1), Number: i + 1}
	}
	return fields
}()

// The slip diagram: garment-part sketches numbered to match the paper slip
// the shop used before. Nested input positions are percentages of each
// shape's own box; values outside 0-100 deliberately hang outside the art.
var shapeFields = []shapeField{
	{Key: "shape14", Asset: "collar.svg", Top: 2, Left: 8, Width: 82, Height: 12, Inputs: []models.ShapeInput{
		{ID: "shape14_1", RelX: 10, RelY: 50},
		{ID: "shape14_2", RelX: 75, RelY: 50},
	}},
	{Key: "shape13", Asset: "band.svg", Top: 15, Left: 8, Width: 82, Height: 6, Inputs: []models.ShapeInput{
		{ID: "shape13_1", RelX: 10, RelY: 50},
		{ID: "shape13_2", RelX: 75, RelY: 50},
	}},
	{Key: "shape10", Asset: "placket.svg", Top: 24, Left: 20, Width: 42, Height: 16, Inputs: []models.ShapeInput{
		{ID: "shape10_1", RelX: 10, RelY: 20},
		{ID: "shape10_2", RelX: 50, RelY: 80},
	}},
	{Key: "shape12", Asset: "cuff.svg", Top: 24, Left: 78, Width: 8, Height: 18, Inputs: []models.ShapeInput{
		{ID: "shape12_1", RelX: 0, RelY: -10},
		{ID: "shape12_2", RelX: 0, RelY: 100},
	}},
	{Key: "shape11", Asset: "side-seam.svg", Top: 24, Left: 3, Width: 3, Height: 50, Inputs: []models.ShapeInput{
		{ID: "shape11_1", RelX: 200, RelY: 50},
	}},
	{Key: "shape9", Asset: "gusset.svg", Top: 44, Left: 25, Width: 10, Height: 20, Inputs: []models.ShapeInput{
		{ID: "shape9_1", RelX: 120, RelY: 50},
	}},
	{Key: "shape1", Asset: "tera.svg", Top: 44, Left: 50, Width: 18, Height: 10, Inputs: []models.ShapeInput{
		{ID: "shape1_1", RelX: 30, RelY: 70},
	}},
	{Key: "shape6", Asset: "pocket-round.svg", Top: 44, Left: 75, Width: 14, Height: 16, Inputs: []models.ShapeInput{
		{ID: "shape6_1", RelX: 10, RelY: 20},
		{ID: "shape6_2", RelX: 10, RelY: 80},
	}},
	{Key: "shape8", Asset: "pocket-square.svg", Top: 67, Left: 25, Width: 14, Height: 14, Inputs: []models.ShapeInput{
		{ID: "shape8_1", RelX: 10, RelY: 80},
	}},
	{Key: "shape7", Asset: "pocket-notched.svg", Top: 67, Left: 50, Width: 14, Height: 14, Inputs: []models.ShapeInput{
		{ID: "shape7_1", RelX: -20, RelY: 80},
		{ID: "shape7_2", RelX: 50, RelY: 80},
	}},
}

// DamanOptions are the hem styles, picked by radio button with a sketch.
var DamanOptions = []models.ChoiceOption{
	{Key: "daman_curved", LabelUr: "گول دامن", LabelEn: "Gol Daman", Asset: "daman-curved.svg"},
	{Key: "daman_straight", LabelUr: "سیدھا دامن", LabelEn: "Seedha Daman", Asset: "daman-straight.svg"},
}

// SilaiOptions are the stitch styles, picked from a dropdown.
var SilaiOptions = []models.ChoiceOption{
	{Key: "silai_single", LabelUr: "سنگل سلائی", LabelEn: "Single Silai"},
	{Key: "silai_double_dd", LabelUr: "ڈبل سلائی D.D", LabelEn: "Double Silai D.D"},
	{Key: "silai_triple", LabelUr: "ٹرپل سلائی", LabelEn: "Triple Silai"},
	{Key: "silai_double", LabelUr: "ڈبل سلائی", LabelEn: "Double Silai"},
}

// BanOptions are the collar-band styles, picked from a dropdown.
var BanOptions = []models.ChoiceOption{
	{Key: "ban_half_gol", LabelUr: "ہاف بین گول", LabelEn: "Half Ban Gol"},
	{Key: "ban_half_seedha", LabelUr: "ہاف بین سیدھا", LabelEn: "Half Ban Seedha"},
	{Key: "ban_full_gol", LabelUr: "فل بین گول", LabelEn: "Full Ban Gol"},
	{Key: "ban_full_seedha", LabelUr: "فل بین سیدھا", LabelEn: "Full Ban Seedha"},
}

// DesignOptions are the farmaish checkboxes: independent boolean toggles,
// not part of any exclusive choice group.
var DesignOptions = []models.ChoiceOption{
	{Key: "singleSilai", LabelUr: "سنگل سلائی", LabelEn: "Single Silai"},
	{Key: "singleChamakTaar", LabelUr: "سنگل چمک تار سلائی", LabelEn: "Single Chamak Taar Silai"},
	{Key: "doubleChamakTaar", LabelUr: "ڈبل چمک تار سلائی", LabelEn: "Double Chamak Taar Silai"},
	{Key: "doubleTak", LabelUr: "ڈبل ٹک سلائی", LabelEn: "Double Tak Silai"},
	{Key: "chokaSilai", LabelUr: "چوکا سلائی", LabelEn: "Choka Silai"},
	{Key: "sadaDouble", LabelUr: "سادہ ڈبل سلائی", LabelEn: "Sada Double Silai"},
	{Key: "labelHo", LabelUr: "لیبل ہو", LabelEn: "Label Ho"},
	{Key: "shalwarJeb", LabelUr: "شلوار جیب", LabelEn: "Shalwar Jeb"},
	{Key: "fullDownTera", LabelUr: "فل ڈاؤن تیرا", LabelEn: "Full Down Tera"},
	{Key: "normalTera", LabelUr: "نارمل تیرا", LabelEn: "Normal Tera"},
	{Key: "hingerTera", LabelUr: "ہینگر تیرا", LabelEn: "Hinger Tera"},
	{Key: "sadaButton", LabelUr: "سادہ بٹن", LabelEn: "Sada Button"},
	{Key: "fancyButton", LabelUr: "فینسی بٹن", LabelEn: "Fancy Button"},
	{Key: "stadKaajButton", LabelUr: "سٹڈ کاج بٹن", LabelEn: "Stad Kaaj Button"},
}

// factoryLayout is built once; Factory returns deep copies of it.
var factoryLayout = buildFactoryLayout()

func buildFactoryLayout() []models.LayoutElement {
	elements := []models.LayoutElement{
		// Header chrome. Shop name and contact line are substituted from
		// settings at render time.
		{ID: "header_title", Kind: models.KindTextBlock, X: 0, Y: 2, Width: 100, Text: "Tailor Pro", FontSize: 36, Color: "#0f172a", Fixed: true},
		{ID: "header_subtitle", Kind: models.KindTextBlock, X: 0, Y: 8, Width: 100, Text: "Contact No:", FontSize: 12, Color: "#64748b", Fixed: true},
		{ID: "header_divider", Kind: models.KindTextBlock, X: 2, Y: 12, Width: 96, Height: 0.2, Color: "#cbd5e1", Fixed: true},

		{ID: "header_label_sno", Kind: models.KindTextBlock, X: 2, Y: 14, Width: 15, Text: "S.No.", FontSize: 12, Color: "#475569", Fixed: true},
		{ID: "header_label_name", Kind: models.KindTextBlock, X: 18, Y: 14, Width: 35, Text: "Name", FontSize: 12, Color: "#475569", Fixed: true},
		{ID: "header_label_phone", Kind: models.KindTextBlock, X: 54, Y: 14, Width: 25, Text: "Phone", FontSize: 12, Color: "#475569", Fixed: true},
		{ID: "header_label_karigar", Kind: models.KindTextBlock, X: 80, Y: 14, Width: 18, Text: "Karigar", FontSize: 12, Color: "#475569", Fixed: true},

		{ID: "header_val_sno", Kind: models.KindInput, X: 2, Y: 15, Width: 15, Height: 4.5, Input: &models.InputContent{Field: "sNo", HideLabel: true}, Fixed: true},
		{ID: "header_val_name", Kind: models.KindInput, X: 18, Y: 15, Width: 35, Height: 4.5, Input: &models.InputContent{Field: "customerName", HideLabel: true}, Fixed: true},
		{ID: "header_val_phone", Kind: models.KindInput, X: 54, Y: 15, Width: 25, Height: 4.5, Input: &models.InputContent{Field: "phone", HideLabel: true}, Fixed: true},
		{ID: "header_val_karigar", Kind: models.KindInput, X: 80, Y: 15, Width: 18, Height: 4.5, Input: &models.InputContent{Field: "karigar", HideLabel: true}, Fixed: true},
	}

	// Numbered left column, one row per measurement slot.
	for i, f := range leftNumberedFields {
		elements = append(elements, models.LayoutElement{
			ID:     fmt.Sprintf("left_row_%d", i),
			Kind:   models.KindInput,
			X:      2,
			Y:      19.5 + float64(i)*4.5,
			Width:  30,
			Height: 4.5,
			Input:  &models.InputContent{Label: fmt.Sprintf("%d", f.Number), Field: f.Key, HideLabel: true},
			Fixed:  true,
		})
	}

	elements = append(elements, models.LayoutElement{
		ID: "bottom_left_note", Kind: models.KindTextBlock,
		X: 2, Y: 72, Width: 30, Height: 24,
		FontSize: 12, Color: "#475569", Direction: "rtl", Fixed: true,
	})

	// Shape diagrams map into the right 63% of the page below the header.
	for _, shape := range shapeFields {
		inputs := make([]models.ShapeInput, len(shape.Inputs))
		copy(inputs, shape.Inputs)
		elements = append(elements, models.LayoutElement{
			ID:     "svg_" + shape.Key,
			Kind:   models.KindShape,
			X:      35 + shape.Left*0.63,
			Y:      24 + shape.Top*0.75,
			Width:  shape.Width * 0.63,
			Height: shape.Height * 0.75,
			Shape:  &models.ShapeContent{Asset: shape.Asset, Inputs: inputs},
		})
	}

	elements = append(elements,
		models.LayoutElement{ID: "damanGroup", Kind: models.KindDamanGroup, X: 38, Y: 82, Width: 20, Height: 10, Group: &models.GroupContent{Options: DamanOptions}},
		models.LayoutElement{ID: "silaiGroup", Kind: models.KindSilaiGroup, X: 65, Y: 92, Width: 30, Height: 12, Group: &models.GroupContent{Options: SilaiOptions}},
		models.LayoutElement{ID: "banGroup", Kind: models.KindBanGroup, X: 65, Y: 82, Width: 30, Height: 8, Group: &models.GroupContent{Options: BanOptions}},
	)

	return elements
}

// Factory returns a deep copy of the default slip layout.
func Factory() []models.LayoutElement {
	return models.CloneLayout(factoryLayout)
}

// AllFieldKeys returns every value-map key the factory layout can bind to,
// in layout order. Used to seed an empty measurement record.
func AllFieldKeys() []string {
	keys := make([]string, 0, 32)
	for _, f := range headerFields {
		keys = append(keys, f.Key)
	}
	for _, f := range leftNumberedFields {
		keys = append(keys, f.Key)
	}
	for _, shape := range shapeFields {
		for _, in := range shape.Inputs {
			keys = append(keys, in.ID)
		}
	}
	keys = append(keys, "silai_selected", "daman_selected", "ban_selected")
	return keys
}

package layout

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tailorpro/backend/internal/models"
)

func findElement(layout []models.LayoutElement, id string) *models.LayoutElement {
	for i := range layout {
		if layout[i].ID == id {
			return &layout[i]
		}
	}
	return nil
}

func TestFactory_IsDeepCopy(t *testing.T) {
	a := Factory()
	b := Factory()

	a[0].X = 55
	el := findElement(a, "svg_shape14")
	require.NotNil(t, el)
	el.Shape.Inputs[0].RelX = 99

	assert.NotEqual(t, a[0].X, b[0].X)
	assert.Equal(t, float64(10), findElement(b, "svg_shape14").Shape.Inputs[0].RelX)
}

func TestResolve_NilAndEmptyFallBackToFactory(t *testing.T) {
	assert.Equal(t, Factory(), Resolve(nil))
	assert.Equal(t, Factory(), Resolve([]models.LayoutElement{}))
}

func TestResolve_SavedElementWinsForCustomizable(t *testing.T) {
	saved := []models.LayoutElement{
		{ID: "damanGroup", Kind: models.KindDamanGroup, X: 10, Y: 20, Width: 25, Height: 12},
	}

	merged := Resolve(saved)
	el := findElement(merged, "damanGroup")
	require.NotNil(t, el)
	assert.Equal(t, float64(10), el.X)
	assert.Equal(t, float64(20), el.Y)
	assert.Equal(t, float64(25), el.Width)
}

func TestResolve_FixedElementsAlwaysFactory(t *testing.T) {
	factory := Factory()
	for _, fixedEl := range factory {
		if !fixedEl.Fixed {
			continue
		}
		saved := []models.LayoutElement{{
			ID: fixedEl.ID, Kind: fixedEl.Kind, X: 99, Y: 99, Width: 1, Height: 1,
		}}
		merged := Resolve(saved)
		got := findElement(merged, fixedEl.ID)
		require.NotNil(t, got, "fixed element %s missing after merge", fixedEl.ID)
		assert.Equal(t, fixedEl, *got, "fixed element %s must come from the factory", fixedEl.ID)
	}
}

func TestResolve_StaleSavedElementsDropped(t *testing.T) {
	saved := []models.LayoutElement{
		{ID: "renamed_field_from_v1", Kind: models.KindInput, X: 5, Y: 5},
	}

	merged := Resolve(saved)
	assert.Nil(t, findElement(merged, "renamed_field_from_v1"))
	assert.Len(t, merged, len(Factory()))
}

func TestResolve_Idempotent(t *testing.T) {
	saved := []models.LayoutElement{
		{ID: "silaiGroup", Kind: models.KindSilaiGroup, X: 40, Y: 88, Width: 28, Height: 10},
		{ID: "svg_shape7", Kind: models.KindShape, X: 60, Y: 70, Width: 10, Height: 10,
			Shape: &models.ShapeContent{Asset: "pocket-notched.svg", Inputs: []models.ShapeInput{{ID: "shape7_1", RelX: 5, RelY: 5}}}},
	}

	once := Resolve(saved)
	twice := Resolve(once)
	assert.Equal(t, once, twice)
}

func TestResolve_PreservesFactoryOrder(t *testing.T) {
	saved := []models.LayoutElement{
		{ID: "banGroup", Kind: models.KindBanGroup, X: 1, Y: 1},
		{ID: "damanGroup", Kind: models.KindDamanGroup, X: 2, Y: 2},
	}

	merged := Resolve(saved)
	factory := Factory()
	for i := range factory {
		assert.Equal(t, factory[i].ID, merged[i].ID)
	}
}

func TestImport_RoundTripsExport(t *testing.T) {
	custom := Resolve([]models.LayoutElement{
		{ID: "damanGroup", Kind: models.KindDamanGroup, X: 12, Y: 34, Width: 20, Height: 10,
			Group: &models.GroupContent{Options: DamanOptions}},
	})

	data, err := Export(custom)
	require.NoError(t, err)

	imported, err := Import(data)
	require.NoError(t, err)
	assert.Equal(t, custom, imported)
}

func TestImport_RejectsNonList(t *testing.T) {
	_, err := Import([]byte(`{"not":"a list"}`))
	assert.ErrorIs(t, err, ErrNotList)
}

func TestImport_RejectsMalformedElements(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"missing id", `[{"type":"input","x":1,"y":2}]`},
		{"missing type", `[{"id":"a","x":1,"y":2}]`},
		{"missing position", `[{"id":"a","type":"input"}]`},
		{"mistyped position", `[{"id":"a","type":"input","x":"left","y":2}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Import([]byte(tt.payload))
			assert.ErrorIs(t, err, ErrBadElement)
		})
	}
}

func TestImport_CannotResurrectFixedElements(t *testing.T) {
	doc := []models.LayoutElement{
		{ID: "header_title", Kind: models.KindTextBlock, X: 50, Y: 50, Text: "hijacked"},
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	imported, err := Import(data)
	require.NoError(t, err)

	title := findElement(imported, "header_title")
	require.NotNil(t, title)
	assert.Equal(t, *findElement(Factory(), "header_title"), *title)
}

func TestExport_IncludesFixedElements(t *testing.T) {
	data, err := Export(Factory())
	require.NoError(t, err)

	var roundTrip []models.LayoutElement
	require.NoError(t, json.Unmarshal(data, &roundTrip))
	assert.Len(t, roundTrip, len(Factory()))

	fixedCount := 0
	for _, el := range roundTrip {
		if el.Fixed {
			fixedCount++
		}
	}
	assert.Greater(t, fixedCount, 0)
}

func TestAllFieldKeys(t *testing.T) {
	keys := AllFieldKeys()

	seen := make(map[string]bool)
	for _, k := range keys {
		assert.False(t, seen[k], "duplicate field key %s", k)
		seen[k] = true
	}

	for _, want := range []string{"sNo", "customerName", "phone", "karigar", "left1", "left11", "shape14_1", "shape7_2", "daman_selected", "silai_selected", "ban_selected"} {
		assert.True(t, seen[want], "missing field key %s", want)
	}
}

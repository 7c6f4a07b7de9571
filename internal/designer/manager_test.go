package designer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tailorpro/backend/internal/layout"
	"github.com/tailorpro/backend/internal/models"
	"github.com/tailorpro/backend/internal/render"
)

type fakeSettings struct {
	settings    models.Settings
	savedLayout []models.LayoutElement
	savedSize   models.PageSize
	saves       int
}

func (f *fakeSettings) Get(_ context.Context) (*models.Settings, error) {
	s := f.settings
	return &s, nil
}

func (f *fakeSettings) SaveLayout(_ context.Context, elements []models.LayoutElement, pageSize models.PageSize) error {
	f.savedLayout = elements
	f.savedSize = pageSize
	f.saves++
	return nil
}

func openSession(t *testing.T) (*Manager, *fakeSettings, string) {
	t.Helper()
	settings := &fakeSettings{settings: models.Settings{PageSize: models.PageA5}}
	m := NewManager(settings)
	info, err := m.Create(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StateIdle, info.State)
	return m, settings, info.ID
}

func TestSelectionStateMachine(t *testing.T) {
	m, _, id := openSession(t)

	// Fixed chrome rejects selection.
	err := m.Select(id, "header_title")
	assert.ErrorIs(t, err, ErrFixed)

	require.NoError(t, m.Select(id, "svg_shape14"))
	info, err := m.Get(id)
	require.NoError(t, err)
	assert.Equal(t, StateSelected, info.State)
	assert.Equal(t, "svg_shape14", info.Selected)

	// Gestures only start from selected.
	require.NoError(t, m.BeginDrag(id))
	assert.ErrorIs(t, m.BeginResize(id), ErrBadTransition)
	assert.ErrorIs(t, m.EndResize(id, 0, 0, 10, 10), ErrBadTransition)

	require.NoError(t, m.EndDrag(id, 100, 140))
	info, _ = m.Get(id)
	assert.Equal(t, StateSelected, info.State)

	require.NoError(t, m.Deselect(id))
	info, _ = m.Get(id)
	assert.Equal(t, StateIdle, info.State)
	assert.Empty(t, info.Selected)

	assert.ErrorIs(t, m.BeginDrag(id), ErrNoSelection)
}

func TestEndDrag_PixelToPercent(t *testing.T) {
	m, _, id := openSession(t)
	require.NoError(t, m.Select(id, "svg_shape14"))
	require.NoError(t, m.BeginDrag(id))

	// A5 page box is 500x700 logical px.
	require.NoError(t, m.EndDrag(id, 100, 140))

	doc, err := m.Document(id)
	require.NoError(t, err)
	el := findDocNode(doc, "svg_shape14")
	require.NotNil(t, el)
	assert.Equal(t, 20.0, el.X)
	assert.Equal(t, 20.0, el.Y)
}

func TestEndDrag_ClampsToPageBounds(t *testing.T) {
	m, _, id := openSession(t)
	require.NoError(t, m.Select(id, "svg_shape14"))
	require.NoError(t, m.BeginDrag(id))

	// Far past the page edge: origin clamps so the box stays inside.
	require.NoError(t, m.EndDrag(id, 5000, -300))

	doc, err := m.Document(id)
	require.NoError(t, err)
	el := findDocNode(doc, "svg_shape14")
	require.NotNil(t, el)
	assert.Equal(t, 100-el.Width, el.X)
	assert.Equal(t, 0.0, el.Y)
}

func TestEndResize_RecomputesBox(t *testing.T) {
	m, _, id := openSession(t)
	require.NoError(t, m.Select(id, "svg_shape14"))
	require.NoError(t, m.BeginResize(id))
	require.NoError(t, m.EndResize(id, 50, 70, 250, 140))

	doc, err := m.Document(id)
	require.NoError(t, err)
	el := findDocNode(doc, "svg_shape14")
	require.NotNil(t, el)
	assert.Equal(t, 10.0, el.X)
	assert.Equal(t, 10.0, el.Y)
	assert.Equal(t, 50.0, el.Width)
	assert.Equal(t, 20.0, el.Height)
}

func TestUpdateElement(t *testing.T) {
	m, _, id := openSession(t)

	x, size, color := 12.5, 18, "#ff0000"
	hide := false
	require.NoError(t, m.UpdateElement(id, "left_row_0", ElementPatch{
		X: &x, FontSize: &size, Color: &color, HideLabel: &hide,
	}))

	doc, err := m.Document(id)
	require.NoError(t, err)
	el := findDocNode(doc, "left_row_0")
	require.NotNil(t, el)
	assert.Equal(t, 12.5, el.X)
	assert.Equal(t, 18, el.FontSize)
	assert.Equal(t, "#ff0000", el.Color)
	assert.False(t, el.HideLabel)

	// Fixed elements reject inspector edits too.
	err = m.UpdateElement(id, "header_title", ElementPatch{X: &x})
	assert.ErrorIs(t, err, ErrFixed)

	assert.Error(t, m.UpdateElement(id, "no_such_element", ElementPatch{X: &x}))
}

func TestShapeInputLifecycle(t *testing.T) {
	m, _, id := openSession(t)

	// shape14 ships with two inputs, so the generated id continues the
	// numbering.
	added, err := m.AddShapeInput(id, "svg_shape14")
	require.NoError(t, err)
	assert.Equal(t, "shape14_3", added.ID)
	assert.Equal(t, 50.0, added.RelX)

	relX := 25.0
	anchor := models.AnchorRight
	require.NoError(t, m.UpdateShapeInput(id, "svg_shape14", "shape14_3", ShapeInputPatch{
		RelX: &relX, PlaceX: &anchor,
	}))

	require.NoError(t, m.RemoveShapeInput(id, "svg_shape14", "shape14_3"))
	assert.Error(t, m.RemoveShapeInput(id, "svg_shape14", "shape14_3"))
}

func TestAddShapeInput_SkipsTakenIDs(t *testing.T) {
	m, _, id := openSession(t)

	// Remove the first input so len+1 would collide with the surviving
	// shape14_2.
	require.NoError(t, m.RemoveShapeInput(id, "svg_shape14", "shape14_1"))

	added, err := m.AddShapeInput(id, "svg_shape14")
	require.NoError(t, err)
	assert.Equal(t, "shape14_3", added.ID)
}

func TestResetToDefault(t *testing.T) {
	m, _, id := openSession(t)

	require.NoError(t, m.Select(id, "svg_shape14"))
	require.NoError(t, m.BeginDrag(id))
	require.NoError(t, m.EndDrag(id, 100, 140))

	require.NoError(t, m.ResetToDefault(id))

	info, err := m.Get(id)
	require.NoError(t, err)
	assert.Equal(t, StateIdle, info.State)

	factory := layout.Factory()
	doc, err := m.Document(id)
	require.NoError(t, err)
	el := findDocNode(doc, "svg_shape14")
	orig := findFactory(factory, "svg_shape14")
	require.NotNil(t, el)
	require.NotNil(t, orig)
	assert.Equal(t, orig.X, el.X)
	assert.Equal(t, orig.Y, el.Y)
}

func TestImportExportRoundTrip(t *testing.T) {
	m, _, id := openSession(t)

	require.NoError(t, m.Select(id, "svg_shape14"))
	require.NoError(t, m.BeginDrag(id))
	require.NoError(t, m.EndDrag(id, 100, 140))

	exported, err := m.Export(id)
	require.NoError(t, err)

	m2, _, id2 := openSession(t)
	require.NoError(t, m2.Import(id2, exported))

	doc, err := m2.Document(id2)
	require.NoError(t, err)
	el := findDocNode(doc, "svg_shape14")
	require.NotNil(t, el)
	assert.Equal(t, 20.0, el.X)

	assert.ErrorIs(t, m2.Import(id2, []byte(`{"not":"a list"}`)), layout.ErrNotList)
}

func TestSavePersistsThroughSettings(t *testing.T) {
	m, settings, id := openSession(t)

	require.NoError(t, m.Select(id, "svg_shape14"))
	require.NoError(t, m.BeginDrag(id))
	require.NoError(t, m.EndDrag(id, 100, 140))

	info, _ := m.Get(id)
	assert.True(t, info.Dirty)

	require.NoError(t, m.Save(context.Background(), id))
	assert.Equal(t, 1, settings.saves)
	assert.Equal(t, models.PageA5, settings.savedSize)
	require.NotEmpty(t, settings.savedLayout)

	info, _ = m.Get(id)
	assert.False(t, info.Dirty)
}

func TestSetPageSize(t *testing.T) {
	m, settings, id := openSession(t)

	require.NoError(t, m.SetPageSize(id, models.PageA4))
	assert.Error(t, m.SetPageSize(id, "letter"))

	require.NoError(t, m.Save(context.Background(), id))
	assert.Equal(t, models.PageA4, settings.savedSize)
}

func TestClose(t *testing.T) {
	m, _, id := openSession(t)
	require.NoError(t, m.Close(id))
	assert.Error(t, m.Close(id))
	_, err := m.Get(id)
	assert.Error(t, err)
}

func TestDocument_DesignerMode(t *testing.T) {
	m, _, id := openSession(t)
	doc, err := m.Document(id)
	require.NoError(t, err)
	assert.Equal(t, render.ModeDesigner, doc.Mode)

	for _, node := range doc.Nodes {
		assert.Equal(t, !node.Fixed, node.Selectable, "node %s", node.ID)
	}
}

func findDocNode(doc *render.Document, id string) *render.DocumentNode {
	for i := range doc.Nodes {
		if doc.Nodes[i].ID == id {
			return &doc.Nodes[i]
		}
	}
	return nil
}

func findFactory(elements []models.LayoutElement, id string) *models.LayoutElement {
	for i := range elements {
		if elements[i].ID == id {
			return &elements[i]
		}
	}
	return nil
}

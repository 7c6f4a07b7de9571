// Package designer manages layout-editing sessions: a working copy of the
// slip layout, a single-element selection state machine, and the geometry
// math that turns canvas pixel gestures back into page percentages.
package designer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tailorpro/backend/internal/layout"
	"github.com/tailorpro/backend/internal/models"
	"github.com/tailorpro/backend/internal/render"
)

// MaxSessions limits concurrent designer sessions
const MaxSessions = 8

// SessionMaxAge is how long an untouched session lives before cleanup
const SessionMaxAge = 30 * time.Minute

var (
	// ErrFixed is returned for any attempt to select or mutate a fixed
	// chrome element.
	ErrFixed = errors.New("element is fixed")
	// ErrNoSelection is returned when a gesture needs a selected element.
	ErrNoSelection = errors.New("no element selected")
	// ErrBadTransition is returned for a gesture out of order, e.g. an
	// EndDrag without a BeginDrag.
	ErrBadTransition = errors.New("invalid editor state transition")
)

// State is the editor's selection state.
type State string

const (
	StateIdle     State = "idle"
	StateSelected State = "selected"
	StateDragging State = "dragging"
	StateResizing State = "resizing"
)

// SettingsStore persists the finished layout.
type SettingsStore interface {
	Get(ctx context.Context) (*models.Settings, error)
	SaveLayout(ctx context.Context, elements []models.LayoutElement, pageSize models.PageSize) error
}

// Session is one layout-editing session.
type Session struct {
	ID string

	elements []models.LayoutElement
	pageSize models.PageSize
	state    State
	selected string
	dirty    bool

	lastAccessed time.Time
}

// Info is the session summary returned to API clients.
type Info struct {
	ID       string `json:"id"`
	State    State  `json:"state"`
	Selected string `json:"selected,omitempty"`
	PageSize string `json:"pageSize"`
	Dirty    bool   `json:"dirty"`
}

// ElementPatch carries the property-inspector edits. Nil fields are left
// untouched.
type ElementPatch struct {
	X         *float64 `json:"x,omitempty"`
	Y         *float64 `json:"y,omitempty"`
	Width     *float64 `json:"width,omitempty"`
	Height    *float64 `json:"height,omitempty"`
	FontSize  *int     `json:"fontSize,omitempty"`
	Color     *string  `json:"color,omitempty"`
	Direction *string  `json:"direction,omitempty"`
	Text      *string  `json:"content,omitempty"`
	HideLabel *bool    `json:"hideLabel,omitempty"`
}

// ShapeInputPatch carries edits to one nested shape input.
type ShapeInputPatch struct {
	ID     *string        `json:"id,omitempty"`
	RelX   *float64       `json:"relX,omitempty"`
	RelY   *float64       `json:"relY,omitempty"`
	PlaceX *models.Anchor `json:"placeX,omitempty"`
	PlaceY *models.Anchor `json:"placeY,omitempty"`
}

// Manager owns the active designer sessions.
type Manager struct {
	sessions map[string]*Session
	mu       sync.RWMutex
	settings SettingsStore
}

// NewManager creates a designer session manager.
func NewManager(settings SettingsStore) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		settings: settings,
	}
}

// Create opens a session on the saved layout resolved against the factory
// default.
func (m *Manager) Create(ctx context.Context) (*Info, error) {
	m.cleanupOldSessionsIfNeeded()

	settings, err := m.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	pageSize := settings.PageSize
	if !pageSize.Valid() {
		pageSize = models.PageA5
	}

	session := &Session{
		ID:           uuid.New().String(),
		elements:     layout.Resolve(settings.SlipLayout),
		pageSize:     pageSize,
		state:        StateIdle,
		lastAccessed: time.Now(),
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	fmt.Printf("[Designer %s] Session opened (%d elements, %s)\n", session.ID[:8], len(session.elements), pageSize)
	return sessionInfo(session), nil
}

// Get returns the session summary.
func (m *Manager) Get(sessionID string) (*Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, err := m.sessionLocked(sessionID)
	if err != nil {
		return nil, err
	}
	return sessionInfo(session), nil
}

// Document builds the designer document for the working layout: every
// element resolved with empty values, non-fixed elements selectable.
func (m *Manager) Document(sessionID string) (*render.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, err := m.sessionLocked(sessionID)
	if err != nil {
		return nil, err
	}

	tree := render.Build(session.elements, nil, &render.Context{PageSize: session.pageSize})
	return render.BuildDocument(tree, render.ModeDesigner), nil
}

// Select puts the session into the selected state on a non-fixed element.
func (m *Manager) Select(sessionID, elementID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, err := m.sessionLocked(sessionID)
	if err != nil {
		return err
	}

	el := findElement(session.elements, elementID)
	if el == nil {
		return fmt.Errorf("element not found: %s", elementID)
	}
	if el.Fixed {
		return fmt.Errorf("selecting %s: %w", elementID, ErrFixed)
	}

	session.state = StateSelected
	session.selected = elementID
	return nil
}

// Deselect clears the selection, as a background click does.
func (m *Manager) Deselect(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, err := m.sessionLocked(sessionID)
	if err != nil {
		return err
	}
	session.state = StateIdle
	session.selected = ""
	return nil
}

// BeginDrag transitions selected -> dragging.
func (m *Manager) BeginDrag(sessionID string) error {
	return m.beginGesture(sessionID, StateDragging)
}

// EndDrag recomputes the selected element's position from the released
// pixel offset, clamped to the page bounds, and reverts to selected.
func (m *Manager) EndDrag(sessionID string, pxX, pxY float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, err := m.sessionLocked(sessionID)
	if err != nil {
		return err
	}
	if session.state != StateDragging {
		return fmt.Errorf("end drag in state %s: %w", session.state, ErrBadTransition)
	}

	el := findElement(session.elements, session.selected)
	if el == nil {
		session.state = StateIdle
		return fmt.Errorf("selected element vanished: %s", session.selected)
	}

	pageW := float64(models.PageWidthUnits)
	pageH := float64(session.pageSize.HeightUnits())
	el.X = clampPct(pxX/pageW*100, el.Width)
	el.Y = clampPct(pxY/pageH*100, el.Height)

	session.state = StateSelected
	session.dirty = true
	return nil
}

// BeginResize transitions selected -> resizing.
func (m *Manager) BeginResize(sessionID string) error {
	return m.beginGesture(sessionID, StateResizing)
}

// EndResize recomputes the selected element's whole box from the released
// pixel rectangle and reverts to selected.
func (m *Manager) EndResize(sessionID string, pxX, pxY, pxW, pxH float64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, err := m.sessionLocked(sessionID)
	if err != nil {
		return err
	}
	if session.state != StateResizing {
		return fmt.Errorf("end resize in state %s: %w", session.state, ErrBadTransition)
	}

	el := findElement(session.elements, session.selected)
	if el == nil {
		session.state = StateIdle
		return fmt.Errorf("selected element vanished: %s", session.selected)
	}

	pageW := float64(models.PageWidthUnits)
	pageH := float64(session.pageSize.HeightUnits())
	el.Width = clamp(pxW/pageW*100, 0, 100)
	el.Height = clamp(pxH/pageH*100, 0, 100)
	el.X = clampPct(pxX/pageW*100, el.Width)
	el.Y = clampPct(pxY/pageH*100, el.Height)

	session.state = StateSelected
	session.dirty = true
	return nil
}

func (m *Manager) beginGesture(sessionID string, next State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, err := m.sessionLocked(sessionID)
	if err != nil {
		return err
	}
	if session.state != StateSelected {
		if session.selected == "" {
			return ErrNoSelection
		}
		return fmt.Errorf("begin %s in state %s: %w", next, session.state, ErrBadTransition)
	}
	session.state = next
	return nil
}

// UpdateElement applies a property-inspector patch to a non-fixed element.
func (m *Manager) UpdateElement(sessionID, elementID string, patch ElementPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, err := m.sessionLocked(sessionID)
	if err != nil {
		return err
	}

	el := findElement(session.elements, elementID)
	if el == nil {
		return fmt.Errorf("element not found: %s", elementID)
	}
	if el.Fixed {
		return fmt.Errorf("updating %s: %w", elementID, ErrFixed)
	}

	if patch.X != nil {
		el.X = clampPct(*patch.X, el.Width)
	}
	if patch.Y != nil {
		el.Y = clampPct(*patch.Y, el.Height)
	}
	if patch.Width != nil {
		el.Width = clamp(*patch.Width, 0, 100)
	}
	if patch.Height != nil {
		el.Height = clamp(*patch.Height, 0, 100)
	}
	if patch.FontSize != nil {
		el.FontSize = *patch.FontSize
	}
	if patch.Color != nil {
		el.Color = *patch.Color
	}
	if patch.Direction != nil {
		el.Direction = *patch.Direction
	}
	if patch.Text != nil && el.Kind == models.KindTextBlock {
		el.Text = *patch.Text
	}
	if patch.HideLabel != nil && el.Input != nil {
		el.Input.HideLabel = *patch.HideLabel
	}

	session.dirty = true
	return nil
}

// AddShapeInput appends a nested input to a shape with an auto-generated
// id "<shapeId>_<n+1>", centered in the shape box.
func (m *Manager) AddShapeInput(sessionID, shapeID string) (*models.ShapeInput, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, err := m.sessionLocked(sessionID)
	if err != nil {
		return nil, err
	}

	el := findElement(session.elements, shapeID)
	if el == nil || el.Shape == nil {
		return nil, fmt.Errorf("shape not found: %s", shapeID)
	}
	if el.Fixed {
		return nil, fmt.Errorf("updating %s: %w", shapeID, ErrFixed)
	}

	// Input ids share the shape's bare key, not the "svg_" element id.
	base := strings.TrimPrefix(shapeID, "svg_")
	n := len(el.Shape.Inputs) + 1
	id := fmt.Sprintf("%s_%d", base, n)
	for shapeInputIndex(el.Shape.Inputs, id) >= 0 {
		n++
		id = fmt.Sprintf("%s_%d", base, n)
	}

	input := models.ShapeInput{ID: id, RelX: 50, RelY: 50}
	el.Shape.Inputs = append(el.Shape.Inputs, input)
	session.dirty = true
	return &input, nil
}

// UpdateShapeInput applies a patch to one nested shape input.
func (m *Manager) UpdateShapeInput(sessionID, shapeID, inputID string, patch ShapeInputPatch) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, err := m.sessionLocked(sessionID)
	if err != nil {
		return err
	}

	el := findElement(session.elements, shapeID)
	if el == nil || el.Shape == nil {
		return fmt.Errorf("shape not found: %s", shapeID)
	}
	if el.Fixed {
		return fmt.Errorf("updating %s: %w", shapeID, ErrFixed)
	}

	i := shapeInputIndex(el.Shape.Inputs, inputID)
	if i < 0 {
		return fmt.Errorf("shape input not found: %s", inputID)
	}

	in := &el.Shape.Inputs[i]
	if patch.ID != nil && *patch.ID != "" {
		in.ID = *patch.ID
	}
	if patch.RelX != nil {
		in.RelX = *patch.RelX
	}
	if patch.RelY != nil {
		in.RelY = *patch.RelY
	}
	if patch.PlaceX != nil {
		in.PlaceX = *patch.PlaceX
	}
	if patch.PlaceY != nil {
		in.PlaceY = *patch.PlaceY
	}

	session.dirty = true
	return nil
}

// RemoveShapeInput deletes one nested shape input, preserving order.
func (m *Manager) RemoveShapeInput(sessionID, shapeID, inputID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, err := m.sessionLocked(sessionID)
	if err != nil {
		return err
	}

	el := findElement(session.elements, shapeID)
	if el == nil || el.Shape == nil {
		return fmt.Errorf("shape not found: %s", shapeID)
	}
	if el.Fixed {
		return fmt.Errorf("updating %s: %w", shapeID, ErrFixed)
	}

	i := shapeInputIndex(el.Shape.Inputs, inputID)
	if i < 0 {
		return fmt.Errorf("shape input not found: %s", inputID)
	}

	el.Shape.Inputs = append(el.Shape.Inputs[:i], el.Shape.Inputs[i+1:]...)
	session.dirty = true
	return nil
}

// SetPageSize switches the session's page preset.
func (m *Manager) SetPageSize(sessionID string, pageSize models.PageSize) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, err := m.sessionLocked(sessionID)
	if err != nil {
		return err
	}
	if !pageSize.Valid() {
		return fmt.Errorf("unknown page size: %s", pageSize)
	}
	session.pageSize = pageSize
	session.dirty = true
	return nil
}

// ResetToDefault discards all customizations and reloads the factory
// layout. The caller confirms with the user first; this call is
// unconditional.
func (m *Manager) ResetToDefault(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, err := m.sessionLocked(sessionID)
	if err != nil {
		return err
	}

	session.elements = layout.Factory()
	session.state = StateIdle
	session.selected = ""
	session.dirty = true
	return nil
}

// Export serializes the working layout as a portable document.
func (m *Manager) Export(sessionID string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, err := m.sessionLocked(sessionID)
	if err != nil {
		return nil, err
	}
	return layout.Export(session.elements)
}

// Import replaces the working layout with an imported document, run
// through the same merge policy as a saved layout.
func (m *Manager) Import(sessionID string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, err := m.sessionLocked(sessionID)
	if err != nil {
		return err
	}

	imported, err := layout.Import(data)
	if err != nil {
		return err
	}

	session.elements = imported
	session.state = StateIdle
	session.selected = ""
	session.dirty = true
	return nil
}

// Save persists the working layout through the settings store.
func (m *Manager) Save(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	session, err := m.sessionLocked(sessionID)
	if err != nil {
		m.mu.Unlock()
		return err
	}
	elements := models.CloneLayout(session.elements)
	pageSize := session.pageSize
	m.mu.Unlock()

	if err := m.settings.SaveLayout(ctx, elements, pageSize); err != nil {
		return fmt.Errorf("saving layout: %w", err)
	}

	m.mu.Lock()
	if s, ok := m.sessions[sessionID]; ok {
		s.dirty = false
	}
	m.mu.Unlock()

	fmt.Printf("[Designer %s] Layout saved (%d elements)\n", sessionID[:8], len(elements))
	return nil
}

// Close discards the session. Unsaved changes are dropped.
func (m *Manager) Close(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[sessionID]; !ok {
		return fmt.Errorf("session not found: %s", sessionID)
	}
	delete(m.sessions, sessionID)
	return nil
}

func (m *Manager) sessionLocked(sessionID string) (*Session, error) {
	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session not found: %s", sessionID)
	}
	session.lastAccessed = time.Now()
	return session, nil
}

func (m *Manager) cleanupOldSessionsIfNeeded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.sessions) < MaxSessions {
		return
	}
	now := time.Now()
	for id, s := range m.sessions {
		if now.Sub(s.lastAccessed) > SessionMaxAge {
			delete(m.sessions, id)
		}
	}
}

func sessionInfo(session *Session) *Info {
	return &Info{
		ID:       session.ID,
		State:    session.state,
		Selected: session.selected,
		PageSize: string(session.pageSize),
		Dirty:    session.dirty,
	}
}

func findElement(elements []models.LayoutElement, id string) *models.LayoutElement {
	for i := range elements {
		if elements[i].ID == id {
			return &elements[i]
		}
	}
	return nil
}

func shapeInputIndex(inputs []models.ShapeInput, id string) int {
	for i := range inputs {
		if inputs[i].ID == id {
			return i
		}
	}
	return -1
}

// clampPct keeps an element's origin inside the page given its size.
func clampPct(v, size float64) float64 {
	max := 100 - size
	if max < 0 {
		max = 0
	}
	return clamp(v, 0, max)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

package slip

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tailorpro/backend/internal/fraction"
	"github.com/tailorpro/backend/internal/layout"
	"github.com/tailorpro/backend/internal/models"
	"github.com/tailorpro/backend/internal/render"
)

// MaxSessions limits concurrent slip sessions to prevent memory exhaustion
const MaxSessions = 32

// SessionMaxAge is how long an untouched session lives before cleanup
const SessionMaxAge = 30 * time.Minute

// MeasurementStore is the persistence the slip sessions need. GetByCustomer
// returns (nil, nil) when the customer has no measurement yet.
type MeasurementStore interface {
	GetByCustomer(ctx context.Context, customerID int64) (*models.Measurement, error)
	Put(ctx context.Context, m *models.Measurement) error
}

// CustomerStore resolves the customer behind a session.
type CustomerStore interface {
	Get(ctx context.Context, id int64) (*models.Customer, error)
}

// SettingsStore provides the shop settings and the saved slip layout.
type SettingsStore interface {
	Get(ctx context.Context) (*models.Settings, error)
}

// Session is one live slip-editing session.
type Session struct {
	ID         string
	CustomerID int64

	customer *models.Customer
	settings *models.Settings
	layout   []models.LayoutElement
	fields   map[string]string
	options  map[string]bool

	autosaver    *Autosaver
	lastAccessed time.Time
}

// Info is the session summary returned to API clients.
type Info struct {
	ID         string `json:"id"`
	CustomerID int64  `json:"customerId"`
	Status     Status `json:"status"`
	PageSize   string `json:"pageSize"`
}

// Manager owns the active slip sessions.
type Manager struct {
	sessions     map[string]*Session
	mu           sync.RWMutex
	measurements MeasurementStore
	customers    CustomerStore
	settings     SettingsStore
	debounce     time.Duration
	settle       time.Duration
}

// NewManager creates a slip session manager with production autosave
// intervals.
func NewManager(measurements MeasurementStore, customers CustomerStore, settings SettingsStore) *Manager {
	return NewManagerWithIntervals(measurements, customers, settings, DebounceInterval, SettleInterval)
}

// NewManagerWithIntervals creates a manager with explicit autosave
// intervals. Tests use short intervals.
func NewManagerWithIntervals(measurements MeasurementStore, customers CustomerStore, settings SettingsStore, debounce, settle time.Duration) *Manager {
	return &Manager{
		sessions:     make(map[string]*Session),
		measurements: measurements,
		customers:    customers,
		settings:     settings,
		debounce:     debounce,
		settle:       settle,
	}
}

// Open starts a slip session for a customer: the saved layout resolved
// against the factory default, and the value map seeded from the stored
// measurement or, for a first-time customer, from the bindable key set
// with the serial number prefilled from the customer id.
func (m *Manager) Open(ctx context.Context, customerID int64) (*Info, error) {
	m.cleanupOldSessionsIfNeeded()

	customer, err := m.customers.Get(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("loading customer %d: %w", customerID, err)
	}

	settings, err := m.settings.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	measurement, err := m.measurements.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, fmt.Errorf("loading measurement for customer %d: %w", customerID, err)
	}

	session := &Session{
		ID:           uuid.New().String(),
		CustomerID:   customerID,
		customer:     customer,
		settings:     settings,
		layout:       layout.Resolve(settings.SlipLayout),
		fields:       map[string]string{},
		options:      map[string]bool{},
		lastAccessed: time.Now(),
	}
	if measurement != nil {
		session.fields, session.options = measurement.CloneValues()
	} else {
		session.fields = emptyValueMap()
	}
	if session.fields["sNo"] == "" {
		session.fields["sNo"] = strconv.FormatInt(customerID, 10)
	}

	store := m.measurements
	session.autosaver = NewAutosaverWithIntervals(func(saveCtx context.Context, fields map[string]string, options map[string]bool) error {
		return store.Put(saveCtx, &models.Measurement{
			CustomerID:    customerID,
			Fields:        fields,
			DesignOptions: options,
			UpdatedAt:     time.Now(),
		})
	}, m.debounce, m.settle)

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	fmt.Printf("[Slip %s] Session opened for customer %d\n", session.ID[:8], customerID)
	return m.sessionInfo(session), nil
}

// Get returns the session summary.
func (m *Manager) Get(sessionID string) (*Info, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, err := m.sessionLocked(sessionID)
	if err != nil {
		return nil, err
	}
	return m.sessionInfo(session), nil
}

// SetField parses and stores a measurement value. Identity fields are
// owned by the customer record and reject edits.
func (m *Manager) SetField(sessionID, field, raw string) error {
	if field == "customerName" || field == "phone" || field == "sNo" {
		return fmt.Errorf("field %s is read-only", field)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	session, err := m.sessionLocked(sessionID)
	if err != nil {
		return err
	}

	session.fields[field] = fraction.Parse(raw)
	session.autosaver.Notify(session.fields, session.options)
	return nil
}

// SelectChoice stores the single selected option for an exclusive group.
// An empty key clears the selection.
func (m *Manager) SelectChoice(sessionID, group, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, err := m.sessionLocked(sessionID)
	if err != nil {
		return err
	}

	if key != "" && !choiceKeyValid(session.layout, group, key) {
		return fmt.Errorf("unknown option %s for group %s", key, group)
	}

	field := group + "_selected"
	if key == "" {
		delete(session.fields, field)
	} else {
		session.fields[field] = key
	}
	session.autosaver.Notify(session.fields, session.options)
	return nil
}

// SetDesignOption toggles an independent farmaish option.
func (m *Manager) SetDesignOption(sessionID, key string, on bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, err := m.sessionLocked(sessionID)
	if err != nil {
		return err
	}

	if on {
		session.options[key] = true
	} else {
		delete(session.options, key)
	}
	session.autosaver.Notify(session.fields, session.options)
	return nil
}

// ResetValues clears the slip back to its new-customer shape: every
// bindable field re-seeded empty, the serial number prefilled again, and
// all design options dropped.
func (m *Manager) ResetValues(sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, err := m.sessionLocked(sessionID)
	if err != nil {
		return err
	}

	session.fields = emptyValueMap()
	session.fields["sNo"] = strconv.FormatInt(session.CustomerID, 10)
	session.options = map[string]bool{}
	session.autosaver.Notify(session.fields, session.options)
	fmt.Printf("[Slip %s] Measurements cleared\n", session.ID[:8])
	return nil
}

// Document builds the live form document for the session's current state.
func (m *Manager) Document(sessionID string) (*render.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, err := m.sessionLocked(sessionID)
	if err != nil {
		return nil, err
	}

	tree := render.Build(session.layout, session.fields, &render.Context{
		Customer: session.customer,
		Settings: session.settings,
		PageSize: session.settings.PageSize,
		SerialNo: session.fields["sNo"],
	})
	return render.BuildDocument(tree, render.ModeForm), nil
}

// Values returns a copy of the session's current field and option maps.
func (m *Manager) Values(sessionID string) (map[string]string, map[string]bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, nil, fmt.Errorf("session not found: %s", sessionID)
	}
	return cloneStringMap(session.fields), cloneBoolMap(session.options), nil
}

// Status returns the session's autosave state.
func (m *Manager) Status(sessionID string) (Status, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[sessionID]
	if !ok {
		return "", fmt.Errorf("session not found: %s", sessionID)
	}
	return session.autosaver.Status(), nil
}

// WatchStatus subscribes to the session's autosave transitions. The
// channel closes when the session closes.
func (m *Manager) WatchStatus(sessionID string) (<-chan Status, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session not found: %s", sessionID)
	}
	return session.autosaver.Watch(), nil
}

// UnwatchStatus drops a status subscription.
func (m *Manager) UnwatchStatus(sessionID string, ch <-chan Status) {
	m.mu.RLock()
	session, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if ok {
		session.autosaver.Unwatch(ch)
	}
}

// Close flushes any pending save and removes the session.
func (m *Manager) Close(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	session, ok := m.sessions[sessionID]
	if ok {
		delete(m.sessions, sessionID)
	}
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("session not found: %s", sessionID)
	}

	if err := session.autosaver.Close(ctx); err != nil {
		fmt.Printf("[Slip %s] ERROR: flush on close failed: %v\n", sessionID[:8], err)
		return err
	}
	fmt.Printf("[Slip %s] Session closed\n", sessionID[:8])
	return nil
}

// CloseAll flushes and removes every session, for server shutdown.
func (m *Manager) CloseAll(ctx context.Context) {
	m.mu.Lock()
	sessions := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range sessions {
		if err := s.autosaver.Close(ctx); err != nil {
			fmt.Printf("[Slip %s] ERROR: flush on shutdown failed: %v\n", s.ID[:8], err)
		}
	}
}

func emptyValueMap() map[string]string {
	keys := layout.AllFieldKeys()
	fields := make(map[string]string, len(keys))
	for _, key := range keys {
		fields[key] = ""
	}
	return fields
}

func (m *Manager) sessionLocked(sessionID string) (*Session, error) {
	session, ok := m.sessions[sessionID]
	if !ok {
		return nil, fmt.Errorf("session not found: %s", sessionID)
	}
	session.lastAccessed = time.Now()
	return session, nil
}

func (m *Manager) sessionInfo(session *Session) *Info {
	pageSize := session.settings.PageSize
	if !pageSize.Valid() {
		pageSize = models.PageA5
	}
	return &Info{
		ID:         session.ID,
		CustomerID: session.CustomerID,
		Status:     session.autosaver.Status(),
		PageSize:   string(pageSize),
	}
}

// cleanupOldSessionsIfNeeded evicts stale sessions when at the limit,
// flushing their pending saves in the background.
func (m *Manager) cleanupOldSessionsIfNeeded() {
	m.mu.Lock()
	if len(m.sessions) < MaxSessions {
		m.mu.Unlock()
		return
	}

	now := time.Now()
	stale := make([]*Session, 0)
	for id, s := range m.sessions {
		if now.Sub(s.lastAccessed) > SessionMaxAge {
			stale = append(stale, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range stale {
		go func(s *Session) {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := s.autosaver.Close(ctx); err != nil {
				fmt.Printf("[Slip %s] ERROR: flush on eviction failed: %v\n", s.ID[:8], err)
			}
		}(s)
	}
}

// choiceKeyValid checks an option key against the session layout's group.
func choiceKeyValid(elements []models.LayoutElement, group, key string) bool {
	for _, el := range elements {
		if !el.Kind.IsChoiceGroup() || el.Kind.ChoiceGroupKey() != group {
			continue
		}
		if el.Group == nil {
			return false
		}
		for _, opt := range el.Group.Options {
			if opt.Key == key {
				return true
			}
		}
	}
	return false
}

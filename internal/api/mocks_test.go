// mocks_test.go - In-memory store fakes shared by the handler tests
package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tailorpro/backend/internal/models"
)

type mockCustomers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.Customer
}

func newMockCustomers() *mockCustomers {
	return &mockCustomers{nextID: 1, byID: make(map[int64]*models.Customer)}
}

func (m *mockCustomers) add(name, phone string) *models.Customer {
	c, _ := m.Create(context.Background(), &models.Customer{Name: name, Phone: phone})
	return c
}

func (m *mockCustomers) Create(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *c
	stored.ID = m.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	m.nextID++
	m.byID[stored.ID] = &stored
	return &stored, nil
}

func (m *mockCustomers) Get(ctx context.Context, id int64) (*models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("customer not found: %d", id)
	}
	return c, nil
}

func (m *mockCustomers) List(ctx context.Context, search string) ([]models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Customer
	for _, c := range m.byID {
		out = append(out, *c)
	}
	return out, nil
}

func (m *mockCustomers) Update(ctx context.Context, c *models.Customer) (*models.Customer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[c.ID]; !ok {
		return nil, fmt.Errorf("customer not found: %d", c.ID)
	}
	stored := *c
	stored.UpdatedAt = time.Now()
	m.byID[c.ID] = &stored
	return &stored, nil
}

func (m *mockCustomers) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return fmt.Errorf("customer not found: %d", id)
	}
	delete(m.byID, id)
	return nil
}

type mockWorkers struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.Worker
}

func newMockWorkers() *mockWorkers {
	return &mockWorkers{nextID: 1, byID: make(map[int64]*models.Worker)}
}

func (m *mockWorkers) Create(ctx context.Context, w *models.Worker) (*models.Worker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *w
	stored.ID = m.nextID
	m.nextID++
	m.byID[stored.ID] = &stored
	return &stored, nil
}

func (m *mockWorkers) Get(ctx context.Context, id int64) (*models.Worker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	w, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("worker not found: %d", id)
	}
	return w, nil
}

func (m *mockWorkers) List(ctx context.Context, role models.WorkerRole) ([]models.Worker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Worker
	for _, w := range m.byID {
		if role != "" && w.Role != role {
			continue
		}
		out = append(out, *w)
	}
	return out, nil
}

func (m *mockWorkers) Update(ctx context.Context, w *models.Worker) (*models.Worker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[w.ID]; !ok {
		return nil, fmt.Errorf("worker not found: %d", w.ID)
	}
	stored := *w
	m.byID[w.ID] = &stored
	return &stored, nil
}

func (m *mockWorkers) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return fmt.Errorf("worker not found: %d", id)
	}
	delete(m.byID, id)
	return nil
}

func (m *mockWorkers) NamesForOrder(ctx context.Context, order *models.Order) (*models.WorkerNames, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := &models.WorkerNames{}
	if w, ok := m.byID[order.CutterID]; ok {
		names.Cutter = w.Name
	}
	if w, ok := m.byID[order.CheckerID]; ok {
		names.Checker = w.Name
	}
	if w, ok := m.byID[order.KarigarID]; ok {
		names.Karigar = w.Name
	}
	return names, nil
}

type mockOrders struct {
	mu     sync.Mutex
	nextID int64
	byID   map[int64]*models.Order
}

func newMockOrders() *mockOrders {
	return &mockOrders{nextID: 1, byID: make(map[int64]*models.Order)}
}

func (m *mockOrders) Create(ctx context.Context, o *models.Order) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *o
	stored.ID = m.nextID
	if stored.Status == "" {
		stored.Status = models.OrderNew
	}
	m.nextID++
	m.byID[stored.ID] = &stored
	return &stored, nil
}

func (m *mockOrders) Get(ctx context.Context, id int64) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.byID[id]
	if !ok {
		return nil, fmt.Errorf("order not found: %d", id)
	}
	return o, nil
}

func (m *mockOrders) ListByCustomer(ctx context.Context, customerID int64) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Order
	for _, o := range m.byID {
		if o.CustomerID == customerID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (m *mockOrders) Update(ctx context.Context, o *models.Order) (*models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[o.ID]; !ok {
		return nil, fmt.Errorf("order not found: %d", o.ID)
	}
	stored := *o
	m.byID[o.ID] = &stored
	return &stored, nil
}

func (m *mockOrders) Delete(ctx context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return fmt.Errorf("order not found: %d", id)
	}
	delete(m.byID, id)
	return nil
}

type mockMeasurements struct {
	mu     sync.Mutex
	byCust map[int64]*models.Measurement
}

func newMockMeasurements() *mockMeasurements {
	return &mockMeasurements{byCust: make(map[int64]*models.Measurement)}
}

func (m *mockMeasurements) GetByCustomer(ctx context.Context, customerID int64) (*models.Measurement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	rec, ok := m.byCust[customerID]
	if !ok {
		return nil, nil
	}
	return rec, nil
}

func (m *mockMeasurements) Put(ctx context.Context, rec *models.Measurement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := *rec
	m.byCust[rec.CustomerID] = &stored
	return nil
}

type mockSettings struct {
	mu       sync.Mutex
	settings models.Settings
}

func newMockSettings() *mockSettings {
	return &mockSettings{
		settings: models.Settings{
			ID:       1,
			ShopName: "New Style Tailors",
			Phone1:   "0301-1234567",
			PageSize: models.PageA5,
		},
	}
}

func (m *mockSettings) Get(ctx context.Context) (*models.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := m.settings
	return &copied, nil
}

func (m *mockSettings) Save(ctx context.Context, settings *models.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = *settings
	return nil
}

func (m *mockSettings) SaveLayout(ctx context.Context, elements []models.LayoutElement, pageSize models.PageSize) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings.SlipLayout = elements
	m.settings.PageSize = pageSize
	return nil
}

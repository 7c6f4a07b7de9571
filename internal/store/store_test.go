package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tailorpro/backend/internal/layout"
	"github.com/tailorpro/backend/internal/models"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "shop.duckdb"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCustomerCRUD(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	created, err := db.Customers.Create(ctx, &models.Customer{Name: "Ahmed Khan", Phone: "0313-1234567"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := db.Customers.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ahmed Khan", got.Name)

	got.Name = "Ahmed Raza Khan"
	updated, err := db.Customers.Update(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, "Ahmed Raza Khan", updated.Name)

	list, err := db.Customers.List(ctx, "raza")
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, err = db.Customers.List(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, list)

	require.NoError(t, db.Customers.Delete(ctx, created.ID))
	_, err = db.Customers.Get(ctx, created.ID)
	assert.Error(t, err)
	assert.Error(t, db.Customers.Delete(ctx, created.ID))
}

func TestWorkerCRUD(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	cutter, err := db.Workers.Create(ctx, &models.Worker{Name: "Rashid", Role: models.RoleCutter, IsActive: true})
	require.NoError(t, err)
	_, err = db.Workers.Create(ctx, &models.Worker{Name: "Bashir", Role: models.RoleKarigar, IsActive: true})
	require.NoError(t, err)

	all, err := db.Workers.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	cutters, err := db.Workers.List(ctx, models.RoleCutter)
	require.NoError(t, err)
	require.Len(t, cutters, 1)
	assert.Equal(t, "Rashid", cutters[0].Name)

	cutter.IsActive = false
	_, err = db.Workers.Update(ctx, cutter)
	require.NoError(t, err)

	got, err := db.Workers.Get(ctx, cutter.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestOrderCRUD(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	customer, err := db.Customers.Create(ctx, &models.Customer{Name: "Ali", Phone: "0300-1111111"})
	require.NoError(t, err)
	cutter, err := db.Workers.Create(ctx, &models.Worker{Name: "Rashid", Role: models.RoleCutter, IsActive: true})
	require.NoError(t, err)

	due := time.Now().Add(72 * time.Hour).Truncate(time.Second)
	order, err := db.Orders.Create(ctx, &models.Order{
		CustomerID:     customer.ID,
		DueDate:        due,
		AdvancePayment: "500",
		SuitsCount:     2,
		CutterID:       cutter.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderNew, order.Status, "empty status defaults to new")

	got, err := db.Orders.Get(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, customer.ID, got.CustomerID)
	assert.Equal(t, "500", got.AdvancePayment)
	assert.WithinDuration(t, due, got.DueDate, time.Second)

	got.Status = models.OrderReady
	updated, err := db.Orders.Update(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, models.OrderReady, updated.Status)

	list, err := db.Orders.ListByCustomer(ctx, customer.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	names, err := db.Workers.NamesForOrder(ctx, got)
	require.NoError(t, err)
	assert.Equal(t, "Rashid", names.Cutter)
	assert.Empty(t, names.Karigar)

	require.NoError(t, db.Orders.Delete(ctx, order.ID))
	_, err = db.Orders.Get(ctx, order.ID)
	assert.Error(t, err)
}

func TestMeasurementUpsert(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	// Absent measurement is nil, not an error.
	m, err := db.Measurements.GetByCustomer(ctx, 42)
	require.NoError(t, err)
	assert.Nil(t, m)

	require.NoError(t, db.Measurements.Put(ctx, &models.Measurement{
		CustomerID: 42,
		Fields:     map[string]string{"left1": "9.5", "silai_selected": "silai_double"},
	}))

	m, err = db.Measurements.GetByCustomer(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "9.5", m.Fields["left1"])
	assert.NotNil(t, m.DesignOptions)

	// Second put replaces, never duplicates.
	require.NoError(t, db.Measurements.Put(ctx, &models.Measurement{
		CustomerID:    42,
		Fields:        map[string]string{"left1": "10"},
		DesignOptions: map[string]bool{"design_front_pocket": true},
	}))

	m, err = db.Measurements.GetByCustomer(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.Equal(t, "10", m.Fields["left1"])
	assert.True(t, m.DesignOptions["design_front_pocket"])
	_, stale := m.Fields["silai_selected"]
	assert.False(t, stale, "put replaces the whole map")
}

func TestSettingsRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	// Fresh database yields defaults.
	settings, err := db.Settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.PageA5, settings.PageSize)
	assert.Empty(t, settings.SlipLayout)

	settings.ShopName = "M.R.S Fabrics"
	settings.Phone1 = "0313-9003733"
	settings.PageSize = models.PageA4
	settings.SlipLayout = layout.Factory()
	require.NoError(t, db.Settings.Save(ctx, settings))

	loaded, err := db.Settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "M.R.S Fabrics", loaded.ShopName)
	assert.Equal(t, models.PageA4, loaded.PageSize)
	assert.Len(t, loaded.SlipLayout, len(layout.Factory()))

	// SaveLayout keeps the rest of the record intact.
	custom := layout.Factory()[:5]
	require.NoError(t, db.Settings.SaveLayout(ctx, custom, models.PageA5))

	loaded, err = db.Settings.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "M.R.S Fabrics", loaded.ShopName)
	assert.Equal(t, models.PageA5, loaded.PageSize)
	assert.Len(t, loaded.SlipLayout, 5)
}

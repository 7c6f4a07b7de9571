// interfaces.go - Handler interface definitions for clean separation of concerns
package api

import (
	"context"

	"github.com/labstack/echo/v4"

	"github.com/tailorpro/backend/internal/models"
)

// CustomerHandler handles customer record operations
type CustomerHandler interface {
	HandleListCustomers(c echo.Context) error
	HandleCreateCustomer(c echo.Context) error
	HandleGetCustomer(c echo.Context) error
	HandleUpdateCustomer(c echo.Context) error
	HandleDeleteCustomer(c echo.Context) error
	HandleCustomerOrders(c echo.Context) error
}

// WorkerHandler handles shop worker operations
type WorkerHandler interface {
	HandleListWorkers(c echo.Context) error
	HandleCreateWorker(c echo.Context) error
	HandleGetWorker(c echo.Context) error
	HandleUpdateWorker(c echo.Context) error
	HandleDeleteWorker(c echo.Context) error
}

// OrderHandler handles order operations
type OrderHandler interface {
	HandleCreateOrder(c echo.Context) error
	HandleGetOrder(c echo.Context) error
	HandleUpdateOrder(c echo.Context) error
	HandleDeleteOrder(c echo.Context) error
}

// SettingsHandler handles shop settings operations
type SettingsHandler interface {
	HandleGetSettings(c echo.Context) error
	HandleUpdateSettings(c echo.Context) error
}

// LayoutHandler handles the saved slip layout and its import/export archive
type LayoutHandler interface {
	HandleGetLayout(c echo.Context) error
	HandleSaveLayout(c echo.Context) error
	HandleImportLayout(c echo.Context) error
	HandleExportLayout(c echo.Context) error
	HandleResetLayout(c echo.Context) error
	HandleRecentLayoutFiles(c echo.Context) error
	HandleGetLayoutFile(c echo.Context) error
	HandleDeleteLayoutFile(c echo.Context) error
	HandleRenameLayoutFile(c echo.Context) error
}

// DesignerHandler handles layout editor session operations
type DesignerHandler interface {
	HandleCreateDesignerSession(c echo.Context) error
	HandleGetDesignerSession(c echo.Context) error
	HandleDesignerDocument(c echo.Context) error
	HandleSelectElement(c echo.Context) error
	HandleDeselectElement(c echo.Context) error
	HandleBeginDrag(c echo.Context) error
	HandleEndDrag(c echo.Context) error
	HandleBeginResize(c echo.Context) error
	HandleEndResize(c echo.Context) error
	HandleUpdateElement(c echo.Context) error
	HandleAddShapeInput(c echo.Context) error
	HandleUpdateShapeInput(c echo.Context) error
	HandleRemoveShapeInput(c echo.Context) error
	HandleSetDesignerPageSize(c echo.Context) error
	HandleResetDesigner(c echo.Context) error
	HandleImportDesignerLayout(c echo.Context) error
	HandleExportDesignerLayout(c echo.Context) error
	HandleSaveDesigner(c echo.Context) error
	HandleCloseDesignerSession(c echo.Context) error
}

// SlipHandler handles live slip session operations
type SlipHandler interface {
	HandleOpenSlipSession(c echo.Context) error
	HandleGetSlipSession(c echo.Context) error
	HandleSlipDocument(c echo.Context) error
	HandleSetSlipField(c echo.Context) error
	HandleSelectSlipChoice(c echo.Context) error
	HandleSetSlipOption(c echo.Context) error
	HandleResetSlipValues(c echo.Context) error
	HandleSlipStatus(c echo.Context) error
	HandleSlipStatusStream(c echo.Context) error
	HandleCloseSlipSession(c echo.Context) error
}

// PrintHandler renders the printable slip page
type PrintHandler interface {
	HandlePrintSlip(c echo.Context) error
}

// HealthHandler handles health check operations
type HealthHandler interface {
	HandleHealth(c echo.Context) error
}

// Store interfaces consumed by the handlers. They mirror the concrete
// DuckDB-backed stores and allow mocking in tests.

// CustomerStore persists customer records
type CustomerStore interface {
	Create(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	Get(ctx context.Context, id int64) (*models.Customer, error)
	List(ctx context.Context, search string) ([]models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) (*models.Customer, error)
	Delete(ctx context.Context, id int64) error
}

// WorkerStore persists worker records and resolves order assignments
type WorkerStore interface {
	Create(ctx context.Context, worker *models.Worker) (*models.Worker, error)
	Get(ctx context.Context, id int64) (*models.Worker, error)
	List(ctx context.Context, role models.WorkerRole) ([]models.Worker, error)
	Update(ctx context.Context, worker *models.Worker) (*models.Worker, error)
	Delete(ctx context.Context, id int64) error
	NamesForOrder(ctx context.Context, order *models.Order) (*models.WorkerNames, error)
}

// OrderStore persists order records
type OrderStore interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	Get(ctx context.Context, id int64) (*models.Order, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]models.Order, error)
	Update(ctx context.Context, order *models.Order) (*models.Order, error)
	Delete(ctx context.Context, id int64) error
}

// MeasurementStore reads saved measurement values for printing.
// GetByCustomer returns (nil, nil) when none exist yet.
type MeasurementStore interface {
	GetByCustomer(ctx context.Context, customerID int64) (*models.Measurement, error)
}

// SettingsStore persists the shop settings record and the slip layout
type SettingsStore interface {
	Get(ctx context.Context) (*models.Settings, error)
	Save(ctx context.Context, settings *models.Settings) error
	SaveLayout(ctx context.Context, elements []models.LayoutElement, pageSize models.PageSize) error
}

// routes.go - Route registration helpers
// This file provides a clean way to register all API routes
package api

import (
	"github.com/labstack/echo/v4"

	"github.com/tailorpro/backend/internal/designer"
	"github.com/tailorpro/backend/internal/slip"
	"github.com/tailorpro/backend/internal/storage"
)

// Dependencies holds all handler dependencies
type Dependencies struct {
	Customers    CustomerStore
	Workers      WorkerStore
	Orders       OrderStore
	Measurements MeasurementStore
	Settings     SettingsStore
	Archive      storage.Store
	SlipMgr      *slip.Manager
	DesignerMgr  *designer.Manager

	Version               string
	RecentLayoutsLimit    int
	AllowCustomerDeletion bool
}

// Handlers holds all handler instances
type Handlers struct {
	Health   HealthHandler
	Customer CustomerHandler
	Worker   WorkerHandler
	Order    OrderHandler
	Settings SettingsHandler
	Layout   LayoutHandler
	Designer DesignerHandler
	Slip     SlipHandler
	Print    PrintHandler
}

// NewHandlers creates all handler instances
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health:   NewHealthHandler(deps.Version),
		Customer: NewCustomerHandler(deps.Customers, deps.Orders, deps.AllowCustomerDeletion),
		Worker:   NewWorkerHandler(deps.Workers),
		Order:    NewOrderHandler(deps.Orders, deps.Customers),
		Settings: NewSettingsHandler(deps.Settings),
		Layout:   NewLayoutHandler(deps.Settings, deps.Archive, deps.RecentLayoutsLimit),
		Designer: NewDesignerHandler(deps.DesignerMgr),
		Slip:     NewSlipHandler(deps.SlipMgr),
		Print:    NewPrintHandler(deps.Customers, deps.Orders, deps.Workers, deps.Measurements, deps.Settings),
	}
}

// RegisterRoutes registers all API routes with the Echo instance
func RegisterRoutes(e *echo.Echo, handlers *Handlers) {
	// Health check
	e.GET("/health", handlers.Health.HandleHealth)

	// Customer routes
	customerGroup := e.Group("/api/customers")
	customerGroup.GET("", handlers.Customer.HandleListCustomers)
	customerGroup.POST("", handlers.Customer.HandleCreateCustomer)
	customerGroup.GET("/:id", handlers.Customer.HandleGetCustomer)
	customerGroup.PUT("/:id", handlers.Customer.HandleUpdateCustomer)
	customerGroup.DELETE("/:id", handlers.Customer.HandleDeleteCustomer)
	customerGroup.GET("/:id/orders", handlers.Customer.HandleCustomerOrders)
	customerGroup.GET("/:id/slip", handlers.Print.HandlePrintSlip)

	// Worker routes
	workerGroup := e.Group("/api/workers")
	workerGroup.GET("", handlers.Worker.HandleListWorkers)
	workerGroup.POST("", handlers.Worker.HandleCreateWorker)
	workerGroup.GET("/:id", handlers.Worker.HandleGetWorker)
	workerGroup.PUT("/:id", handlers.Worker.HandleUpdateWorker)
	workerGroup.DELETE("/:id", handlers.Worker.HandleDeleteWorker)

	// Order routes
	orderGroup := e.Group("/api/orders")
	orderGroup.POST("", handlers.Order.HandleCreateOrder)
	orderGroup.GET("/:id", handlers.Order.HandleGetOrder)
	orderGroup.PUT("/:id", handlers.Order.HandleUpdateOrder)
	orderGroup.DELETE("/:id", handlers.Order.HandleDeleteOrder)

	// Settings routes
	settingsGroup := e.Group("/api/settings")
	settingsGroup.GET("", handlers.Settings.HandleGetSettings)
	settingsGroup.PUT("", handlers.Settings.HandleUpdateSettings)

	// Saved layout and archive routes
	layoutGroup := e.Group("/api/layout")
	layoutGroup.GET("", handlers.Layout.HandleGetLayout)
	layoutGroup.PUT("", handlers.Layout.HandleSaveLayout)
	layoutGroup.POST("/import", handlers.Layout.HandleImportLayout)
	layoutGroup.GET("/export", handlers.Layout.HandleExportLayout)
	layoutGroup.POST("/reset", handlers.Layout.HandleResetLayout)
	layoutGroup.GET("/files/recent", handlers.Layout.HandleRecentLayoutFiles)
	layoutGroup.GET("/files/:id", handlers.Layout.HandleGetLayoutFile)
	layoutGroup.DELETE("/files/:id", handlers.Layout.HandleDeleteLayoutFile)
	layoutGroup.PUT("/files/:id", handlers.Layout.HandleRenameLayoutFile)

	// Layout editor session routes
	designerGroup := e.Group("/api/designer/sessions")
	designerGroup.POST("", handlers.Designer.HandleCreateDesignerSession)
	designerGroup.GET("/:id", handlers.Designer.HandleGetDesignerSession)
	designerGroup.GET("/:id/document", handlers.Designer.HandleDesignerDocument)
	designerGroup.POST("/:id/select", handlers.Designer.HandleSelectElement)
	designerGroup.POST("/:id/deselect", handlers.Designer.HandleDeselectElement)
	designerGroup.POST("/:id/drag/begin", handlers.Designer.HandleBeginDrag)
	designerGroup.POST("/:id/drag/end", handlers.Designer.HandleEndDrag)
	designerGroup.POST("/:id/resize/begin", handlers.Designer.HandleBeginResize)
	designerGroup.POST("/:id/resize/end", handlers.Designer.HandleEndResize)
	designerGroup.PATCH("/:id/elements/:elementId", handlers.Designer.HandleUpdateElement)
	designerGroup.POST("/:id/shapes/:shapeId/inputs", handlers.Designer.HandleAddShapeInput)
	designerGroup.PATCH("/:id/shapes/:shapeId/inputs/:inputId", handlers.Designer.HandleUpdateShapeInput)
	designerGroup.DELETE("/:id/shapes/:shapeId/inputs/:inputId", handlers.Designer.HandleRemoveShapeInput)
	designerGroup.PUT("/:id/page-size", handlers.Designer.HandleSetDesignerPageSize)
	designerGroup.POST("/:id/reset", handlers.Designer.HandleResetDesigner)
	designerGroup.POST("/:id/import", handlers.Designer.HandleImportDesignerLayout)
	designerGroup.GET("/:id/export", handlers.Designer.HandleExportDesignerLayout)
	designerGroup.POST("/:id/save", handlers.Designer.HandleSaveDesigner)
	designerGroup.DELETE("/:id", handlers.Designer.HandleCloseDesignerSession)

	// Slip session routes
	slipGroup := e.Group("/api/slip/sessions")
	slipGroup.POST("", handlers.Slip.HandleOpenSlipSession)
	slipGroup.GET("/:id", handlers.Slip.HandleGetSlipSession)
	slipGroup.GET("/:id/document", handlers.Slip.HandleSlipDocument)
	slipGroup.PUT("/:id/fields", handlers.Slip.HandleSetSlipField)
	slipGroup.PUT("/:id/choices", handlers.Slip.HandleSelectSlipChoice)
	slipGroup.PUT("/:id/options", handlers.Slip.HandleSetSlipOption)
	slipGroup.POST("/:id/reset", handlers.Slip.HandleResetSlipValues)
	slipGroup.GET("/:id/status", handlers.Slip.HandleSlipStatus)
	slipGroup.GET("/:id/status/stream", handlers.Slip.HandleSlipStatusStream)
	slipGroup.DELETE("/:id", handlers.Slip.HandleCloseSlipSession)
}

// SetupMiddleware configures common middleware
func SetupMiddleware(e *echo.Echo) {
	// Use custom error handler
	e.HTTPErrorHandler = ErrorHandler
}

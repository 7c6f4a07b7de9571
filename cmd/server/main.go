package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/tailorpro/backend/internal/api"
	"github.com/tailorpro/backend/internal/config"
	"github.com/tailorpro/backend/internal/designer"
	"github.com/tailorpro/backend/internal/models"
	"github.com/tailorpro/backend/internal/slip"
	"github.com/tailorpro/backend/internal/storage"
	"github.com/tailorpro/backend/internal/store"
)

// Version info (set during build)
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// Get the executable's directory for config resolution
	exePath, err := os.Executable()
	if err != nil {
		fmt.Printf("Failed to get executable path: %v\n", err)
		os.Exit(1)
	}
	exeDir := filepath.Dir(exePath)

	// Load XML configuration
	configPath := filepath.Join(exeDir, "TailorPro.config")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Ensure all data directories exist
	if err := cfg.EnsureDirectories(); err != nil {
		fmt.Printf("Failed to create directories: %v\n", err)
		os.Exit(1)
	}

	// Open the shop database
	db, err := store.Open(cfg.Storage.DatabaseFile)
	if err != nil {
		fmt.Printf("Failed to open database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// Seed the settings row and worker roster on first run
	if err := seedShopDefaults(db, cfg.Storage.DefaultsFile); err != nil {
		fmt.Printf("Warning: failed to seed shop defaults: %v\n", err)
	}

	// Initialize the layout archive
	archive, err := storage.NewLocalStore(cfg.Storage.LayoutsDirectory)
	if err != nil {
		fmt.Printf("Failed to initialize layout archive: %v\n", err)
		os.Exit(1)
	}

	// Initialize session managers
	slipMgr := slip.NewManager(db.Measurements, db.Customers, db.Settings)
	designerMgr := designer.NewManager(db.Settings)

	handlers := api.NewHandlers(&api.Dependencies{
		Customers:             db.Customers,
		Workers:               db.Workers,
		Orders:                db.Orders,
		Measurements:          db.Measurements,
		Settings:              db.Settings,
		Archive:               archive,
		SlipMgr:               slipMgr,
		DesignerMgr:           designerMgr,
		Version:               Version,
		RecentLayoutsLimit:    cfg.Printing.RecentLayoutsLimit,
		AllowCustomerDeletion: cfg.Security.AllowCustomerDeletion,
	})

	e := echo.New()
	e.HideBanner = true
	api.SetupMiddleware(e)

	// Configure middleware
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Skipper: func(c echo.Context) bool {
			if !cfg.Advanced.EnableRequestLogging {
				return true
			}
			path := c.Request().URL.Path
			return strings.HasSuffix(path, "/status") ||
				strings.HasSuffix(path, "/stream") ||
				path == "/health"
		},
	}))

	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 1024 * 4,
	}))

	e.Use(middleware.BodyLimit(cfg.Server.BodyLimit))

	// CORS configuration
	if cfg.Server.EnableCORS {
		origins := strings.Split(cfg.Server.AllowOrigins, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		if len(origins) == 0 || (len(origins) == 1 && origins[0] == "") {
			origins = []string{"*"}
		}
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: origins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
			AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept},
		}))
	}

	api.RegisterRoutes(e, handlers)

	// Configure server with settings from XML config
	s := &http.Server{
		Addr:        cfg.GetServerAddr(),
		ReadTimeout: time.Duration(cfg.Server.ReadTimeout) * time.Second,
		IdleTimeout: time.Duration(cfg.Server.IdleTimeout) * time.Second,
		// No write timeout; status streams stay open for the whole session
	}

	// Print startup banner
	fmt.Printf("\n")
	fmt.Printf("╔═══════════════════════════════════════════════════════════╗\n")
	fmt.Printf("║           TailorPro Measurement Slip Server               ║\n")
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Version:    %-45s║\n", Version)
	fmt.Printf("║  Build Time: %-45s║\n", BuildTime)
	fmt.Printf("╠═══════════════════════════════════════════════════════════╣\n")
	fmt.Printf("║  Config:    %-46s║\n", configPath)
	fmt.Printf("║  Listen:    http://%-38s║\n", cfg.GetServerAddr())
	fmt.Printf("║  Data Dir:  %-46s║\n", cfg.GetDataDir())
	fmt.Printf("╚═══════════════════════════════════════════════════════════╝\n")
	fmt.Printf("\n")

	go func() {
		if err := e.StartServer(s); err != nil && err != http.ErrServerClosed {
			fmt.Printf("Server stopped: %v\n", err)
		}
	}()

	// Wait for shutdown and flush any pending autosaves before exit
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		fmt.Printf("Shutdown error: %v\n", err)
	}
	slipMgr.CloseAll(ctx)
}

// seedShopDefaults fills an empty settings row and worker roster from the
// optional YAML defaults file. Existing data is never overwritten.
func seedShopDefaults(db *store.DB, defaultsPath string) error {
	defaults, err := config.LoadShopDefaults(defaultsPath)
	if err != nil {
		return err
	}
	if defaults == nil {
		return nil
	}
	ctx := context.Background()

	settings, err := db.Settings.Get(ctx)
	if err != nil {
		return err
	}
	if settings.ShopName == "" {
		settings.ShopName = defaults.ShopName
		settings.Address = defaults.Address
		settings.Phone1 = defaults.Phone1
		settings.Phone2 = defaults.Phone2
		if models.PageSize(defaults.PageSize).Valid() {
			settings.PageSize = models.PageSize(defaults.PageSize)
		}
		if err := db.Settings.Save(ctx, settings); err != nil {
			return err
		}
		fmt.Printf("[Seed] Settings initialized for %q\n", defaults.ShopName)
	}

	workers, err := db.Workers.List(ctx, "")
	if err != nil {
		return err
	}
	if len(workers) == 0 && len(defaults.Workers) > 0 {
		for _, w := range defaults.Workers {
			if _, err := db.Workers.Create(ctx, &models.Worker{
				Name:     w.Name,
				Role:     models.WorkerRole(w.Role),
				IsActive: true,
			}); err != nil {
				return err
			}
		}
		fmt.Printf("[Seed] %d workers created\n", len(defaults.Workers))
	}
	return nil
}

package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amnatp/taiyim/config"
	deliveryHttp "github.com/amnatp/taiyim/internal/delivery/http"
	"github.com/amnatp/taiyim/internal/delivery/http/handler"
	"github.com/amnatp/taiyim/internal/delivery/http/middleware"
	domainRepo "github.com/amnatp/taiyim/internal/domain/repository"
	"github.com/amnatp/taiyim/internal/infrastructure/catalog"
	"github.com/amnatp/taiyim/internal/infrastructure/storage"
	"github.com/amnatp/taiyim/internal/repository"
	"github.com/amnatp/taiyim/internal/usecase"
	"github.com/amnatp/taiyim/pkg/validator"

	"github.com/sirupsen/logrus"
)

// App holds all dependencies for the application
type App struct {
	Config  *config.Config
	Durable *storage.SQLite
	Server  *http.Server
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Setup logger
	setupLogger()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg
	logrus.Info("Configuration loaded successfully")

	// Open storage mediums. A failing durable medium is not fatal: the
	// session degrades to memory-only operation.
	syncMedium := storage.NewMemory()
	var asyncMedium domainRepo.AsyncMedium
	durable, err := storage.NewSQLite(cfg.Store.Path)
	if err != nil {
		logrus.Warnf("Durable store unavailable, running memory-only: %v", err)
	} else {
		app.Durable = durable
		asyncMedium = durable
		logrus.Infof("Durable store opened at %s", cfg.Store.Path)
	}

	// Initialize all layers
	server, err := initializeServer(cfg, syncMedium, asyncMedium)
	if err != nil {
		return nil, err
	}
	app.Server = server

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	logrus.SetLevel(logrus.InfoLevel)
}

// initializeServer wires the data layer and creates the HTTP server
func initializeServer(cfg *config.Config, syncMedium domainRepo.SyncMedium, asyncMedium domainRepo.AsyncMedium) (*http.Server, error) {
	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize repository and hydrate the session cache from the durable
	// medium
	repo := repository.NewKeyValueRepository(syncMedium, asyncMedium, log)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repo.InitAndLoad(ctx); err != nil {
		return nil, fmt.Errorf("failed to hydrate session store: %w", err)
	}

	// Initialize usecases
	catalogClient := catalog.NewClient(cfg.Catalog)
	profileUsecase := usecase.NewProfileUsecase(repo, log)
	catalogUsecase := usecase.NewCatalogUsecase(repo, catalogClient, log)
	intakeUsecase := usecase.NewIntakeUsecase(repo, profileUsecase, log)
	exportUsecase := usecase.NewExportUsecase(repo, intakeUsecase, log)
	systemUsecase := usecase.NewSystemUsecase(repo, profileUsecase, intakeUsecase, catalogUsecase, log)

	// Build the session catalog and reconcile legacy day records into the
	// unified log
	catalogUsecase.Reload(ctx)
	if err := intakeUsecase.MigrateLegacyToUnified(ctx); err != nil {
		log.Warnf("Legacy intake migration failed: %v", err)
	}

	// Initialize handlers
	profileHandler := handler.NewProfileHandler(profileUsecase, customValidator)
	foodHandler := handler.NewFoodHandler(catalogUsecase, customValidator)
	intakeHandler := handler.NewIntakeHandler(intakeUsecase, catalogUsecase, customValidator)
	exportHandler := handler.NewExportHandler(exportUsecase, intakeUsecase)
	systemHandler := handler.NewSystemHandler(systemUsecase)

	// Initialize middleware
	corsMiddleware := middleware.NewCORSMiddleware()

	// Initialize router
	router := deliveryHttp.NewRouter(profileHandler, foodHandler, intakeHandler, exportHandler, systemHandler, corsMiddleware)
	httpRouter := router.Setup()

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:    serverAddr,
		Handler: httpRouter,
	}, nil
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes the durable store
func (app *App) Close() {
	if app.Durable != nil {
		if err := app.Durable.Close(); err != nil {
			logrus.Errorf("Failed to close durable store: %v", err)
		}
	}
}

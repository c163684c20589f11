package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/gudangkita/serial-validation/server/adapters"
	adaptermongo "github.com/gudangkita/serial-validation/server/adapters/mongo"
	adaptersheets "github.com/gudangkita/serial-validation/server/adapters/sheets"
	"github.com/gudangkita/serial-validation/server/domain/repositories"
	"github.com/gudangkita/serial-validation/server/internal/api"
	"github.com/gudangkita/serial-validation/server/internal/auth"
	"github.com/gudangkita/serial-validation/server/internal/config"
	"github.com/gudangkita/serial-validation/server/usecase"
)

func main() {
	godotenv.Load()

	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}

	// Initialize the row store backend
	store, cleanup, err := buildRowStore(cfg, logger)
	if err != nil {
		logger.Fatal("failed to initialize row store",
			zap.String("backend", cfg.StoreBackend),
			zap.Error(err))
	}

	// Initialize services
	tokenService := auth.NewService(cfg.JWTSecret, cfg.AuthUsername, cfg.AuthPassword)
	validationService := usecase.NewValidationService(store, cfg.Ruleset, cfg.RowRangeLock, logger)

	// Create Echo instance
	e := echo.New()

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Initialize API routes
	api.InitRoutes(e, tokenService, validationService, logger)

	// Start server
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("shutting down the server", zap.Error(err))
		}
	}()

	logger.Info("Server started",
		zap.String("port", cfg.Port),
		zap.String("store_backend", cfg.StoreBackend),
		zap.String("ruleset", cfg.Ruleset))

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if cleanup != nil {
		if err := cleanup(ctx); err != nil {
			logger.Error("Failed to close row store", zap.Error(err))
		}
	}

	logger.Info("Server exited")
}

// buildRowStore selects and initializes the configured backend. The
// returned cleanup releases backend connections on shutdown.
func buildRowStore(cfg *config.Config, logger *zap.Logger) (repositories.RowStore, func(context.Context) error, error) {
	switch cfg.StoreBackend {
	case config.BackendSheets:
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		svc, err := adaptersheets.NewService(ctx, cfg.GoogleSheetCredentials, cfg.SpreadsheetID, logger)
		if err != nil {
			return nil, nil, err
		}
		return adaptersheets.NewRowStore(svc, cfg.SpreadsheetID, cfg.WorksheetName, logger), nil, nil
	case config.BackendMongo:
		client, err := adaptermongo.NewClient(cfg.MongoURI, cfg.MongoDatabase, logger)
		if err != nil {
			return nil, nil, err
		}
		return adaptermongo.NewRowStore(client.Database), client.Close, nil
	default:
		return adapters.NewMemoryRowStore(), nil, nil
	}
}

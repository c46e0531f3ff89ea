package main

import (
	"fmt"
	"os"

	"stockqr/internal/config"
	"stockqr/internal/kv"
	"stockqr/internal/logger"
	"stockqr/internal/qr"
	"stockqr/internal/server"
	"stockqr/internal/store"
	"stockqr/internal/validator"
)

// @title           Stock QR API
// @version         1.0
// @description     Inventory tracking with QR-labelled products, stock movements and JSON backups.

// @host      localhost:8080
// @BasePath  /api/v1

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	validator.Register()

	// Open the document storage backend
	backend, closeBackend, err := kv.Open(appConfig)
	if err != nil {
		return fmt.Errorf("failed to open %s storage: %w", appConfig.StorageDriver, err)
	}
	defer func() {
		if err := closeBackend(); err != nil {
			log.Warnf("storage close error: %v", err)
		}
	}()

	// Initialize services
	s := store.New(backend, appConfig.KeyPrefix)
	renderer := qr.NewPNGRenderer(qr.Options{
		Size:       appConfig.QRSize,
		Foreground: appConfig.QRForeground,
		Background: appConfig.QRBackground,
	})
	router := server.New(server.NewServices(s, appConfig, renderer))

	log.Infof("Starting Stock QR server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}

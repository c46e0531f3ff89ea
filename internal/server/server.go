// Package server assembles the HTTP API: services, handlers, middleware and
// routes.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"stockqr/internal/config"
	_ "stockqr/internal/docs" // Import swagger docs
	"stockqr/internal/handlers"
	"stockqr/internal/middleware"
	"stockqr/internal/qr"
	"stockqr/internal/services"
	"stockqr/internal/store"
)

// Services bundles the service layer the router depends on.
type Services struct {
	Category  services.CategoryServicer
	Product   services.ProductServicer
	Stock     services.StockServicer
	Scan      services.ScanServicer
	QR        services.QRServicer
	Snapshot  services.SnapshotServicer
	Dashboard services.DashboardServicer
	Settings  services.SettingsServicer
}

// NewServices wires every service over one store.
func NewServices(s *store.Store, cfg *config.Config, renderer qr.Renderer) *Services {
	stock := services.NewStockService(s, cfg.TransactionLogCap)
	return &Services{
		Category:  services.NewCategoryService(s),
		Product:   services.NewProductService(s, cfg.DefaultMinStock),
		Stock:     stock,
		Scan:      services.NewScanService(s, stock, cfg.DefaultMinStock),
		QR:        services.NewQRService(s, renderer),
		Snapshot:  services.NewSnapshotService(s),
		Dashboard: services.NewDashboardService(s, cfg.DefaultMinStock),
		Settings:  services.NewSettingsService(s),
	}
}

// New builds the Gin engine with every route mounted.
func New(svc *Services) *gin.Engine {
	categoryHandler := handlers.NewCategoryHandler(svc.Category)
	productHandler := handlers.NewProductHandler(svc.Product, svc.QR)
	stockHandler := handlers.NewStockHandler(svc.Stock)
	scanHandler := handlers.NewScanHandler(svc.Scan)
	dashboardHandler := handlers.NewDashboardHandler(svc.Dashboard)
	settingsHandler := handlers.NewSettingsHandler(svc.Settings)
	backupHandler := handlers.NewBackupHandler(svc.Snapshot)

	router := gin.New()
	router.Use(middleware.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS())
	router.NoRoute(middleware.NotFound())

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/api/health", health)

	v1 := router.Group("/api/v1")
	v1.GET("/health", health)

	categories := v1.Group("/categories")
	categories.POST("", categoryHandler.CreateCategory)
	categories.GET("", categoryHandler.ListCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)
	categories.PUT("/:id", categoryHandler.UpdateCategory)
	categories.DELETE("/:id", categoryHandler.DeleteCategory)

	products := v1.Group("/products")
	products.POST("", productHandler.CreateProduct)
	products.GET("", productHandler.ListProducts)
	products.GET("/low-stock", productHandler.LowStockProducts)
	products.GET("/:id", productHandler.GetProductByID)
	products.PUT("/:id", productHandler.UpdateProduct)
	products.DELETE("/:id", productHandler.DeleteProduct)
	products.GET("/:id/qr", productHandler.ProductQR)
	products.GET("/:id/qr/payload", productHandler.ProductQRPayload)

	stock := v1.Group("/stock")
	stock.POST("/in", stockHandler.StockIn)
	stock.POST("/out", stockHandler.StockOut)
	v1.GET("/transactions", stockHandler.History)

	scan := v1.Group("/scan")
	scan.POST("/resolve", scanHandler.Resolve)
	scan.POST("/confirm", scanHandler.Confirm)

	v1.GET("/dashboard", dashboardHandler.Stats)

	v1.GET("/settings", settingsHandler.GetSettings)
	v1.PUT("/settings", settingsHandler.SaveSettings)

	backup := v1.Group("/backup")
	backup.GET("/export", backupHandler.Export)
	backup.POST("/import", backupHandler.Import)
	backup.DELETE("", backupHandler.Clear)

	return router
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

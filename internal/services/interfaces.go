package services

import (
	"context"

	"stockqr/internal/models"
	"stockqr/internal/pagination"
	"stockqr/internal/qr"
)

// CategoryServicer defines the contract for category-related business logic.
type CategoryServicer interface {
	CreateCategory(ctx context.Context, name, description string) (*models.Category, error)
	ListCategories(ctx context.Context) ([]models.CategoryView, error)
	GetCategoryByID(ctx context.Context, id string) (*models.CategoryView, error)
	UpdateCategory(ctx context.Context, id string, name, description *string) (*models.Category, error)
	DeleteCategory(ctx context.Context, id string) error
}

// ProductFilter holds optional filter parameters for listing products.
type ProductFilter struct {
	Search     string
	CategoryID string
}

// ProductServicer defines the contract for product-related business logic.
type ProductServicer interface {
	CreateProduct(ctx context.Context, input models.ProductPatch) (*models.Product, error)
	GetProductByID(ctx context.Context, id string) (*models.ProductView, error)
	ListProducts(ctx context.Context, filter ProductFilter, page pagination.PageRequest) (*pagination.PageResponse[models.ProductView], error)
	LowStockProducts(ctx context.Context) ([]models.ProductView, error)
	UpdateProduct(ctx context.Context, id string, input models.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

// TransactionFilter holds optional filter parameters for the movement log.
type TransactionFilter struct {
	Type      *models.MovementType
	ProductID string
}

// StockServicer defines the contract for the stock ledger.
type StockServicer interface {
	ApplyMovement(ctx context.Context, productID string, quantity int, direction models.MovementType) (*models.Product, error)
	RecordTransaction(ctx context.Context, productID string, movement models.MovementType, quantity int, notes string) (*models.Transaction, error)
	Move(ctx context.Context, productID string, direction models.MovementType, quantity int, notes string) (*models.Product, *models.Transaction, error)
	History(ctx context.Context, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.TransactionView], error)
}

// ScanServicer defines the contract for resolving scanned codes.
type ScanServicer interface {
	Resolve(ctx context.Context, decodedText string) (*models.ProductView, bool)
	Confirm(ctx context.Context, productID string, mode models.MovementType, quantity int) (*models.Product, *models.Transaction, error)
}

// QRServicer defines the contract for product label generation.
type QRServicer interface {
	ProductPayload(ctx context.Context, productID string) (string, error)
	ProductQR(ctx context.Context, productID string, opts qr.Options) ([]byte, error)
}

// ImportResult reports which collections an import replaced.
type ImportResult struct {
	Version      string   `json:"version"`
	Replaced     []string `json:"replaced"`
	Categories   int      `json:"categories"`
	Products     int      `json:"products"`
	Transactions int      `json:"transactions"`
}

// SnapshotServicer defines the contract for backup and restore.
type SnapshotServicer interface {
	Export(ctx context.Context) (*models.Snapshot, error)
	Import(ctx context.Context, snapshot *models.Snapshot) (*ImportResult, error)
	Clear(ctx context.Context) error
}

// DashboardServicer defines the contract for inventory statistics.
type DashboardServicer interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

// SettingsServicer defines the contract for the settings document.
type SettingsServicer interface {
	GetSettings(ctx context.Context) (models.Settings, error)
	SaveSettings(ctx context.Context, settings models.Settings) (models.Settings, error)
}

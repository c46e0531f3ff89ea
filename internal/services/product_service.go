package services

import (
	"context"
	"strings"

	apperrors "stockqr/internal/errors"
	"stockqr/internal/models"
	"stockqr/internal/pagination"
	"stockqr/internal/store"
)

// productService handles product-related business logic.
type productService struct {
	store           *store.Store
	defaultMinStock int
}

// NewProductService creates a new ProductServicer. defaultMinStock is the
// low-stock threshold applied when a product does not set one.
func NewProductService(s *store.Store, defaultMinStock int) ProductServicer {
	if defaultMinStock <= 0 {
		defaultMinStock = models.DefaultMinStock
	}
	return &productService{store: s, defaultMinStock: defaultMinStock}
}

// CreateProduct creates a product with zero stock. The category must exist.
func (s *productService) CreateProduct(ctx context.Context, input models.ProductPatch) (*models.Product, error) {
	input.ID = ""
	if input.Name == nil || strings.TrimSpace(*input.Name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "product name is required")
	}
	if input.CategoryID == nil || *input.CategoryID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category is required")
	}
	if err := s.normalize(&input); err != nil {
		return nil, err
	}
	if input.MinStock == nil {
		minStock := s.defaultMinStock
		input.MinStock = &minStock
	}

	s.store.Lock()
	defer s.store.Unlock()

	if _, found := s.store.Categories.FindByID(ctx, *input.CategoryID); !found {
		return nil, apperrors.ErrCategoryNotFound
	}

	product, ok := s.store.Products.Upsert(ctx, input)
	if !ok {
		return nil, apperrors.ErrStorageFailure
	}
	return &product, nil
}

// GetProductByID retrieves a product by ID
func (s *productService) GetProductByID(ctx context.Context, id string) (*models.ProductView, error) {
	s.store.Lock()
	defer s.store.Unlock()

	product, found := s.store.Products.FindByID(ctx, id)
	if !found {
		return nil, apperrors.ErrProductNotFound
	}
	view := productView(product, categoryNames(s.store.Categories.List(ctx)), s.defaultMinStock)
	return &view, nil
}

// ListProducts returns a filtered page of products in stored order.
func (s *productService) ListProducts(ctx context.Context, filter ProductFilter, page pagination.PageRequest) (*pagination.PageResponse[models.ProductView], error) {
	s.store.Lock()
	defer s.store.Unlock()

	names := categoryNames(s.store.Categories.List(ctx))
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	var views []models.ProductView
	for _, p := range s.store.Products.List(ctx) {
		if filter.CategoryID != "" && p.CategoryID != filter.CategoryID {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Barcode), search) {
			continue
		}
		views = append(views, productView(p, names, s.defaultMinStock))
	}

	result := pagination.Slice(views, page)
	return &result, nil
}

// LowStockProducts returns products whose stock is at or below their threshold.
func (s *productService) LowStockProducts(ctx context.Context) ([]models.ProductView, error) {
	s.store.Lock()
	defer s.store.Unlock()

	return lowStock(s.store.Products.List(ctx), categoryNames(s.store.Categories.List(ctx)), s.defaultMinStock), nil
}

// UpdateProduct merges input onto an existing product. Stock counters and the
// QR code are never changed here.
func (s *productService) UpdateProduct(ctx context.Context, id string, input models.ProductPatch) (*models.Product, error) {
	input.ID = id
	if input.Name != nil && strings.TrimSpace(*input.Name) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "product name cannot be empty")
	}
	if input.CategoryID != nil && *input.CategoryID == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category cannot be empty")
	}
	if err := s.normalize(&input); err != nil {
		return nil, err
	}

	s.store.Lock()
	defer s.store.Unlock()

	if _, found := s.store.Products.FindByID(ctx, id); !found {
		return nil, apperrors.ErrProductNotFound
	}
	if input.CategoryID != nil {
		if _, found := s.store.Categories.FindByID(ctx, *input.CategoryID); !found {
			return nil, apperrors.ErrCategoryNotFound
		}
	}

	product, ok := s.store.Products.Upsert(ctx, input)
	if !ok {
		return nil, apperrors.ErrStorageFailure
	}
	return &product, nil
}

// DeleteProduct removes a product. Its transactions are kept and show up as
// belonging to a deleted product. Deleting an unknown id succeeds.
func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	s.store.Lock()
	defer s.store.Unlock()

	if !s.store.Products.Remove(ctx, id) {
		return apperrors.ErrStorageFailure
	}
	return nil
}

// normalize trims text fields, rejects negative amounts and replaces a
// non-positive threshold with the default.
func (s *productService) normalize(input *models.ProductPatch) error {
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		input.Name = &name
	}
	if input.Barcode != nil {
		barcode := strings.TrimSpace(*input.Barcode)
		input.Barcode = &barcode
	}
	if input.Price != nil && input.Price.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "price cannot be negative")
	}
	if input.Cost != nil && input.Cost.IsNegative() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "cost cannot be negative")
	}
	if input.MinStock != nil && *input.MinStock <= 0 {
		minStock := s.defaultMinStock
		input.MinStock = &minStock
	}
	return nil
}

func lowStock(products []models.Product, names map[string]string, defaultMinStock int) []models.ProductView {
	views := make([]models.ProductView, 0)
	for _, p := range products {
		if p.IsLowStock(defaultMinStock) {
			views = append(views, productView(p, names, defaultMinStock))
		}
	}
	return views
}

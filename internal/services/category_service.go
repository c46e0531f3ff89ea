package services

import (
	"context"
	"strings"

	apperrors "stockqr/internal/errors"
	"stockqr/internal/models"
	"stockqr/internal/store"
)

// categoryService handles category-related business logic.
type categoryService struct {
	store *store.Store
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(s *store.Store) CategoryServicer {
	return &categoryService{store: s}
}

// CreateCategory creates a new category
func (s *categoryService) CreateCategory(ctx context.Context, name, description string) (*models.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name is required")
	}
	description = strings.TrimSpace(description)

	s.store.Lock()
	defer s.store.Unlock()

	category, ok := s.store.Categories.Upsert(ctx, models.CategoryPatch{Name: &name, Description: &description})
	if !ok {
		return nil, apperrors.ErrStorageFailure
	}
	return &category, nil
}

// ListCategories returns every category with its product count.
func (s *categoryService) ListCategories(ctx context.Context) ([]models.CategoryView, error) {
	s.store.Lock()
	defer s.store.Unlock()

	counts := s.productCounts(ctx)
	categories := s.store.Categories.List(ctx)

	views := make([]models.CategoryView, 0, len(categories))
	for _, c := range categories {
		views = append(views, models.CategoryView{Category: c, ProductCount: counts[c.ID]})
	}
	return views, nil
}

// GetCategoryByID retrieves a category by ID
func (s *categoryService) GetCategoryByID(ctx context.Context, id string) (*models.CategoryView, error) {
	s.store.Lock()
	defer s.store.Unlock()

	category, found := s.store.Categories.FindByID(ctx, id)
	if !found {
		return nil, apperrors.ErrCategoryNotFound
	}
	return &models.CategoryView{Category: category, ProductCount: s.productCounts(ctx)[id]}, nil
}

// UpdateCategory updates an existing category. Nil fields are left as is.
func (s *categoryService) UpdateCategory(ctx context.Context, id string, name, description *string) (*models.Category, error) {
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "category name cannot be empty")
		}
		name = &trimmed
	}
	if description != nil {
		trimmed := strings.TrimSpace(*description)
		description = &trimmed
	}

	s.store.Lock()
	defer s.store.Unlock()

	if _, found := s.store.Categories.FindByID(ctx, id); !found {
		return nil, apperrors.ErrCategoryNotFound
	}

	category, ok := s.store.Categories.Upsert(ctx, models.CategoryPatch{ID: id, Name: name, Description: description})
	if !ok {
		return nil, apperrors.ErrStorageFailure
	}
	return &category, nil
}

// DeleteCategory deletes a category that no product references. Deleting an
// unknown id succeeds without writing.
func (s *categoryService) DeleteCategory(ctx context.Context, id string) error {
	s.store.Lock()
	defer s.store.Unlock()

	if n := s.productCounts(ctx)[id]; n > 0 {
		return apperrors.ErrCategoryInUse
	}
	if !s.store.Categories.Remove(ctx, id) {
		return apperrors.ErrStorageFailure
	}
	return nil
}

func (s *categoryService) productCounts(ctx context.Context) map[string]int {
	counts := make(map[string]int)
	for _, p := range s.store.Products.List(ctx) {
		counts[p.CategoryID]++
	}
	return counts
}

package services

import (
	"context"
	"testing"

	"stockqr/internal/testutil"
)

func strPtr(s string) *string { return &s }

func TestCreateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("valid", func(t *testing.T) {
		s, _ := testutil.SetupTestStore(t)
		svc := NewCategoryService(s)

		cat, err := svc.CreateCategory(ctx, "  Beverages ", "Cold drinks")
		testutil.AssertNoError(t, err)

		if cat.ID == "" {
			t.Fatal("expected category ID")
		}
		if cat.Name != "Beverages" {
			t.Errorf("expected trimmed name Beverages, got %q", cat.Name)
		}
		if cat.Description != "Cold drinks" {
			t.Errorf("expected description 'Cold drinks', got %q", cat.Description)
		}
		if cat.CreatedAt.IsZero() {
			t.Error("expected createdAt to be set")
		}
	})

	t.Run("blank_name", func(t *testing.T) {
		s, _ := testutil.SetupTestStore(t)
		svc := NewCategoryService(s)

		_, err := svc.CreateCategory(ctx, "   ", "")
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("storage_failure", func(t *testing.T) {
		s, backend := testutil.SetupTestStore(t)
		svc := NewCategoryService(s)
		backend.FailWrites(true)

		_, err := svc.CreateCategory(ctx, "Snacks", "")
		testutil.AssertAppError(t, err, "STORAGE_FAILURE")
	})
}

func TestListCategories(t *testing.T) {
	ctx := context.Background()
	s, _ := testutil.SetupTestStore(t)
	svc := NewCategoryService(s)

	used := testutil.CreateTestCategory(t, s)
	empty := testutil.CreateTestCategory(t, s)
	testutil.CreateTestProduct(t, s, used.ID)
	testutil.CreateTestProduct(t, s, used.ID)

	views, err := svc.ListCategories(ctx)
	testutil.AssertNoError(t, err)

	if len(views) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(views))
	}
	if views[0].ID != used.ID || views[0].ProductCount != 2 {
		t.Errorf("expected %s with 2 products, got %s with %d", used.ID, views[0].ID, views[0].ProductCount)
	}
	if views[1].ID != empty.ID || views[1].ProductCount != 0 {
		t.Errorf("expected %s with 0 products, got %s with %d", empty.ID, views[1].ID, views[1].ProductCount)
	}
}

func TestGetCategoryByID(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		s, _ := testutil.SetupTestStore(t)
		svc := NewCategoryService(s)
		cat := testutil.CreateTestCategory(t, s)
		testutil.CreateTestProduct(t, s, cat.ID)

		view, err := svc.GetCategoryByID(ctx, cat.ID)
		testutil.AssertNoError(t, err)
		if view.Name != cat.Name || view.ProductCount != 1 {
			t.Errorf("unexpected view: %+v", view)
		}
	})

	t.Run("not_found", func(t *testing.T) {
		s, _ := testutil.SetupTestStore(t)
		svc := NewCategoryService(s)

		_, err := svc.GetCategoryByID(ctx, "missing")
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
	})
}

func TestUpdateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("partial_update_keeps_other_fields", func(t *testing.T) {
		s, _ := testutil.SetupTestStore(t)
		svc := NewCategoryService(s)
		cat, err := svc.CreateCategory(ctx, "Food", "Dry goods")
		testutil.AssertNoError(t, err)

		updated, err := svc.UpdateCategory(ctx, cat.ID, strPtr("Groceries"), nil)
		testutil.AssertNoError(t, err)

		if updated.Name != "Groceries" {
			t.Errorf("expected name Groceries, got %s", updated.Name)
		}
		if updated.Description != "Dry goods" {
			t.Errorf("expected description preserved, got %q", updated.Description)
		}
		if !updated.CreatedAt.Equal(cat.CreatedAt) {
			t.Error("createdAt must not change on update")
		}
	})

	t.Run("not_found", func(t *testing.T) {
		s, _ := testutil.SetupTestStore(t)
		svc := NewCategoryService(s)

		_, err := svc.UpdateCategory(ctx, "missing", strPtr("X"), nil)
		testutil.AssertAppError(t, err, "CATEGORY_NOT_FOUND")
		if n := len(s.Categories.List(ctx)); n != 0 {
			t.Errorf("update of unknown id must not create a record, got %d", n)
		}
	})

	t.Run("blank_name", func(t *testing.T) {
		s, _ := testutil.SetupTestStore(t)
		svc := NewCategoryService(s)
		cat := testutil.CreateTestCategory(t, s)

		_, err := svc.UpdateCategory(ctx, cat.ID, strPtr(" "), nil)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})
}

func TestDeleteCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("in_use", func(t *testing.T) {
		s, _ := testutil.SetupTestStore(t)
		svc := NewCategoryService(s)
		cat := testutil.CreateTestCategory(t, s)
		testutil.CreateTestProduct(t, s, cat.ID)

		err := svc.DeleteCategory(ctx, cat.ID)
		testutil.AssertAppError(t, err, "CATEGORY_IN_USE")

		if _, found := s.Categories.FindByID(ctx, cat.ID); !found {
			t.Error("category in use must not be deleted")
		}
	})

	t.Run("unused", func(t *testing.T) {
		s, _ := testutil.SetupTestStore(t)
		svc := NewCategoryService(s)
		cat := testutil.CreateTestCategory(t, s)

		testutil.AssertNoError(t, svc.DeleteCategory(ctx, cat.ID))

		views, err := svc.ListCategories(ctx)
		testutil.AssertNoError(t, err)
		if len(views) != 0 {
			t.Errorf("expected no categories, got %d", len(views))
		}
	})

	t.Run("unknown_id_is_noop", func(t *testing.T) {
		s, _ := testutil.SetupTestStore(t)
		svc := NewCategoryService(s)
		testutil.CreateTestCategory(t, s)

		testutil.AssertNoError(t, svc.DeleteCategory(ctx, "missing"))
		if n := len(s.Categories.List(ctx)); n != 1 {
			t.Errorf("expected 1 category, got %d", n)
		}
	})
}

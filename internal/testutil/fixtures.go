package testutil

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"

	"stockqr/internal/models"
	"stockqr/internal/store"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestCategory creates a category with a unique name.
func CreateTestCategory(t *testing.T, s *store.Store) *models.Category {
	t.Helper()

	name := fmt.Sprintf("Test Category %d", nextID())
	category, ok := s.Categories.Upsert(context.Background(), models.CategoryPatch{Name: &name})
	if !ok {
		t.Fatal("failed to create test category")
	}
	return &category
}

// CreateTestProduct creates a product with zero stock in the given category.
func CreateTestProduct(t *testing.T, s *store.Store, categoryID string) *models.Product {
	t.Helper()

	n := nextID()
	name := fmt.Sprintf("Test Product %d", n)
	barcode := fmt.Sprintf("6281000%06d", n)
	price := decimal.NewFromInt(15)
	cost := decimal.NewFromInt(10)

	product, ok := s.Products.Upsert(context.Background(), models.ProductPatch{
		CategoryID: &categoryID,
		Name:       &name,
		Barcode:    &barcode,
		Price:      &price,
		Cost:       &cost,
	})
	if !ok {
		t.Fatal("failed to create test product")
	}
	return &product
}

// CreateTestProductWithStock creates a product whose counters record one
// inbound movement of stock units. No transaction is logged.
func CreateTestProductWithStock(t *testing.T, s *store.Store, categoryID string, stock int) *models.Product {
	t.Helper()

	product := CreateTestProduct(t, s, categoryID)
	if stock == 0 {
		return product
	}

	ctx := context.Background()
	products := s.Products.List(ctx)
	for i := range products {
		if products[i].ID == product.ID {
			products[i].Apply(models.MovementIn, stock, s.Now())
			*product = products[i]
		}
	}
	if !s.Products.Replace(ctx, products) {
		t.Fatal("failed to stock test product")
	}
	return product
}

// CreateTestTransaction appends a log entry without touching product counters.
func CreateTestTransaction(t *testing.T, s *store.Store, productID string, movement models.MovementType, quantity int) *models.Transaction {
	t.Helper()

	ctx := context.Background()
	tx := models.Transaction{
		ID:        s.NewID(),
		ProductID: productID,
		Type:      movement,
		Quantity:  quantity,
		Notes:     fmt.Sprintf("fixture %d", nextID()),
		Timestamp: s.Now(),
	}
	log := append([]models.Transaction{tx}, s.Transactions.List(ctx)...)
	if !s.Transactions.Replace(ctx, log) {
		t.Fatal("failed to create test transaction")
	}
	return &tx
}

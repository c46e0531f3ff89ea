package services

import (
	"context"

	"github.com/shopspring/decimal"

	"stockqr/internal/models"
	"stockqr/internal/store"
)

// recentTransactionLimit is how many log entries the dashboard shows.
const recentTransactionLimit = 10

// dashboardService computes inventory statistics.
type dashboardService struct {
	store           *store.Store
	defaultMinStock int
}

// NewDashboardService creates a new DashboardServicer.
func NewDashboardService(s *store.Store, defaultMinStock int) DashboardServicer {
	if defaultMinStock <= 0 {
		defaultMinStock = models.DefaultMinStock
	}
	return &dashboardService{store: s, defaultMinStock: defaultMinStock}
}

// Stats summarizes counts, movement totals, stock value, low-stock products
// and the most recent movements.
func (s *dashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	s.store.Lock()
	defer s.store.Unlock()

	categories := s.store.Categories.List(ctx)
	products := s.store.Products.List(ctx)
	log := s.store.Transactions.List(ctx)

	stats := &models.DashboardStats{
		TotalProducts:   len(products),
		TotalCategories: len(categories),
		TotalRecords:    len(products) + len(categories) + len(log),
		StockValue:      decimal.Zero,
		GeneratedAt:     s.store.Now(),
	}
	for _, p := range products {
		stats.TotalIn += p.TotalIn
		stats.TotalOut += p.TotalOut
		stats.StockValue = stats.StockValue.Add(p.Cost.Mul(decimal.NewFromInt(int64(p.Stock))))
	}

	stats.LowStock = lowStock(products, categoryNames(categories), s.defaultMinStock)

	recent := log
	if len(recent) > recentTransactionLimit {
		recent = recent[:recentTransactionLimit]
	}
	stats.RecentTransactions = transactionViews(recent, products)

	return stats, nil
}

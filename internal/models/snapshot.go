package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SnapshotVersion is written into every export.
const SnapshotVersion = "1.0"

// Snapshot is a full backup of the three collections. On import a nil slice
// means the key was absent and the stored collection is kept; an empty slice
// replaces it with nothing.
type Snapshot struct {
	Version      string        `json:"version,omitempty"`
	ExportDate   time.Time     `json:"exportDate"`
	Categories   []Category    `json:"categories"`
	Products     []Product     `json:"products"`
	Transactions []Transaction `json:"transactions"`
}

// Settings is the reserved free-form settings document.
type Settings map[string]interface{}

// DashboardStats summarizes the inventory.
type DashboardStats struct {
	TotalProducts      int               `json:"totalProducts"`
	TotalCategories    int               `json:"totalCategories"`
	TotalIn            int               `json:"totalIn"`
	TotalOut           int               `json:"totalOut"`
	TotalRecords       int               `json:"totalRecords"`
	StockValue         decimal.Decimal   `json:"stockValue"`
	LowStock           []ProductView     `json:"lowStock"`
	RecentTransactions []TransactionView `json:"recentTransactions"`
	GeneratedAt        time.Time         `json:"generatedAt"`
}

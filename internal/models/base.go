// Package models defines the records persisted by the inventory store, the
// patches that create and update them, and the derived read views.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices are written as JSON numbers, matching existing backups.
	decimal.MarshalJSONWithoutQuotes = true
}

// Entity is a record stored in a collection.
type Entity interface {
	EntityID() string
}

// DefaultMinStock is the low-stock threshold used when a product has none.
const DefaultMinStock = 10

func stamp(now time.Time) time.Time {
	return now.UTC()
}

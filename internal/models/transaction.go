package models

import "time"

// MovementType is the direction of a stock movement.
type MovementType string

const (
	MovementIn  MovementType = "in"
	MovementOut MovementType = "out"
)

// Valid reports whether t is a known direction.
func (t MovementType) Valid() bool {
	return t == MovementIn || t == MovementOut
}

// Transaction is an immutable entry in the stock movement log.
type Transaction struct {
	ID        string       `json:"id"`
	ProductID string       `json:"productId"`
	Type      MovementType `json:"type"`
	Quantity  int          `json:"quantity"`
	Notes     string       `json:"notes"`
	Timestamp time.Time    `json:"timestamp"`
}

func (t Transaction) EntityID() string { return t.ID }

// TransactionView is a log entry with the name of its product. Entries whose
// product was deleted are flagged instead of failing.
type TransactionView struct {
	Transaction
	ProductName    string `json:"productName"`
	ProductDeleted bool   `json:"productDeleted"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// QRCodePrefix is prepended to a product id to form its QR code.
const QRCodePrefix = "PRD-"

// Product is a stocked item. Stock, TotalIn and TotalOut only change through
// stock movements; Stock always equals TotalIn - TotalOut.
type Product struct {
	ID         string          `json:"id"`
	QRCode     string          `json:"qrCode"`
	CategoryID string          `json:"categoryId"`
	Name       string          `json:"name"`
	Barcode    string          `json:"barcode"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
	MinStock   int             `json:"minStock"`
	Stock      int             `json:"stock"`
	TotalIn    int             `json:"totalIn"`
	TotalOut   int             `json:"totalOut"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  *time.Time      `json:"updatedAt,omitempty"`
}

func (p Product) EntityID() string { return p.ID }

// Threshold returns the product's low-stock threshold, or fallback when the
// product does not define one.
func (p Product) Threshold(fallback int) int {
	if p.MinStock > 0 {
		return p.MinStock
	}
	return fallback
}

// IsLowStock reports whether stock is at or below the threshold.
func (p Product) IsLowStock(fallback int) bool {
	return p.Stock <= p.Threshold(fallback)
}

// Apply records a movement of quantity units on the counters.
func (p *Product) Apply(direction MovementType, quantity int, now time.Time) {
	switch direction {
	case MovementIn:
		p.Stock += quantity
		p.TotalIn += quantity
	case MovementOut:
		p.Stock -= quantity
		p.TotalOut += quantity
	}
	t := stamp(now)
	p.UpdatedAt = &t
}

// ProductPatch carries the attributes a product save may set. Counters and
// the QR code are not part of it.
type ProductPatch struct {
	ID         string           `json:"id,omitempty"`
	CategoryID *string          `json:"categoryId,omitempty"`
	Name       *string          `json:"name,omitempty"`
	Barcode    *string          `json:"barcode,omitempty"`
	Price      *decimal.Decimal `json:"price,omitempty"`
	Cost       *decimal.Decimal `json:"cost,omitempty"`
	MinStock   *int             `json:"minStock,omitempty"`
}

func (p ProductPatch) PatchID() string { return p.ID }

func (p ProductPatch) ApplyTo(prod *Product) {
	if p.CategoryID != nil {
		prod.CategoryID = *p.CategoryID
	}
	if p.Name != nil {
		prod.Name = *p.Name
	}
	if p.Barcode != nil {
		prod.Barcode = *p.Barcode
	}
	if p.Price != nil {
		prod.Price = *p.Price
	}
	if p.Cost != nil {
		prod.Cost = *p.Cost
	}
	if p.MinStock != nil {
		prod.MinStock = *p.MinStock
	}
}

// Build creates a new product with zeroed counters and a derived QR code.
func (p ProductPatch) Build(id string, now time.Time) Product {
	prod := Product{
		ID:        id,
		QRCode:    QRCodePrefix + id,
		MinStock:  DefaultMinStock,
		CreatedAt: stamp(now),
	}
	p.ApplyTo(&prod)
	if prod.MinStock <= 0 {
		prod.MinStock = DefaultMinStock
	}
	return prod
}

// ProductView is a product with display fields derived from other records.
type ProductView struct {
	Product
	CategoryName string `json:"categoryName"`
	LowStock     bool   `json:"lowStock"`
}

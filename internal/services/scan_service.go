package services

import (
	"context"

	"stockqr/internal/models"
	"stockqr/internal/qr"
	"stockqr/internal/store"
)

// ScanNotes is the note attached to movements confirmed from a scan.
const ScanNotes = "via QR scanner"

// scanService maps decoded scanner text to products.
type scanService struct {
	store           *store.Store
	stock           StockServicer
	defaultMinStock int
}

// NewScanService creates a new ScanServicer. Confirmed scans are recorded
// through stock.
func NewScanService(s *store.Store, stock StockServicer, defaultMinStock int) ScanServicer {
	if defaultMinStock <= 0 {
		defaultMinStock = models.DefaultMinStock
	}
	return &scanService{store: s, stock: stock, defaultMinStock: defaultMinStock}
}

// Resolve finds the product a scanned code refers to. The payload id is
// tried first, then its QR code. Unresolved text is not an error.
func (s *scanService) Resolve(ctx context.Context, decodedText string) (*models.ProductView, bool) {
	payload := qr.ParsePayload(decodedText)

	s.store.Lock()
	defer s.store.Unlock()

	var product models.Product
	found := false
	if payload.ID != "" {
		product, found = s.store.Products.FindByID(ctx, payload.ID)
	}
	if !found && payload.QRCode != "" {
		product, found = s.store.Products.Find(ctx, func(p models.Product) bool {
			return p.QRCode == payload.QRCode
		})
	}
	if !found {
		return nil, false
	}

	view := productView(product, categoryNames(s.store.Categories.List(ctx)), s.defaultMinStock)
	return &view, true
}

// Confirm records the movement for a resolved scan. A zero quantity counts
// as one unit.
func (s *scanService) Confirm(ctx context.Context, productID string, mode models.MovementType, quantity int) (*models.Product, *models.Transaction, error) {
	if quantity == 0 {
		quantity = 1
	}
	return s.stock.Move(ctx, productID, mode, quantity, ScanNotes)
}

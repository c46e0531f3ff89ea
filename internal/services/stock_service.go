package services

import (
	"context"
	"strings"

	apperrors "stockqr/internal/errors"
	"stockqr/internal/logger"
	"stockqr/internal/models"
	"stockqr/internal/pagination"
	"stockqr/internal/store"
)

// DefaultTransactionLogCap is the number of log entries kept when no cap is
// configured.
const DefaultTransactionLogCap = 1000

// stockService is the stock ledger: it owns product counters and the
// movement log.
type stockService struct {
	store  *store.Store
	logCap int
}

// NewStockService creates a new StockServicer keeping at most logCap
// transactions.
func NewStockService(s *store.Store, logCap int) StockServicer {
	if logCap <= 0 {
		logCap = DefaultTransactionLogCap
	}
	return &stockService{store: s, logCap: logCap}
}

// ApplyMovement updates the counters of a product without logging a
// transaction. An outbound movement larger than the current stock is
// rejected.
func (s *stockService) ApplyMovement(ctx context.Context, productID string, quantity int, direction models.MovementType) (*models.Product, error) {
	if err := validateMovement(direction, quantity); err != nil {
		return nil, err
	}

	s.store.Lock()
	defer s.store.Unlock()

	products, idx, err := s.applyLocked(ctx, productID, quantity, direction)
	if err != nil {
		return nil, err
	}
	if !s.store.Products.Replace(ctx, products) {
		return nil, apperrors.ErrStorageFailure
	}
	product := products[idx]
	return &product, nil
}

// RecordTransaction prepends an entry to the movement log, evicting the
// oldest entries beyond the cap. The product is not checked.
func (s *stockService) RecordTransaction(ctx context.Context, productID string, movement models.MovementType, quantity int, notes string) (*models.Transaction, error) {
	if err := validateMovement(movement, quantity); err != nil {
		return nil, err
	}

	s.store.Lock()
	defer s.store.Unlock()

	tx, log := s.appendLocked(ctx, productID, movement, quantity, notes)
	if !s.store.Transactions.Replace(ctx, log) {
		return nil, apperrors.ErrStorageFailure
	}
	return &tx, nil
}

// Move applies a movement and logs it in a single commit, so the counters and
// the log either both change or neither does.
func (s *stockService) Move(ctx context.Context, productID string, direction models.MovementType, quantity int, notes string) (*models.Product, *models.Transaction, error) {
	if err := validateMovement(direction, quantity); err != nil {
		return nil, nil, err
	}

	s.store.Lock()
	defer s.store.Unlock()

	products, idx, err := s.applyLocked(ctx, productID, quantity, direction)
	if err != nil {
		return nil, nil, err
	}
	tx, log := s.appendLocked(ctx, productID, direction, quantity, notes)

	productsWrite, ok := s.store.Products.Stage(products)
	if !ok {
		return nil, nil, apperrors.ErrStorageFailure
	}
	logWrite, ok := s.store.Transactions.Stage(log)
	if !ok {
		return nil, nil, apperrors.ErrStorageFailure
	}
	if !s.store.Commit(ctx, productsWrite, logWrite) {
		return nil, nil, apperrors.ErrStorageFailure
	}

	product := products[idx]
	logger.Get().Debugw("Stock moved",
		"product_id", productID,
		"type", direction,
		"quantity", quantity,
		"stock", product.Stock,
	)
	return &product, &tx, nil
}

// History returns a page of the movement log, newest first.
func (s *stockService) History(ctx context.Context, filter TransactionFilter, page pagination.PageRequest) (*pagination.PageResponse[models.TransactionView], error) {
	if filter.Type != nil && !filter.Type.Valid() {
		return nil, apperrors.ErrInvalidMovementType
	}

	s.store.Lock()
	defer s.store.Unlock()

	var entries []models.Transaction
	for _, tx := range s.store.Transactions.List(ctx) {
		if filter.Type != nil && tx.Type != *filter.Type {
			continue
		}
		if filter.ProductID != "" && tx.ProductID != filter.ProductID {
			continue
		}
		entries = append(entries, tx)
	}

	result := pagination.Slice(transactionViews(entries, s.store.Products.List(ctx)), page)
	return &result, nil
}

// applyLocked returns the product list with the movement applied to the
// product at idx. The caller holds the store lock.
func (s *stockService) applyLocked(ctx context.Context, productID string, quantity int, direction models.MovementType) ([]models.Product, int, error) {
	products := s.store.Products.List(ctx)
	for i := range products {
		if products[i].ID != productID {
			continue
		}
		if direction == models.MovementOut && quantity > products[i].Stock {
			return nil, 0, apperrors.ErrInsufficientStock
		}
		products[i].Apply(direction, quantity, s.store.Now())
		return products, i, nil
	}
	return nil, 0, apperrors.ErrProductNotFound
}

// appendLocked builds a transaction and the capped log that starts with it.
func (s *stockService) appendLocked(ctx context.Context, productID string, movement models.MovementType, quantity int, notes string) (models.Transaction, []models.Transaction) {
	tx := models.Transaction{
		ID:        s.store.NewID(),
		ProductID: productID,
		Type:      movement,
		Quantity:  quantity,
		Notes:     strings.TrimSpace(notes),
		Timestamp: s.store.Now(),
	}

	current := s.store.Transactions.List(ctx)
	log := make([]models.Transaction, 0, len(current)+1)
	log = append(log, tx)
	log = append(log, current...)
	if len(log) > s.logCap {
		log = log[:s.logCap]
	}
	return tx, log
}

func validateMovement(direction models.MovementType, quantity int) error {
	if !direction.Valid() {
		return apperrors.ErrInvalidMovementType
	}
	if quantity <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "quantity must be a positive integer")
	}
	return nil
}

package services

import (
	"context"
	"strconv"
	"strings"

	apperrors "stockqr/internal/errors"
	"stockqr/internal/logger"
	"stockqr/internal/models"
	"stockqr/internal/store"
)

// snapshotService handles backup and restore of the whole inventory.
type snapshotService struct {
	store *store.Store
}

// NewSnapshotService creates a new SnapshotServicer.
func NewSnapshotService(s *store.Store) SnapshotServicer {
	return &snapshotService{store: s}
}

// Export returns a point-in-time copy of all three collections.
func (s *snapshotService) Export(ctx context.Context) (*models.Snapshot, error) {
	s.store.Lock()
	defer s.store.Unlock()

	return &models.Snapshot{
		Version:      models.SnapshotVersion,
		ExportDate:   s.store.Now(),
		Categories:   s.store.Categories.List(ctx),
		Products:     s.store.Products.List(ctx),
		Transactions: s.store.Transactions.List(ctx),
	}, nil
}

// Import replaces every collection present in the snapshot and leaves the
// others untouched. All replacements are committed together. Snapshots from
// an unsupported version are rejected before anything is written.
func (s *snapshotService) Import(ctx context.Context, snapshot *models.Snapshot) (*ImportResult, error) {
	if snapshot == nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "backup document is required")
	}
	version, err := checkSnapshotVersion(snapshot.Version)
	if err != nil {
		return nil, err
	}

	s.store.Lock()
	defer s.store.Unlock()

	result := &ImportResult{Version: version, Replaced: []string{}}
	var writes []store.Write

	if snapshot.Categories != nil {
		w, ok := s.store.Categories.Stage(snapshot.Categories)
		if !ok {
			return nil, apperrors.ErrStorageFailure
		}
		writes = append(writes, w)
		result.Replaced = append(result.Replaced, "categories")
		result.Categories = len(snapshot.Categories)
	}
	if snapshot.Products != nil {
		w, ok := s.store.Products.Stage(snapshot.Products)
		if !ok {
			return nil, apperrors.ErrStorageFailure
		}
		writes = append(writes, w)
		result.Replaced = append(result.Replaced, "products")
		result.Products = len(snapshot.Products)
	}
	if snapshot.Transactions != nil {
		w, ok := s.store.Transactions.Stage(snapshot.Transactions)
		if !ok {
			return nil, apperrors.ErrStorageFailure
		}
		writes = append(writes, w)
		result.Replaced = append(result.Replaced, "transactions")
		result.Transactions = len(snapshot.Transactions)
	}

	if !s.store.Commit(ctx, writes...) {
		return nil, apperrors.ErrStorageFailure
	}

	logger.Get().Infow("Backup imported",
		"version", version,
		"replaced", result.Replaced,
	)
	return result, nil
}

// Clear removes all stored documents, settings included.
func (s *snapshotService) Clear(ctx context.Context) error {
	s.store.Lock()
	defer s.store.Unlock()

	if !s.store.Clear(ctx) {
		return apperrors.ErrStorageFailure
	}
	logger.Get().Warn("All inventory data cleared")
	return nil
}

// checkSnapshotVersion accepts any 1.x version. A missing version is read as
// the current one.
func checkSnapshotVersion(version string) (string, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return models.SnapshotVersion, nil
	}

	major, _, _ := strings.Cut(version, ".")
	if n, err := strconv.Atoi(major); err == nil && n == 1 {
		return version, nil
	}
	return "", apperrors.WithMessage(apperrors.ErrUnsupportedSnapshotVersion,
		"backup version "+strconv.Quote(version)+" is not supported")
}

package services

import (
	"context"

	apperrors "stockqr/internal/errors"
	"stockqr/internal/models"
	"stockqr/internal/store"
)

// settingsService reads and writes the settings document.
type settingsService struct {
	store *store.Store
}

// NewSettingsService creates a new SettingsServicer.
func NewSettingsService(s *store.Store) SettingsServicer {
	return &settingsService{store: s}
}

func (s *settingsService) GetSettings(ctx context.Context) (models.Settings, error) {
	s.store.Lock()
	defer s.store.Unlock()

	return s.store.Settings(ctx), nil
}

func (s *settingsService) SaveSettings(ctx context.Context, settings models.Settings) (models.Settings, error) {
	if settings == nil {
		settings = models.Settings{}
	}

	s.store.Lock()
	defer s.store.Unlock()

	if !s.store.SaveSettings(ctx, settings) {
		return nil, apperrors.ErrStorageFailure
	}
	return settings, nil
}

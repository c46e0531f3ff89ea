// Package store keeps the inventory collections and the settings document in
// a kv.Store.
package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"stockqr/internal/kv"
	"stockqr/internal/logger"
	"stockqr/internal/models"
	"stockqr/internal/uuid"
)

// Store aggregates the three collections and the settings document.
type Store struct {
	mu     sync.Mutex
	kv     kv.Store
	prefix string
	now    func() time.Time
	newID  func() string

	Categories   *Collection[models.Category]
	Products     *Collection[models.Product]
	Transactions *Collection[models.Transaction]
}

// Option customizes a Store.
type Option func(*Store)

// WithClock sets the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator sets the id source used for new records.
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// New creates a Store whose document keys start with prefix.
func New(backend kv.Store, prefix string, opts ...Option) *Store {
	s := &Store{
		kv:     backend,
		prefix: prefix,
		now:    time.Now,
		newID:  uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.Categories = newCollection[models.Category](s, "categories")
	s.Products = newCollection[models.Product](s, "products")
	s.Transactions = newCollection[models.Transaction](s, "transactions")
	return s
}

func newCollection[T models.Entity](s *Store, name string) *Collection[T] {
	return &Collection[T]{
		kv:    s.kv,
		key:   s.prefix + name,
		newID: func() string { return s.newID() },
		now:   func() time.Time { return s.now() },
	}
}

// Lock serializes a read-modify-write sequence within this process.
func (s *Store) Lock() { s.mu.Lock() }

// Unlock releases the lock taken by Lock.
func (s *Store) Unlock() { s.mu.Unlock() }

// Now returns the current time from the store clock.
func (s *Store) Now() time.Time { return s.now().UTC() }

// NewID returns a fresh record id.
func (s *Store) NewID() string { return s.newID() }

// SettingsKey returns the key of the settings document.
func (s *Store) SettingsKey() string { return s.prefix + "settings" }

// Keys returns all four document keys.
func (s *Store) Keys() []string {
	return []string{s.Categories.Key(), s.Products.Key(), s.Transactions.Key(), s.SettingsKey()}
}

// Commit persists several staged writes in one atomic storage call.
func (s *Store) Commit(ctx context.Context, writes ...Write) bool {
	if len(writes) == 0 {
		return true
	}
	entries := make(map[string][]byte, len(writes))
	for _, w := range writes {
		entries[w.Key] = w.Value
	}
	if err := s.kv.SetMany(ctx, entries); err != nil {
		keys := make([]string, 0, len(writes))
		for _, w := range writes {
			keys = append(keys, w.Key)
		}
		logger.Get().Errorw("Failed to commit documents", "keys", keys, "error", err)
		return false
	}
	return true
}

// Clear removes every document.
func (s *Store) Clear(ctx context.Context) bool {
	if err := s.kv.Delete(ctx, s.Keys()...); err != nil {
		logger.Get().Errorw("Failed to clear documents", "error", err)
		return false
	}
	return true
}

// Settings returns the settings document, or an empty one when it is missing
// or unparsable.
func (s *Store) Settings(ctx context.Context) models.Settings {
	key := s.SettingsKey()
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		logger.Get().Errorw("Failed to read document", "key", key, "error", err)
		return models.Settings{}
	}
	if !found {
		return models.Settings{}
	}

	var settings models.Settings
	if err := json.Unmarshal(raw, &settings); err != nil || settings == nil {
		if err != nil {
			logger.Get().Errorw("Discarding unparsable document", "key", key, "error", err)
		}
		return models.Settings{}
	}
	return settings
}

// SaveSettings overwrites the settings document.
func (s *Store) SaveSettings(ctx context.Context, settings models.Settings) bool {
	if settings == nil {
		settings = models.Settings{}
	}
	raw, err := json.Marshal(settings)
	if err != nil {
		logger.Get().Errorw("Failed to encode document", "key", s.SettingsKey(), "error", err)
		return false
	}
	if err := s.kv.Set(ctx, s.SettingsKey(), raw); err != nil {
		logger.Get().Errorw("Failed to write document", "key", s.SettingsKey(), "error", err)
		return false
	}
	return true
}

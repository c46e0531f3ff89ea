// Package testutil provides test helpers for setting up in-memory stores,
// creating fixtures, and making assertions.
package testutil

import (
	"context"
	"errors"
	"sync"
	"testing"

	"stockqr/internal/kv"
	"stockqr/internal/logger"
	"stockqr/internal/store"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// TestKeyPrefix is the document key prefix used by test stores.
const TestKeyPrefix = "test_"

// ErrInjected is returned by FlakyStore while writes are failing.
var ErrInjected = errors.New("injected storage failure")

// FlakyStore wraps a kv.Store and rejects writes on demand.
type FlakyStore struct {
	kv.Store

	mu   sync.Mutex
	fail bool
}

// FailWrites makes every subsequent write fail (or succeed again).
func (f *FlakyStore) FailWrites(fail bool) {
	f.mu.Lock()
	f.fail = fail
	f.mu.Unlock()
}

func (f *FlakyStore) failing() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fail
}

func (f *FlakyStore) Set(ctx context.Context, key string, value []byte) error {
	if f.failing() {
		return ErrInjected
	}
	return f.Store.Set(ctx, key, value)
}

func (f *FlakyStore) SetMany(ctx context.Context, entries map[string][]byte) error {
	if f.failing() {
		return ErrInjected
	}
	return f.Store.SetMany(ctx, entries)
}

func (f *FlakyStore) Delete(ctx context.Context, keys ...string) error {
	if f.failing() {
		return ErrInjected
	}
	return f.Store.Delete(ctx, keys...)
}

// SetupTestStore creates a Store over a fresh in-memory backend. The returned
// FlakyStore can be used to simulate write failures.
func SetupTestStore(t *testing.T) (*store.Store, *FlakyStore) {
	t.Helper()
	logger.Init("test")

	backend := &FlakyStore{Store: kv.NewMemoryStore()}
	return store.New(backend, TestKeyPrefix), backend
}

// SetupTestDB creates an in-memory SQLite database with the documents table
// migrated.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get underlying DB: %v", err)
	}
	// Every connection to file::memory: is a separate database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&kv.Document{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// SetupSQLStore creates a Store backed by an in-memory SQLite database.
func SetupSQLStore(t *testing.T) (*store.Store, *gorm.DB) {
	t.Helper()
	logger.Init("test")

	db := SetupTestDB(t)
	return store.New(kv.NewGormStore(db), TestKeyPrefix), db
}

// TeardownTestDB closes the underlying database connection.
func TeardownTestDB(t *testing.T, db *gorm.DB) {
	t.Helper()

	sqlDB, err := db.DB()
	if err != nil {
		t.Errorf("failed to get underlying DB for teardown: %v", err)
		return
	}
	if err := sqlDB.Close(); err != nil {
		t.Errorf("failed to close test database: %v", err)
	}
}

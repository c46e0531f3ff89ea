package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stockqr/internal/kv"
	"stockqr/internal/models"
)

var errWrite = errors.New("quota exceeded")

// failingKV rejects writes while fail is set.
type failingKV struct {
	*kv.MemoryStore
	fail bool
}

func (f *failingKV) Set(ctx context.Context, key string, value []byte) error {
	if f.fail {
		return errWrite
	}
	return f.MemoryStore.Set(ctx, key, value)
}

func (f *failingKV) SetMany(ctx context.Context, entries map[string][]byte) error {
	if f.fail {
		return errWrite
	}
	return f.MemoryStore.SetMany(ctx, entries)
}

func newTestStore(t *testing.T) (*Store, *failingKV) {
	t.Helper()
	backend := &failingKV{MemoryStore: kv.NewMemoryStore()}
	n := 0
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	s := New(backend, "test_",
		WithClock(func() time.Time { return now }),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id%d", n)
		}),
	)
	return s, backend
}

func strPtr(s string) *string { return &s }

func TestCollectionList(t *testing.T) {
	ctx := context.Background()

	t.Run("missing document is empty", func(t *testing.T) {
		s, _ := newTestStore(t)
		items := s.Categories.List(ctx)
		assert.NotNil(t, items)
		assert.Empty(t, items)
	})

	t.Run("unparsable document is empty", func(t *testing.T) {
		s, backend := newTestStore(t)
		require.NoError(t, backend.MemoryStore.Set(ctx, "test_products", []byte("{not json")))
		assert.Empty(t, s.Products.List(ctx))
	})

	t.Run("null document is empty", func(t *testing.T) {
		s, backend := newTestStore(t)
		require.NoError(t, backend.MemoryStore.Set(ctx, "test_products", []byte("null")))
		assert.NotNil(t, s.Products.List(ctx))
	})
}

func TestCollectionUpsert(t *testing.T) {
	ctx := context.Background()

	t.Run("create assigns id and defaults", func(t *testing.T) {
		s, _ := newTestStore(t)
		p, ok := s.Products.Upsert(ctx, models.ProductPatch{Name: strPtr("Widget"), CategoryID: strPtr("C1")})
		require.True(t, ok)

		assert.Equal(t, "id1", p.ID)
		assert.Equal(t, "PRD-id1", p.QRCode)
		assert.Zero(t, p.Stock)
		assert.Zero(t, p.TotalIn)
		assert.Zero(t, p.TotalOut)
		assert.False(t, p.CreatedAt.IsZero())

		stored, found := s.Products.FindByID(ctx, "id1")
		require.True(t, found)
		assert.Equal(t, "Widget", stored.Name)
	})

	t.Run("update merges fields", func(t *testing.T) {
		s, _ := newTestStore(t)
		c, ok := s.Categories.Upsert(ctx, models.CategoryPatch{Name: strPtr("Drinks"), Description: strPtr("cold")})
		require.True(t, ok)

		updated, ok := s.Categories.Upsert(ctx, models.CategoryPatch{ID: c.ID, Name: strPtr("Beverages")})
		require.True(t, ok)
		assert.Equal(t, c.ID, updated.ID)
		assert.Equal(t, "Beverages", updated.Name)
		assert.Equal(t, "cold", updated.Description)
		assert.True(t, c.CreatedAt.Equal(updated.CreatedAt))
		assert.Len(t, s.Categories.List(ctx), 1)
	})

	t.Run("unknown id creates a new record", func(t *testing.T) {
		s, _ := newTestStore(t)
		c, ok := s.Categories.Upsert(ctx, models.CategoryPatch{ID: "ghost", Name: strPtr("X")})
		require.True(t, ok)
		assert.Equal(t, "id1", c.ID)
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		s, _ := newTestStore(t)
		for _, name := range []string{"a", "b", "c"} {
			_, ok := s.Categories.Upsert(ctx, models.CategoryPatch{Name: strPtr(name)})
			require.True(t, ok)
		}
		var names []string
		for _, c := range s.Categories.List(ctx) {
			names = append(names, c.Name)
		}
		assert.Equal(t, []string{"a", "b", "c"}, names)
	})

	t.Run("write failure is reported", func(t *testing.T) {
		s, backend := newTestStore(t)
		backend.fail = true
		_, ok := s.Categories.Upsert(ctx, models.CategoryPatch{Name: strPtr("X")})
		assert.False(t, ok)
		backend.fail = false
		assert.Empty(t, s.Categories.List(ctx))
	})
}

func TestCollectionRemove(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	a, _ := s.Categories.Upsert(ctx, models.CategoryPatch{Name: strPtr("a")})
	b, _ := s.Categories.Upsert(ctx, models.CategoryPatch{Name: strPtr("b")})

	assert.True(t, s.Categories.Remove(ctx, a.ID))
	assert.True(t, s.Categories.Remove(ctx, "missing"))

	items := s.Categories.List(ctx)
	require.Len(t, items, 1)
	assert.Equal(t, b.ID, items[0].ID)
}

func TestStoreCommit(t *testing.T) {
	ctx := context.Background()

	t.Run("writes all collections", func(t *testing.T) {
		s, _ := newTestStore(t)
		w1, ok := s.Categories.Stage([]models.Category{{ID: "c1", Name: "a"}})
		require.True(t, ok)
		w2, ok := s.Transactions.Stage(nil)
		require.True(t, ok)

		assert.True(t, s.Commit(ctx, w1, w2))
		assert.Len(t, s.Categories.List(ctx), 1)

		raw, found, err := s.kv.Get(ctx, "test_transactions")
		require.NoError(t, err)
		require.True(t, found)
		assert.Equal(t, "[]", string(raw))
	})

	t.Run("failure writes nothing", func(t *testing.T) {
		s, backend := newTestStore(t)
		w1, _ := s.Categories.Stage([]models.Category{{ID: "c1"}})
		w2, _ := s.Products.Stage([]models.Product{{ID: "p1"}})

		backend.fail = true
		assert.False(t, s.Commit(ctx, w1, w2))
		backend.fail = false

		assert.Empty(t, s.Categories.List(ctx))
		assert.Empty(t, s.Products.List(ctx))
	})

	t.Run("no writes", func(t *testing.T) {
		s, _ := newTestStore(t)
		assert.True(t, s.Commit(ctx))
	})
}

func TestStoreClear(t *testing.T) {
	ctx := context.Background()
	s, backend := newTestStore(t)

	s.Categories.Upsert(ctx, models.CategoryPatch{Name: strPtr("a")})
	s.Products.Upsert(ctx, models.ProductPatch{Name: strPtr("p")})
	require.True(t, s.SaveSettings(ctx, models.Settings{"currency": "SAR"}))

	assert.True(t, s.Clear(ctx))
	assert.Zero(t, backend.Len())
	assert.Empty(t, s.Settings(ctx))
}

func TestStoreSettings(t *testing.T) {
	ctx := context.Background()
	s, backend := newTestStore(t)

	assert.Empty(t, s.Settings(ctx))

	require.True(t, s.SaveSettings(ctx, models.Settings{"theme": "dark"}))
	assert.Equal(t, "dark", s.Settings(ctx)["theme"])

	require.NoError(t, backend.MemoryStore.Set(ctx, s.SettingsKey(), []byte("[")))
	assert.Empty(t, s.Settings(ctx))
}

func TestStoreKeys(t *testing.T) {
	s := New(kv.NewMemoryStore(), "stock_qr_")
	assert.Equal(t, []string{
		"stock_qr_categories",
		"stock_qr_products",
		"stock_qr_transactions",
		"stock_qr_settings",
	}, s.Keys())
}

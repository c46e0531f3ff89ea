package store

import (
	"context"
	"encoding/json"
	"time"

	"stockqr/internal/kv"
	"stockqr/internal/logger"
	"stockqr/internal/models"
)

// Patch is a partial record. An update applies it onto the stored record;
// a create builds a fresh record from it.
type Patch[T models.Entity] interface {
	PatchID() string
	ApplyTo(record *T)
	Build(id string, now time.Time) T
}

// Write is a pending rewrite of one document.
type Write struct {
	Key   string
	Value []byte
}

// Collection is an ordered list of records persisted as one JSON array under
// a single key. Every mutation rewrites the whole document. Collections do
// not lock; callers serialize read-modify-write through Store.Lock.
type Collection[T models.Entity] struct {
	kv    kv.Store
	key   string
	newID func() string
	now   func() time.Time
}

// Key returns the document key.
func (c *Collection[T]) Key() string { return c.key }

// List returns the records in persisted order. A missing or unparsable
// document yields an empty list; the fault is logged, never returned.
func (c *Collection[T]) List(ctx context.Context) []T {
	raw, found, err := c.kv.Get(ctx, c.key)
	if err != nil {
		logger.Get().Errorw("Failed to read document", "key", c.key, "error", err)
		return []T{}
	}
	if !found || len(raw) == 0 {
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		logger.Get().Errorw("Discarding unparsable document", "key", c.key, "error", err)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// FindByID returns the record with the given id.
func (c *Collection[T]) FindByID(ctx context.Context, id string) (T, bool) {
	return c.Find(ctx, func(item T) bool { return item.EntityID() == id })
}

// Find returns the first record matching pred.
func (c *Collection[T]) Find(ctx context.Context, pred func(T) bool) (T, bool) {
	for _, item := range c.List(ctx) {
		if pred(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// Upsert merges patch onto the record carrying the patch id. When the id is
// empty or unknown a new record is built with a fresh id and appended.
// It returns the resulting record and whether the write succeeded.
func (c *Collection[T]) Upsert(ctx context.Context, patch Patch[T]) (T, bool) {
	items := c.List(ctx)

	if id := patch.PatchID(); id != "" {
		for i := range items {
			if items[i].EntityID() == id {
				patch.ApplyTo(&items[i])
				return items[i], c.Replace(ctx, items)
			}
		}
	}

	record := patch.Build(c.newID(), c.now())
	items = append(items, record)
	return record, c.Replace(ctx, items)
}

// Remove deletes the record with the given id. An unknown id is a no-op.
func (c *Collection[T]) Remove(ctx context.Context, id string) bool {
	items := c.List(ctx)
	kept := make([]T, 0, len(items))
	for _, item := range items {
		if item.EntityID() != id {
			kept = append(kept, item)
		}
	}
	if len(kept) == len(items) {
		return true
	}
	return c.Replace(ctx, kept)
}

// Replace overwrites the whole collection.
func (c *Collection[T]) Replace(ctx context.Context, items []T) bool {
	w, ok := c.Stage(items)
	if !ok {
		return false
	}
	if err := c.kv.Set(ctx, w.Key, w.Value); err != nil {
		logger.Get().Errorw("Failed to write document", "key", c.key, "error", err)
		return false
	}
	return true
}

// Stage encodes items as a Write without persisting it, so several
// collections can be committed together.
func (c *Collection[T]) Stage(items []T) (Write, bool) {
	if items == nil {
		items = []T{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		logger.Get().Errorw("Failed to encode document", "key", c.key, "error", err)
		return Write{}, false
	}
	return Write{Key: c.key, Value: raw}, true
}

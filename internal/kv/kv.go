// Package kv defines the key-addressed document storage the inventory store
// persists into, together with its memory, SQL (gorm) and redis backends.
package kv

import "context"

// Store maps string keys to opaque JSON documents.
type Store interface {
	// Get returns the stored value. A missing key is reported with
	// found=false and a nil error.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// SetMany stores every entry atomically: either all keys are written
	// or none are.
	SetMany(ctx context.Context, entries map[string][]byte) error

	// Delete removes the given keys. Missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
}

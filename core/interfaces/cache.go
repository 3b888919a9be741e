// Package interfaces defines the capabilities the content core consumes.
// Every collaborator is injected so tests can swap in simple fakes.
package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Cache implementations when a key is absent
var ErrCacheMiss = errors.New("cache: key not found")

// Cache defines the persistent key-value store behind the fallback cascade.
// Implementations can be SQLite, Redis, in-memory, or any other store.
//
// Example usage:
//
//	// Replace the whole entry for a selector
//	err := cache.Set(ctx, "content:National:6", entryJSON, 0)
//
//	// Read it back during an origin outage
//	data, err := cache.Get(ctx, "content:National:6")
//	if errors.Is(err, interfaces.ErrCacheMiss) {
//		// nothing cached yet
//	}
//
//	// Explicit invalidation
//	err = cache.Delete(ctx, "content:National:6")
type Cache interface {
	// Get retrieves a value from the cache by key.
	// Returns ErrCacheMiss (possibly wrapped) if the key doesn't exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set replaces the value stored under key.
	// If ttl is 0, the value is stored indefinitely.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a value from the cache by key.
	// Returns nil if the key doesn't exist.
	Delete(ctx context.Context, key string) error
}

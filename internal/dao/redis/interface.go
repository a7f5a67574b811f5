// Package redis provides the cache layer.
// This file defines the cache service interfaces; the service layer depends
// on these rather than on a concrete Redis client.
package redis

import (
	"context"
	"time"
)

// CacheService is the synchronous cache surface.
type CacheService interface {
	// Set stores a value with a TTL.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Get returns the value, or ("", nil) when the key is absent.
	Get(ctx context.Context, key string) (string, error)
	// GetOrError returns the value, or a CodeNotFound error when absent.
	GetOrError(ctx context.Context, key string) (string, error)
	// Delete removes a key if present.
	Delete(ctx context.Context, key string) error
	// DeleteByPattern removes every key matching the glob pattern.
	DeleteByPattern(ctx context.Context, pattern string) error
	// DeleteByPatterns removes keys for each pattern in turn.
	DeleteByPatterns(ctx context.Context, patterns []string) error
}

// AsyncCacheService adds non-blocking task submission for cache write-backs
// and invalidations that must not sit on the request path.
type AsyncCacheService interface {
	CacheService
	// SubmitTask queues the action on the worker pool; when the queue is
	// full the action runs synchronously instead of being dropped.
	SubmitTask(action func())
}

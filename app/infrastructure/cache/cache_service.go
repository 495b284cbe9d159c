package cache

import (
	"context"
	"errors"
	"time"

	"github.com/go-redsync/redsync/v4"
)

// ErrCacheMiss is returned when a key is absent, expired, or the cache backend
// is unreachable. Backend failures are logged by the implementation and folded
// into a miss so a read that can be served from the store never fails on cache.
var ErrCacheMiss = errors.New("cache miss")

// CacheService defines the interface for cache operations. Values are stored in
// a versioned envelope carrying a freshness deadline: Get treats soft-expired
// entries as absent while GetStale still returns them, which is what allows the
// aggregation services to serve stale data when the backing store is down.
type CacheService interface {
	// Set stores a value in cache. The entry is fresh for ttl and retained for
	// a bounded window past that to support GetStale. Best-effort: callers
	// must treat a Set failure as non-fatal.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// SetIndexed stores a value like Set and registers the key under indexKey,
	// the secondary index consumed by DeleteIndexed. Every key sharing an index
	// must share its TTL class.
	SetIndexed(ctx context.Context, key, indexKey string, value any, ttl time.Duration) error

	// Get retrieves a fresh value from cache into dest. Returns ErrCacheMiss
	// when the key is absent, soft-expired, or the backend errored.
	Get(ctx context.Context, key string, dest any) error

	// GetStale retrieves a value into dest even when its freshness deadline has
	// passed. Returns ErrCacheMiss only when the key is truly absent.
	GetStale(ctx context.Context, key string, dest any) error

	// GetWithFallback retrieves a fresh value, or executes fallback on miss and
	// caches its result with ttl.
	GetWithFallback(ctx context.Context, key string, dest any, fallback func() (any, error), ttl time.Duration) error

	// Delete removes a key from cache synchronously (blocking). Deleting an
	// absent key is a no-op.
	Delete(ctx context.Context, key string) error

	// Unlink removes a key from cache asynchronously (non-blocking).
	Unlink(ctx context.Context, key string) error

	// DeleteIndexed removes every key registered under indexKey plus the index
	// itself. The cost is bounded by the number of registered keys, never the
	// size of the keyspace.
	DeleteIndexed(ctx context.Context, indexKey string) error

	// Exists checks if a key exists in cache.
	Exists(ctx context.Context, key string) (bool, error)

	// Close closes the cache connection
	Close() error

	// HealthCheck verifies cache connectivity
	HealthCheck(ctx context.Context) error

	// NewMutex returns a distributed lock, used to keep scheduled refreshes
	// exclusive across gateway instances.
	NewMutex(name string, options ...redsync.Option) *redsync.Mutex
}

// staleRetentionFactor controls how long past the freshness deadline an entry
// is physically retained for serve-stale-on-error.
const staleRetentionFactor = 2

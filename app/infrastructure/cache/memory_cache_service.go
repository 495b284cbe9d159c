package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redsync/redsync/v4"
)

type memoryEntry struct {
	freshUntil time.Time
	hardUntil  time.Time
	data       []byte
}

// MemoryCacheService is a process-local cache backend with the same envelope
// semantics as the Redis backend. Single-instance deployments and tests use
// it; there is no cross-instance invalidation.
type MemoryCacheService struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	indexes map[string]map[string]struct{}
}

func NewMemoryCacheService() *MemoryCacheService {
	return &MemoryCacheService{
		entries: make(map[string]memoryEntry),
		indexes: make(map[string]map[string]struct{}),
	}
}

func (m *MemoryCacheService) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	now := time.Now()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{
		freshUntil: now.Add(ttl),
		hardUntil:  now.Add(ttl * staleRetentionFactor),
		data:       raw,
	}
	return nil
}

func (m *MemoryCacheService) SetIndexed(ctx context.Context, key, indexKey string, value any, ttl time.Duration) error {
	if err := m.Set(ctx, key, value, ttl); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.indexes[indexKey] == nil {
		m.indexes[indexKey] = make(map[string]struct{})
	}
	m.indexes[indexKey][key] = struct{}{}
	return nil
}

func (m *MemoryCacheService) Get(ctx context.Context, key string, dest any) error {
	entry, ok := m.lookup(key)
	if !ok || time.Now().After(entry.freshUntil) {
		return ErrCacheMiss
	}
	return json.Unmarshal(entry.data, dest)
}

func (m *MemoryCacheService) GetStale(ctx context.Context, key string, dest any) error {
	entry, ok := m.lookup(key)
	if !ok {
		return ErrCacheMiss
	}
	return json.Unmarshal(entry.data, dest)
}

func (m *MemoryCacheService) lookup(key string) (memoryEntry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entry, ok := m.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if time.Now().After(entry.hardUntil) {
		delete(m.entries, key)
		return memoryEntry{}, false
	}
	return entry, true
}

func (m *MemoryCacheService) GetWithFallback(ctx context.Context, key string, dest any, fallback func() (any, error), ttl time.Duration) error {
	if err := m.Get(ctx, key, dest); err == nil {
		return nil
	}

	value, err := fallback()
	if err != nil {
		return fmt.Errorf("fallback function failed: %w", err)
	}
	if err := m.Set(ctx, key, value, ttl); err != nil {
		return err
	}

	jsonValue, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal fallback value: %w", err)
	}
	return json.Unmarshal(jsonValue, dest)
}

func (m *MemoryCacheService) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

func (m *MemoryCacheService) Unlink(ctx context.Context, key string) error {
	return m.Delete(ctx, key)
}

func (m *MemoryCacheService) DeleteIndexed(ctx context.Context, indexKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for key := range m.indexes[indexKey] {
		delete(m.entries, key)
	}
	delete(m.indexes, indexKey)
	return nil
}

func (m *MemoryCacheService) Exists(ctx context.Context, key string) (bool, error) {
	_, ok := m.lookup(key)
	return ok, nil
}

func (m *MemoryCacheService) Close() error {
	return nil
}

func (m *MemoryCacheService) HealthCheck(ctx context.Context) error {
	return nil
}

// NewMutex returns nil: there is nothing to coordinate across instances.
func (m *MemoryCacheService) NewMutex(name string, options ...redsync.Option) *redsync.Mutex {
	return nil
}

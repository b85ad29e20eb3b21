package giantswarm

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fivetwenty-io/giantswarm/internal/constants"
)

// Cache stores serialized response snapshots keyed by logical operation.
type Cache interface {
	Has(ctx context.Context, key string) bool
	Fetch(ctx context.Context, key string) (string, error)
	Store(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

type memoryEntry struct {
	value     string
	storedAt  time.Time
	expiresAt time.Time
}

func (e *memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryCache is a size bounded in-process cache. When full, storing a
// new key evicts the oldest entry.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	maxSize int
	ttl     time.Duration
	now     func() time.Time
}

// NewMemoryCache creates a memory cache whose entries never expire.
func NewMemoryCache(maxSize int) *MemoryCache {
	return NewMemoryCacheWithTTL(maxSize, 0)
}

// NewMemoryCacheWithTTL creates a memory cache whose entries expire ttl
// after being stored. A zero ttl disables expiry.
func NewMemoryCacheWithTTL(maxSize int, ttl time.Duration) *MemoryCache {
	if maxSize <= 0 {
		maxSize = constants.DefaultCacheSize
	}

	return &MemoryCache{
		entries: make(map[string]*memoryEntry),
		maxSize: maxSize,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Has reports whether a live entry exists for key.
func (c *MemoryCache) Has(ctx context.Context, key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]

	return ok && !entry.expired(c.now())
}

// Fetch returns the value stored for key.
func (c *MemoryCache) Fetch(ctx context.Context, key string) (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", constants.ErrCacheKeyNotFound, key)
	}

	if entry.expired(c.now()) {
		return "", fmt.Errorf("%w: %s", constants.ErrCacheEntryExpire, key)
	}

	return entry.value, nil
}

// Store saves value under key.
func (c *MemoryCache) Store(ctx context.Context, key, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	entry := &memoryEntry{value: value, storedAt: now}
	if c.ttl > 0 {
		entry.expiresAt = now.Add(c.ttl)
	}

	c.entries[key] = entry

	return nil
}

// Delete removes key.
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.entries, key)

	return nil
}

// Clear removes every entry.
func (c *MemoryCache) Clear(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*memoryEntry)

	return nil
}

// Cleanup drops expired entries.
func (c *MemoryCache) Cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, entry := range c.entries {
		if entry.expired(now) {
			delete(c.entries, key)
		}
	}
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

// evictOldest must be called with the write lock held.
func (c *MemoryCache) evictOldest() {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)

	for key, entry := range c.entries {
		if !found || entry.storedAt.Before(oldest) {
			oldestKey = key
			oldest = entry.storedAt
			found = true
		}
	}

	if found {
		delete(c.entries, oldestKey)
	}
}

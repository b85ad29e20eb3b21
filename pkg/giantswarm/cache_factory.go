package giantswarm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fivetwenty-io/giantswarm/internal/cachestore"
	"github.com/fivetwenty-io/giantswarm/internal/constants"
)

// CacheType represents the type of cache backend.
type CacheType string

const (
	// CacheTypeMemory represents in-memory cache.
	CacheTypeMemory CacheType = "memory"

	// CacheTypeNATS represents NATS KV cache.
	CacheTypeNATS CacheType = "nats"

	// CacheTypeSQLite represents a SQLite file cache.
	CacheTypeSQLite CacheType = "sqlite"

	// CacheTypeNone represents no caching.
	CacheTypeNone CacheType = "none"
)

// Static errors for err113 compliance.
var (
	ErrNATSConfigRequired    = errors.New("NATS configuration required for NATS cache")
	ErrSQLiteConfigRequired  = errors.New("SQLite configuration required for SQLite cache")
	ErrUnsupportedCacheType  = errors.New("unsupported cache type")
	ErrCacheDisabled         = errors.New("cache disabled")
	ErrKeyNotFoundInAnyCache = errors.New("key not found in any cache")
)

// CacheConfig configures cache backend.
type CacheConfig struct {
	// Type is the cache backend type
	Type CacheType

	// Memory cache configuration
	Memory *MemoryCacheConfig

	// NATS KV cache configuration
	NATS *NATSKVConfig

	// SQLite cache configuration
	SQLite *SQLiteCacheConfig
}

// MemoryCacheConfig configures memory cache.
type MemoryCacheConfig struct {
	// MaxSize is the maximum number of items in the cache
	MaxSize int

	// TTL is the lifetime of an entry; zero keeps entries until evicted
	TTL time.Duration
}

// NATSKVConfig configures the NATS JetStream key-value cache.
type NATSKVConfig struct {
	// URL of the NATS server, e.g. "nats://127.0.0.1:4222"
	URL string

	// Bucket name; defaults to "giantswarm_responses"
	Bucket string

	// TTL applied to the bucket; zero keeps entries forever
	TTL time.Duration
}

// SQLiteCacheConfig configures the SQLite file cache.
type SQLiteCacheConfig struct {
	// Path of the database file
	Path string
}

// DefaultCacheConfig returns default cache configuration.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		Type: CacheTypeMemory,
		Memory: &MemoryCacheConfig{
			MaxSize: constants.DefaultCacheSize,
			TTL:     constants.DefaultCacheTTL,
		},
	}
}

// NewCacheFromConfig creates a cache backend from configuration.
func NewCacheFromConfig(ctx context.Context, config *CacheConfig) (Cache, error) {
	if config == nil {
		config = DefaultCacheConfig()
	}

	switch config.Type {
	case CacheTypeMemory:
		return NewMemoryCacheFromConfig(config.Memory), nil

	case CacheTypeNATS:
		if config.NATS == nil {
			return nil, ErrNATSConfigRequired
		}

		cache, err := cachestore.OpenNATSKV(ctx, cachestore.NATSConfig{
			URL:    config.NATS.URL,
			Bucket: config.NATS.Bucket,
			TTL:    config.NATS.TTL,
		})
		if err != nil {
			return nil, fmt.Errorf("opening NATS cache: %w", err)
		}

		return cache, nil

	case CacheTypeSQLite:
		if config.SQLite == nil {
			return nil, ErrSQLiteConfigRequired
		}

		cache, err := cachestore.OpenSQLite(config.SQLite.Path)
		if err != nil {
			return nil, fmt.Errorf("opening SQLite cache: %w", err)
		}

		return cache, nil

	case CacheTypeNone, "":
		return NewNoOpCache(), nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedCacheType, config.Type)
	}
}

// NewMemoryCacheFromConfig creates a memory cache from configuration.
func NewMemoryCacheFromConfig(config *MemoryCacheConfig) *MemoryCache {
	if config == nil {
		config = &MemoryCacheConfig{
			MaxSize: constants.DefaultCacheSize,
			TTL:     constants.DefaultCacheTTL,
		}
	}

	return NewMemoryCacheWithTTL(config.MaxSize, config.TTL)
}

// NoOpCache is a cache that does nothing (no caching).
type NoOpCache struct{}

// NewNoOpCache creates a new no-op cache.
func NewNoOpCache() *NoOpCache {
	return &NoOpCache{}
}

// Has always returns false.
func (c *NoOpCache) Has(ctx context.Context, key string) bool {
	return false
}

// Fetch always returns an error (nothing cached).
func (c *NoOpCache) Fetch(ctx context.Context, key string) (string, error) {
	return "", ErrCacheDisabled
}

// Store does nothing.
func (c *NoOpCache) Store(ctx context.Context, key, value string) error {
	return nil
}

// Delete does nothing.
func (c *NoOpCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Clear does nothing.
func (c *NoOpCache) Clear(ctx context.Context) error {
	return nil
}

// CacheBuilder helps build cache configurations.
type CacheBuilder struct {
	config *CacheConfig
}

// NewCacheBuilder creates a new cache builder.
func NewCacheBuilder() *CacheBuilder {
	return &CacheBuilder{
		config: &CacheConfig{
			Type: CacheTypeMemory,
		},
	}
}

// WithType sets the cache type.
func (b *CacheBuilder) WithType(cacheType CacheType) *CacheBuilder {
	b.config.Type = cacheType

	return b
}

// WithMemoryConfig sets memory cache configuration.
func (b *CacheBuilder) WithMemoryConfig(maxSize int, ttl time.Duration) *CacheBuilder {
	b.config.Memory = &MemoryCacheConfig{
		MaxSize: maxSize,
		TTL:     ttl,
	}

	return b
}

// WithNATSConfig sets NATS cache configuration.
func (b *CacheBuilder) WithNATSConfig(config *NATSKVConfig) *CacheBuilder {
	b.config.NATS = config

	return b
}

// WithSQLitePath sets the SQLite cache file.
func (b *CacheBuilder) WithSQLitePath(path string) *CacheBuilder {
	b.config.SQLite = &SQLiteCacheConfig{Path: path}

	return b
}

// Build creates the cache from the configuration.
func (b *CacheBuilder) Build(ctx context.Context) (Cache, error) {
	return NewCacheFromConfig(ctx, b.config)
}

// CacheChain implements a chain of cache backends (L1, L2, etc.)
type CacheChain struct {
	caches []Cache
}

// NewCacheChain creates a new cache chain.
func NewCacheChain(caches ...Cache) *CacheChain {
	return &CacheChain{
		caches: caches,
	}
}

// Fetch retrieves an item from the cache chain.
func (c *CacheChain) Fetch(ctx context.Context, key string) (string, error) {
	for i, cache := range c.caches {
		value, err := cache.Fetch(ctx, key)
		if err == nil {
			// Found in this cache, populate earlier caches
			for j := range i {
				_ = c.caches[j].Store(ctx, key, value)
			}

			return value, nil
		}
	}

	return "", ErrKeyNotFoundInAnyCache
}

// Store stores an item in all caches.
func (c *CacheChain) Store(ctx context.Context, key, value string) error {
	var lastErr error

	for _, cache := range c.caches {
		err := cache.Store(ctx, key, value)
		if err != nil {
			lastErr = err
		}
	}

	return lastErr
}

// Delete removes an item from all caches.
func (c *CacheChain) Delete(ctx context.Context, key string) error {
	var lastErr error

	for _, cache := range c.caches {
		err := cache.Delete(ctx, key)
		if err != nil {
			lastErr = err
		}
	}

	return lastErr
}

// Clear removes all items from all caches.
func (c *CacheChain) Clear(ctx context.Context) error {
	var lastErr error

	for _, cache := range c.caches {
		err := cache.Clear(ctx)
		if err != nil {
			lastErr = err
		}
	}

	return lastErr
}

// Has checks if a key exists in any cache.
func (c *CacheChain) Has(ctx context.Context, key string) bool {
	for _, cache := range c.caches {
		if cache.Has(ctx, key) {
			return true
		}
	}

	return false
}

// Close closes every cache in the chain that holds resources.
func (c *CacheChain) Close() error {
	var lastErr error

	for _, cache := range c.caches {
		closer, ok := cache.(interface{ Close() error })
		if !ok {
			continue
		}

		err := closer.Close()
		if err != nil {
			lastErr = err
		}
	}

	return lastErr
}

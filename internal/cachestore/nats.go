// Package cachestore holds the persistent response cache backends. Both
// satisfy giantswarm.Cache.
package cachestore

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/fivetwenty-io/giantswarm/internal/constants"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
)

// NATSConfig configures a NATS KV cache.
type NATSConfig struct {
	URL    string
	Bucket string
	TTL    time.Duration
}

// kvBucket is the subset of a JetStream key-value bucket the cache uses.
type kvBucket interface {
	get(ctx context.Context, key string) ([]byte, error)
	put(ctx context.Context, key string, value []byte) error
	purge(ctx context.Context, key string) error
	keys(ctx context.Context) ([]string, error)
}

// NATSKVCache stores snapshots in a JetStream KV bucket. Cache keys
// contain characters KV keys do not allow, so they are stored base64url
// encoded.
type NATSKVCache struct {
	bucket kvBucket
	conn   *nats.Conn
}

// OpenNATSKV connects to cfg.URL and creates the bucket if needed.
func OpenNATSKV(ctx context.Context, cfg NATSConfig) (*NATSKVCache, error) {
	if cfg.URL == "" {
		return nil, constants.ErrNATSURLRequired
	}

	bucket := cfg.Bucket
	if bucket == "" {
		bucket = constants.DefaultNATSBucket
	}

	conn, err := nats.Connect(cfg.URL, nats.Name("giantswarm-cache"))
	if err != nil {
		return nil, fmt.Errorf("connecting to NATS: %w", err)
	}

	js, err := jetstream.New(conn)
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("creating JetStream context: %w", err)
	}

	kv, err := js.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:       bucket,
		Description:  "Giant Swarm API response snapshots",
		TTL:          cfg.TTL,
		MaxValueSize: constants.MaxCacheValueSize,
	})
	if err != nil {
		conn.Close()

		return nil, fmt.Errorf("creating KV bucket %s: %w", bucket, err)
	}

	return &NATSKVCache{bucket: &jetstreamBucket{kv: kv}, conn: conn}, nil
}

// Has reports whether key is stored.
func (c *NATSKVCache) Has(ctx context.Context, key string) bool {
	if key == "" {
		return false
	}

	_, err := c.bucket.get(ctx, encodeKey(key))

	return err == nil
}

// Fetch returns the value stored under key.
func (c *NATSKVCache) Fetch(ctx context.Context, key string) (string, error) {
	if key == "" {
		return "", constants.ErrEmptyCacheKey
	}

	value, err := c.bucket.get(ctx, encodeKey(key))
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", key, err)
	}

	return string(value), nil
}

// Store saves value under key.
func (c *NATSKVCache) Store(ctx context.Context, key, value string) error {
	if key == "" {
		return constants.ErrEmptyCacheKey
	}

	if len(value) > constants.MaxCacheValueSize {
		return fmt.Errorf("%w: %s", constants.ErrCacheValueTooBig, key)
	}

	err := c.bucket.put(ctx, encodeKey(key), []byte(value))
	if err != nil {
		return fmt.Errorf("storing %s: %w", key, err)
	}

	return nil
}

// Delete removes key and its history.
func (c *NATSKVCache) Delete(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	err := c.bucket.purge(ctx, encodeKey(key))
	if err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}

	return nil
}

// Clear purges every key in the bucket.
func (c *NATSKVCache) Clear(ctx context.Context) error {
	keys, err := c.bucket.keys(ctx)
	if err != nil {
		return fmt.Errorf("listing keys: %w", err)
	}

	for _, key := range keys {
		err = c.bucket.purge(ctx, key)
		if err != nil {
			return fmt.Errorf("purging %s: %w", key, err)
		}
	}

	return nil
}

// Close closes the NATS connection.
func (c *NATSKVCache) Close() error {
	if c.conn != nil {
		c.conn.Close()
	}

	return nil
}

func encodeKey(key string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(key))
}

type jetstreamBucket struct {
	kv jetstream.KeyValue
}

func (b *jetstreamBucket) get(ctx context.Context, key string) ([]byte, error) {
	entry, err := b.kv.Get(ctx, key)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyNotFound) {
			return nil, constants.ErrCacheKeyNotFound
		}

		return nil, err
	}

	return entry.Value(), nil
}

func (b *jetstreamBucket) put(ctx context.Context, key string, value []byte) error {
	_, err := b.kv.Put(ctx, key, value)

	return err
}

func (b *jetstreamBucket) purge(ctx context.Context, key string) error {
	return b.kv.Purge(ctx, key)
}

func (b *jetstreamBucket) keys(ctx context.Context) ([]string, error) {
	lister, err := b.kv.ListKeys(ctx)
	if err != nil {
		if errors.Is(err, jetstream.ErrNoKeysFound) {
			return nil, nil
		}

		return nil, err
	}

	defer func() { _ = lister.Stop() }()

	var keys []string
	for key := range lister.Keys() {
		keys = append(keys, key)
	}

	return keys, nil
}

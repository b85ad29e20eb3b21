package cachestore

import (
	"context"
	"fmt"
	"time"

	"github.com/fivetwenty-io/giantswarm/internal/constants"
	"github.com/fivetwenty-io/giantswarm/internal/sqlitepool"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS response_cache (
	key       TEXT PRIMARY KEY,
	value     TEXT NOT NULL,
	stored_at INTEGER NOT NULL
);`

// SQLiteCache keeps snapshots in a local SQLite file so they survive
// process restarts.
type SQLiteCache struct {
	pool *sqlitepool.Pool
	now  func() time.Time
}

// OpenSQLite opens or creates the cache database at path.
func OpenSQLite(path string) (*SQLiteCache, error) {
	if path == "" {
		return nil, constants.ErrSQLitePathEmpty
	}

	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path: path,
		OnConnect: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteScript(conn, sqliteSchema, nil)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("opening SQLite cache: %w", err)
	}

	return &SQLiteCache{pool: pool, now: time.Now}, nil
}

// Has reports whether key is stored.
func (c *SQLiteCache) Has(ctx context.Context, key string) bool {
	_, found, err := c.lookup(ctx, key)

	return err == nil && found
}

// Fetch returns the value stored under key.
func (c *SQLiteCache) Fetch(ctx context.Context, key string) (string, error) {
	value, found, err := c.lookup(ctx, key)
	if err != nil {
		return "", err
	}

	if !found {
		return "", fmt.Errorf("%w: %s", constants.ErrCacheKeyNotFound, key)
	}

	return value, nil
}

// Store saves value under key, replacing any previous value.
func (c *SQLiteCache) Store(ctx context.Context, key, value string) error {
	if key == "" {
		return constants.ErrEmptyCacheKey
	}

	err := c.pool.With(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`INSERT INTO response_cache (key, value, stored_at) VALUES (?, ?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value, stored_at = excluded.stored_at`,
			&sqlitex.ExecOptions{Args: []any{key, value, c.now().Unix()}})
	})
	if err != nil {
		return fmt.Errorf("storing %s: %w", key, err)
	}

	return nil
}

// Delete removes key.
func (c *SQLiteCache) Delete(ctx context.Context, key string) error {
	err := c.pool.With(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, `DELETE FROM response_cache WHERE key = ?`,
			&sqlitex.ExecOptions{Args: []any{key}})
	})
	if err != nil {
		return fmt.Errorf("deleting %s: %w", key, err)
	}

	return nil
}

// Clear removes every entry.
func (c *SQLiteCache) Clear(ctx context.Context) error {
	err := c.pool.With(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, `DELETE FROM response_cache`, nil)
	})
	if err != nil {
		return fmt.Errorf("clearing response cache: %w", err)
	}

	return nil
}

// Close closes the database.
func (c *SQLiteCache) Close() error {
	return c.pool.Close()
}

func (c *SQLiteCache) lookup(ctx context.Context, key string) (string, bool, error) {
	var (
		value string
		found bool
	)

	err := c.pool.With(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, `SELECT value FROM response_cache WHERE key = ?`,
			&sqlitex.ExecOptions{
				Args: []any{key},
				ResultFunc: func(stmt *sqlite.Stmt) error {
					value = stmt.ColumnText(0)
					found = true

					return nil
				},
			})
	})
	if err != nil {
		return "", false, fmt.Errorf("fetching %s: %w", key, err)
	}

	return value, found, nil
}

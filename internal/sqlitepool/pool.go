// Package sqlitepool opens SQLite connection pools with the pragmas used
// by the environment store and the SQLite response cache.
//
// Connections are not safe for concurrent use: Take one, use it, Put it
// back. In-memory databases are opened as named shared-cache URIs, one
// name per pool, and always get a single connection.
package sqlitepool

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/fivetwenty-io/giantswarm/internal/constants"
	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Config holds the parameters for opening a pool.
type Config struct {
	// Path of the database file, ":memory:", or an InMemoryPath URI.
	// ":memory:" is replaced by a fresh InMemoryPath.
	Path string

	// PoolSize defaults to 4, and is forced to 1 for in-memory databases.
	PoolSize int

	// Logger defaults to a no-op logger.
	Logger *zap.Logger

	// OnConnect runs once per connection after the pragmas, typically to
	// create the schema.
	OnConnect func(conn *sqlite.Conn) error
}

// Pool wraps sqlitex.Pool.
type Pool struct {
	inner  *sqlitex.Pool
	logger *zap.Logger
	path   string
}

var inMemorySeq atomic.Uint64

// InMemoryPath returns a shared-cache URI naming a new in-memory
// database. The database lives as long as a connection to it is open.
func InMemoryPath() string {
	return fmt.Sprintf(constants.SQLiteInMemoryURIFormat, inMemorySeq.Add(1))
}

// IsInMemory reports whether path names an in-memory database.
func IsInMemory(path string) bool {
	return path == constants.SQLiteInMemoryPath || strings.Contains(path, "mode=memory")
}

// Open creates the pool. Connections are initialized lazily on first Take.
func Open(cfg Config) (*Pool, error) {
	if cfg.Path == "" {
		return nil, constants.ErrSQLitePathEmpty
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	path := cfg.Path
	if path == constants.SQLiteInMemoryPath {
		path = InMemoryPath()
	}

	poolSize := cfg.PoolSize
	if poolSize <= 0 {
		poolSize = constants.DefaultSQLitePoolSize
	}

	if IsInMemory(path) {
		poolSize = 1
	}

	inner, err := sqlitex.NewPool(path, sqlitex.PoolOptions{
		PoolSize: poolSize,
		PrepareConn: func(conn *sqlite.Conn) error {
			return prepareConnection(conn, cfg.OnConnect)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("opening sqlite pool %s: %w", path, err)
	}

	logger.Debug("sqlite pool opened", zap.String("path", path), zap.Int("pool_size", poolSize))

	return &Pool{inner: inner, logger: logger, path: path}, nil
}

// Take borrows a connection, blocking until one is free or ctx is done.
func (p *Pool) Take(ctx context.Context) (*sqlite.Conn, error) {
	conn, err := p.inner.Take(ctx)
	if err != nil {
		return nil, fmt.Errorf("taking sqlite connection: %w", err)
	}

	return conn, nil
}

// Put returns a connection. Safe with nil.
func (p *Pool) Put(conn *sqlite.Conn) {
	p.inner.Put(conn)
}

// With runs fn on a borrowed connection.
func (p *Pool) With(ctx context.Context, fn func(conn *sqlite.Conn) error) error {
	conn, err := p.Take(ctx)
	if err != nil {
		return err
	}
	defer p.Put(conn)

	return fn(conn)
}

// Close closes every connection, waiting for borrowed ones to return.
func (p *Pool) Close() error {
	err := p.inner.Close()
	if err != nil {
		p.logger.Error("sqlite pool close error", zap.String("path", p.path), zap.Error(err))

		return fmt.Errorf("closing sqlite pool %s: %w", p.path, err)
	}

	p.logger.Debug("sqlite pool closed", zap.String("path", p.path))

	return nil
}

func prepareConnection(conn *sqlite.Conn, onConnect func(*sqlite.Conn) error) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		fmt.Sprintf("PRAGMA busy_timeout=%d", constants.SQLiteBusyTimeoutMillis),
		"PRAGMA temp_store=MEMORY",
	}

	for _, pragma := range pragmas {
		err := sqlitex.ExecuteTransient(conn, pragma, nil)
		if err != nil {
			return fmt.Errorf("%s: %w", pragma, err)
		}
	}

	if onConnect != nil {
		err := onConnect(conn)
		if err != nil {
			return fmt.Errorf("preparing connection: %w", err)
		}
	}

	return nil
}

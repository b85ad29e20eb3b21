// Package environments remembers environment names per company in SQLite.
// The API has no environment listing, so this store is the only source
// of the environments the client knows about.
package environments

import (
	"context"
	"fmt"

	"github.com/fivetwenty-io/giantswarm/internal/constants"
	"github.com/fivetwenty-io/giantswarm/internal/sqlitepool"
	"github.com/fivetwenty-io/giantswarm/pkg/giantswarm"
	"go.uber.org/zap"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Uniqueness of (company_name, name) is enforced by callers, not by the
// schema.
const schema = `
CREATE TABLE IF NOT EXISTS environments (
	id           INTEGER PRIMARY KEY,
	name         CHAR(100) NOT NULL,
	company_name CHAR(100) NOT NULL
);`

// Store implements giantswarm.EnvironmentStore.
type Store struct {
	pool *sqlitepool.Pool
}

var _ giantswarm.EnvironmentStore = (*Store)(nil)

// Open opens the store at path, creating the file and table as needed.
// An empty path opens an in-memory database.
func Open(path string, logger *zap.Logger) (*Store, error) {
	if path == "" {
		path = sqlitepool.InMemoryPath()
	}

	pool, err := sqlitepool.Open(sqlitepool.Config{
		Path:   path,
		Logger: logger,
		OnConnect: func(conn *sqlite.Conn) error {
			return sqlitex.ExecuteScript(conn, schema, nil)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("opening environment store: %w", err)
	}

	return &Store{pool: pool}, nil
}

// All lists every environment ordered by company, then name.
func (s *Store) All(ctx context.Context) ([]giantswarm.Environment, error) {
	environments := []giantswarm.Environment{}

	err := s.pool.With(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`SELECT name, company_name FROM environments ORDER BY company_name ASC, name ASC`,
			&sqlitex.ExecOptions{
				ResultFunc: func(stmt *sqlite.Stmt) error {
					environments = append(environments, giantswarm.Environment{
						Name:        stmt.ColumnText(0),
						CompanyName: stmt.ColumnText(1),
					})

					return nil
				},
			})
	})
	if err != nil {
		return nil, fmt.Errorf("listing environments: %w", err)
	}

	return environments, nil
}

// AllForCompany lists the environment names of one company.
func (s *Store) AllForCompany(ctx context.Context, companyName string) ([]string, error) {
	names := []string{}

	err := s.pool.With(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`SELECT name FROM environments WHERE company_name = ? ORDER BY name ASC`,
			&sqlitex.ExecOptions{
				Args: []any{companyName},
				ResultFunc: func(stmt *sqlite.Stmt) error {
					names = append(names, stmt.ColumnText(0))

					return nil
				},
			})
	})
	if err != nil {
		return nil, fmt.Errorf("listing environments of %s: %w", companyName, err)
	}

	return names, nil
}

// Has reports whether the environment is remembered.
func (s *Store) Has(ctx context.Context, companyName, environmentName string) (bool, error) {
	var count int64

	err := s.pool.With(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn,
			`SELECT COUNT(*) FROM environments WHERE company_name = ? AND name = ?`,
			&sqlitex.ExecOptions{
				Args: []any{companyName, environmentName},
				ResultFunc: func(stmt *sqlite.Stmt) error {
					count = stmt.ColumnInt64(0)

					return nil
				},
			})
	})
	if err != nil {
		return false, fmt.Errorf("looking up environment %s/%s: %w", companyName, environmentName, err)
	}

	return count > 0, nil
}

// Add remembers an environment.
func (s *Store) Add(ctx context.Context, companyName, environmentName string) error {
	if companyName == "" {
		return constants.ErrCompanyNameRequired
	}

	if environmentName == "" {
		return constants.ErrEnvironmentNameRequired
	}

	err := s.exec(ctx, `INSERT INTO environments (name, company_name) VALUES (?, ?)`, environmentName, companyName)
	if err != nil {
		return fmt.Errorf("adding environment %s/%s: %w", companyName, environmentName, err)
	}

	return nil
}

// Remove forgets an environment.
func (s *Store) Remove(ctx context.Context, companyName, environmentName string) error {
	err := s.exec(ctx, `DELETE FROM environments WHERE company_name = ? AND name = ?`, companyName, environmentName)
	if err != nil {
		return fmt.Errorf("removing environment %s/%s: %w", companyName, environmentName, err)
	}

	return nil
}

// Clear forgets every environment.
func (s *Store) Clear(ctx context.Context) error {
	err := s.exec(ctx, `DELETE FROM environments`)
	if err != nil {
		return fmt.Errorf("clearing environments: %w", err)
	}

	return nil
}

// ClearCompany forgets the environments of one company.
func (s *Store) ClearCompany(ctx context.Context, companyName string) error {
	err := s.exec(ctx, `DELETE FROM environments WHERE company_name = ?`, companyName)
	if err != nil {
		return fmt.Errorf("clearing environments of %s: %w", companyName, err)
	}

	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.pool.Close()
}

func (s *Store) exec(ctx context.Context, query string, args ...any) error {
	return s.pool.With(ctx, func(conn *sqlite.Conn) error {
		return sqlitex.Execute(conn, query, &sqlitex.ExecOptions{Args: args})
	})
}

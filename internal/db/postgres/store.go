// Package postgres implements the db facade over PostgreSQL via sqlx.
// The production system of record for shops is Postgres; the Redis
// driver exists for deployments that keep a search replica there.
package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // postgres driver

	"github.com/kbeauty/beautyfinder/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Config holds connection parameters for a Postgres store.
type Config struct {
	DSN          string
	MaxOpenConns int
}

// Store implements db.Store via sqlx over lib/pq.
type Store struct {
	dbx *sqlx.DB
}

// NewStore opens a Postgres connection pool. The connection is verified
// lazily; use WaitForReady at startup.
func NewStore(cfg Config) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("dsn is required")
	}

	dbx, err := sqlx.Open("postgres", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		dbx.SetMaxOpenConns(cfg.MaxOpenConns)
	}

	return &Store{dbx: dbx}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.dbx.PingContext(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close shuts down the pool.
func (s *Store) Close() {
	_ = s.dbx.Close()
}

// WaitForReady polls Ping until the store responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for store: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}

// pgIdent converts an index name from the catalog's namespaced form to
// a valid Postgres identifier.
func pgIdent(name string) string {
	return strings.NewReplacer(":", "_", "-", "_").Replace(name)
}

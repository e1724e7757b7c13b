package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/kbeauty/beautyfinder/internal/db"
)

const createShopsTable = `
CREATE TABLE IF NOT EXISTS shops(
  id               TEXT PRIMARY KEY,
  name             TEXT NOT NULL DEFAULT '',
  address          TEXT NOT NULL DEFAULT '',
  phone            TEXT NOT NULL DEFAULT '',
  lat              DOUBLE PRECISION NOT NULL,
  lon              DOUBLE PRECISION NOT NULL,
  category         TEXT NOT NULL,
  sub_categories   TEXT[] NOT NULL DEFAULT '{}',
  partnership_tier TEXT NOT NULL,
  is_featured      BOOLEAN NOT NULL DEFAULT FALSE,
  featured_until   TIMESTAMPTZ,
  status           TEXT NOT NULL
);
`

// EnsureSchema creates the shops table if missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.dbx.ExecContext(ctx, createShopsTable); err != nil {
		return &db.Error{Op: db.OpDDL, Err: err}
	}
	return nil
}

// EnsureIndex materializes a catalog descriptor as a composite btree
// index. The location columns map to (lat, lon); tag columns map to
// their table columns.
func (s *Store) EnsureIndex(ctx context.Context, def *db.IndexDefinition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	columns := make([]string, 0, len(def.Fields))
	for i := range def.Fields {
		columns = append(columns, def.Fields[i].Name)
	}

	stmt := fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON shops (%s)",
		pgIdent(def.Name), strings.Join(columns, ", "))
	if _, err := s.dbx.ExecContext(ctx, stmt); err != nil {
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	return nil
}

// DropIndex removes a composite index by catalog name.
func (s *Store) DropIndex(ctx context.Context, name string) error {
	exists, err := s.IndexExists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return db.ErrIndexNotFound
	}

	stmt := fmt.Sprintf("DROP INDEX IF EXISTS %s", pgIdent(name))
	if _, err := s.dbx.ExecContext(ctx, stmt); err != nil {
		return &db.Error{Op: db.OpDropIndex, Err: err}
	}
	return nil
}

// IndexExists reports whether the composite index is present.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	var count int
	err := s.dbx.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM pg_indexes WHERE indexname = $1", pgIdent(name))
	if err != nil {
		return false, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
	return count > 0, nil
}

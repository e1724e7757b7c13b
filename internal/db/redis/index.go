package redis

import (
	"context"
	"errors"

	"github.com/kbeauty/beautyfinder/internal/db"
)

// EnsureIndex creates an FT index from the given definition, treating
// "already exists" as success.
func (s *Store) EnsureIndex(ctx context.Context, def *db.IndexDefinition) error {
	if err := def.Validate(); err != nil {
		return err
	}

	args, err := buildCreateArgs(def)
	if err != nil {
		return err
	}

	cmd := s.b().Arbitrary("FT.CREATE").Args(args...).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "index already exists") {
			return nil
		}
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	return nil
}

// DropIndex removes an FT index by name.
func (s *Store) DropIndex(ctx context.Context, name string) error {
	cmd := s.b().Arbitrary("FT.DROPINDEX").Args(name).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "unknown index name") {
			return db.ErrIndexNotFound
		}
		return &db.Error{Op: db.OpDropIndex, Err: err}
	}
	return nil
}

// IndexExists probes index existence via FT.INFO; "unknown index name"
// means absent.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	cmd := s.b().Arbitrary("FT.INFO").Args(name).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		if isRedisErr(err, "unknown index name") {
			return false, nil
		}
		return false, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
	return true, nil
}

func buildCreateArgs(idx *db.IndexDefinition) ([]string, error) {
	args := []string{idx.Name, "ON", "HASH"}

	if idx.Prefix != "" {
		args = append(args, "PREFIX", "1", idx.Prefix)
	}

	args = append(args, "SCHEMA")

	for i := range idx.Fields {
		f := &idx.Fields[i]
		args = append(args, f.Name)
		switch f.Type {
		case db.IndexFieldTag:
			args = append(args, "TAG", "SEPARATOR", db.CategorySeparator)
		case db.IndexFieldNumeric:
			args = append(args, "NUMERIC")
		default:
			return nil, errors.New("unknown field type")
		}
	}

	return args, nil
}

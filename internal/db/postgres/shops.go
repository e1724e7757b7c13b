package postgres

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/kbeauty/beautyfinder/internal/db"
)

const upsertShop = `
INSERT INTO shops (id, name, address, phone, lat, lon, category, sub_categories,
                   partnership_tier, is_featured, featured_until, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (id) DO UPDATE SET
  name             = EXCLUDED.name,
  address          = EXCLUDED.address,
  phone            = EXCLUDED.phone,
  lat              = EXCLUDED.lat,
  lon              = EXCLUDED.lon,
  category         = EXCLUDED.category,
  sub_categories   = EXCLUDED.sub_categories,
  partnership_tier = EXCLUDED.partnership_tier,
  is_featured      = EXCLUDED.is_featured,
  featured_until   = EXCLUDED.featured_until,
  status           = EXCLUDED.status;
`

// UpsertShops writes shop documents in one transaction.
func (s *Store) UpsertShops(ctx context.Context, docs []db.ShopDoc) error {
	if len(docs) == 0 {
		return nil
	}

	tx, err := s.dbx.BeginTxx(ctx, nil)
	if err != nil {
		return &db.Error{Op: db.OpInsert, Err: err}
	}

	for i := range docs {
		if err := upsertOne(ctx, tx, &docs[i]); err != nil {
			_ = tx.Rollback()
			return &db.Error{Op: db.OpInsert, Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return &db.Error{Op: db.OpInsert, Err: err}
	}
	return nil
}

func upsertOne(ctx context.Context, tx *sqlx.Tx, doc *db.ShopDoc) error {
	f := doc.Fields

	lat, err := strconv.ParseFloat(f[db.FieldLat], 64)
	if err != nil {
		return fmt.Errorf("shop %s: invalid lat: %w", doc.ID, err)
	}
	lon, err := strconv.ParseFloat(f[db.FieldLon], 64)
	if err != nil {
		return fmt.Errorf("shop %s: invalid lon: %w", doc.ID, err)
	}

	main, subs := splitCategories(f[db.FieldCategory])

	var featuredUntil interface{}
	if raw := f[db.FieldFeaturedUntil]; raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return fmt.Errorf("shop %s: invalid featured_until: %w", doc.ID, err)
		}
		featuredUntil = t
	}

	_, err = tx.ExecContext(ctx, upsertShop,
		doc.ID,
		f[db.FieldName],
		f[db.FieldAddress],
		f[db.FieldPhone],
		lat,
		lon,
		main,
		pq.Array(subs),
		f[db.FieldTier],
		f[db.FieldFeatured] == "true",
		featuredUntil,
		f[db.FieldStatus],
	)
	if err != nil {
		return fmt.Errorf("shop %s: %w", doc.ID, err)
	}
	return nil
}

// splitCategories splits the canonical comma-joined category field into
// main category and sub-categories.
func splitCategories(joined string) (string, []string) {
	parts := strings.Split(joined, db.CategorySeparator)
	if len(parts) == 0 || parts[0] == "" {
		return "", nil
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return parts[0], parts[1:]
}

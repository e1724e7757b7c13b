package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/kbeauty/beautyfinder/internal/db"
)

// shopRow mirrors the shops table for sqlx scanning.
type shopRow struct {
	ID            string         `db:"id"`
	Name          string         `db:"name"`
	Address       string         `db:"address"`
	Phone         string         `db:"phone"`
	Lat           float64        `db:"lat"`
	Lon           float64        `db:"lon"`
	Category      string         `db:"category"`
	SubCategories pq.StringArray `db:"sub_categories"`
	Tier          string         `db:"partnership_tier"`
	IsFeatured    bool           `db:"is_featured"`
	FeaturedUntil sql.NullTime   `db:"featured_until"`
	Status        string         `db:"status"`
}

// SearchShops executes the bounded lookup as a single SELECT. The index
// name is advisory: Postgres picks the plan itself, but the catalog's
// DDL guarantees a matching composite index exists for every predicate
// combination the planner emits.
//
// The SELECT asks for one row beyond the limit so Total can signal a
// truncated candidate set without a separate COUNT round trip.
func (s *Store) SearchShops(ctx context.Context, q *db.ShopQuery) (*db.SearchResult, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	overfetch := *q
	overfetch.Limit = q.Limit + 1
	stmt, args := buildSelect(&overfetch)

	var rows []shopRow
	if err := s.dbx.SelectContext(ctx, &rows, stmt, args...); err != nil {
		return nil, &db.Error{Op: db.OpSelect, Err: err}
	}
	rows, total := trimToLimit(rows, q.Limit)

	entries := make([]db.SearchEntry, 0, len(rows))
	for i := range rows {
		entries = append(entries, entryFromRow(&rows[i]))
	}

	return &db.SearchResult{Total: total, Entries: entries}, nil
}

// trimToLimit drops the sentinel row of a limit+1 fetch. The returned
// total is len(rows) when the fetch was complete, limit+1 when more
// rows matched than the limit allowed, a lower bound on the true count.
func trimToLimit(rows []shopRow, limit int) ([]shopRow, int) {
	if len(rows) <= limit {
		return rows, len(rows)
	}
	return rows[:limit], limit + 1
}

// buildSelect composes the WHERE clause from tag predicates and the
// bounding box. A wrapping box becomes a longitude disjunction.
func buildSelect(q *db.ShopQuery) (string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)

	arg := func(v interface{}) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	for _, tag := range q.Tags {
		switch tag.Field {
		case db.FieldCategory:
			// A category filter matches the main category or any
			// sub-category, same as the comma-separated TAG field on Redis.
			p := arg(tag.Value)
			where = append(where, fmt.Sprintf("(category = %s OR %s = ANY(sub_categories))", p, p))
		case db.FieldFeatured:
			where = append(where, fmt.Sprintf("is_featured = %s", arg(tag.Value == "true")))
		default:
			where = append(where, fmt.Sprintf("%s = %s", tag.Field, arg(tag.Value)))
		}
	}

	where = append(where, fmt.Sprintf("lat BETWEEN %s AND %s", arg(q.Box.MinLat), arg(q.Box.MaxLat)))

	switch {
	case q.Box.WrapsLon:
		where = append(where, fmt.Sprintf("(lon >= %s OR lon <= %s)", arg(q.Box.MinLon), arg(q.Box.MaxLon)))
	case q.Box.MinLon <= -180 && q.Box.MaxLon >= 180:
		// full longitude cover, nothing to prune
	default:
		where = append(where, fmt.Sprintf("lon BETWEEN %s AND %s", arg(q.Box.MinLon), arg(q.Box.MaxLon)))
	}

	stmt := fmt.Sprintf(`SELECT id, name, address, phone, lat, lon, category, sub_categories,
       partnership_tier, is_featured, featured_until, status
FROM shops
WHERE %s
ORDER BY id
LIMIT %s`, strings.Join(where, " AND "), arg(q.Limit))

	return stmt, args
}

// entryFromRow flattens a row into the canonical string-field entry
// shared with the Redis driver.
func entryFromRow(r *shopRow) db.SearchEntry {
	categories := r.Category
	if len(r.SubCategories) > 0 {
		categories += db.CategorySeparator + strings.Join(r.SubCategories, db.CategorySeparator)
	}

	featuredUntil := ""
	if r.FeaturedUntil.Valid {
		featuredUntil = r.FeaturedUntil.Time.UTC().Format(time.RFC3339)
	}

	return db.SearchEntry{
		Key: r.ID,
		Fields: map[string]string{
			db.FieldID:            r.ID,
			db.FieldName:          r.Name,
			db.FieldAddress:       r.Address,
			db.FieldPhone:         r.Phone,
			db.FieldLat:           strconv.FormatFloat(r.Lat, 'f', -1, 64),
			db.FieldLon:           strconv.FormatFloat(r.Lon, 'f', -1, 64),
			db.FieldCategory:      categories,
			db.FieldTier:          r.Tier,
			db.FieldFeatured:      strconv.FormatBool(r.IsFeatured),
			db.FieldFeaturedUntil: featuredUntil,
			db.FieldStatus:        r.Status,
		},
	}
}

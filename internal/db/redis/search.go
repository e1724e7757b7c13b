package redis

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/rueidis"

	"github.com/kbeauty/beautyfinder/internal/db"
)

// SearchShops runs a bounded index lookup via FT.SEARCH: tag predicates
// resolved by the chosen index plus numeric lat/lon box ranges.
func (s *Store) SearchShops(ctx context.Context, q *db.ShopQuery) (*db.SearchResult, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	queryStr := buildShopQuery(q)

	args := []string{q.IndexName, queryStr}

	if len(q.ReturnFields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(q.ReturnFields)))
		args = append(args, q.ReturnFields...)
	}

	args = append(args, "LIMIT", "0", strconv.Itoa(q.Limit), "DIALECT", "2")

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	return parseSearchResult(raw)
}

// buildShopQuery composes the FT.SEARCH query string from tag filters
// and the bounding box. A wrapping box becomes a disjunction of two
// longitude ranges; a full-longitude box drops the clause entirely.
func buildShopQuery(q *db.ShopQuery) string {
	var parts []string

	for _, tag := range q.Tags {
		parts = append(parts, buildTagFilter(tag.Field, tag.Value))
	}

	parts = append(parts, fmt.Sprintf("@%s:[%g %g]", db.FieldLat, q.Box.MinLat, q.Box.MaxLat))

	switch {
	case q.Box.WrapsLon:
		parts = append(parts, fmt.Sprintf("(@%s:[%g 180] | @%s:[-180 %g])",
			db.FieldLon, q.Box.MinLon, db.FieldLon, q.Box.MaxLon))
	case q.Box.MinLon <= -180 && q.Box.MaxLon >= 180:
		// full longitude cover, nothing to prune
	default:
		parts = append(parts, fmt.Sprintf("@%s:[%g %g]", db.FieldLon, q.Box.MinLon, q.Box.MaxLon))
	}

	if len(parts) == 0 {
		return "*"
	}
	return strings.Join(parts, " ")
}

func buildTagFilter(key, value string) string {
	escaped := tagEscaper.Replace(value)
	return fmt.Sprintf("@%s:{%s}", key, escaped)
}

// parseSearchResult decodes the 2-stride FT.SEARCH reply:
// [total, key1, fields1, key2, fields2, ...].
func parseSearchResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{}, nil
	}

	entries := make([]db.SearchEntry, 0, total)
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}

		fields, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}

		entries = append(entries, db.SearchEntry{
			Key:    key,
			Fields: parseFieldPairs(fields),
		})
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}

var tagEscaper = strings.NewReplacer(
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	" ", "\\ ",
)

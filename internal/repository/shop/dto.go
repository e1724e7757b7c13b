package shop

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/kbeauty/beautyfinder/internal/db"
	"github.com/kbeauty/beautyfinder/internal/domain/geo"
	"github.com/kbeauty/beautyfinder/internal/domain/shop"
)

// recordFromEntry parses a store entry into a shop record. Coordinates
// must parse; everything else degrades to zero values.
func recordFromEntry(entry *db.SearchEntry) (shop.Record, error) {
	f := entry.Fields

	lat, err := strconv.ParseFloat(f[db.FieldLat], 64)
	if err != nil {
		return shop.Record{}, fmt.Errorf("parse lat for %s: %w", entry.Key, err)
	}
	lon, err := strconv.ParseFloat(f[db.FieldLon], 64)
	if err != nil {
		return shop.Record{}, fmt.Errorf("parse lon for %s: %w", entry.Key, err)
	}

	id := f[db.FieldID]
	if id == "" {
		id = strings.TrimPrefix(entry.Key, Namespace+"shops:")
	}

	main, subs := parseCategories(f[db.FieldCategory])

	var featuredUntil time.Time
	if raw := f[db.FieldFeaturedUntil]; raw != "" {
		featuredUntil, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return shop.Record{}, fmt.Errorf("parse featured_until for %s: %w", entry.Key, err)
		}
	}

	return shop.Record{
		ID:            id,
		Name:          f[db.FieldName],
		Address:       f[db.FieldAddress],
		Phone:         f[db.FieldPhone],
		Location:      geo.Point{Lat: lat, Lon: lon},
		Category:      main,
		SubCategories: subs,
		Tier:          shop.Tier(f[db.FieldTier]),
		IsFeatured:    f[db.FieldFeatured] == "true",
		FeaturedUntil: featuredUntil,
		Status:        shop.Status(f[db.FieldStatus]),
	}, nil
}

// DocFromRecord flattens a record into the canonical ingest payload.
func DocFromRecord(rec *shop.Record) db.ShopDoc {
	categories := string(rec.Category)
	for _, sub := range rec.SubCategories {
		categories += db.CategorySeparator + string(sub)
	}

	featuredUntil := ""
	if !rec.FeaturedUntil.IsZero() {
		featuredUntil = rec.FeaturedUntil.UTC().Format(time.RFC3339)
	}

	return db.ShopDoc{
		ID: rec.ID,
		Fields: map[string]string{
			db.FieldID:            rec.ID,
			db.FieldName:          rec.Name,
			db.FieldAddress:       rec.Address,
			db.FieldPhone:         rec.Phone,
			db.FieldLat:           strconv.FormatFloat(rec.Location.Lat, 'f', -1, 64),
			db.FieldLon:           strconv.FormatFloat(rec.Location.Lon, 'f', -1, 64),
			db.FieldCategory:      categories,
			db.FieldTier:          string(rec.Tier),
			db.FieldFeatured:      strconv.FormatBool(rec.IsFeatured),
			db.FieldFeaturedUntil: featuredUntil,
			db.FieldStatus:        string(rec.Status),
		},
	}
}

func parseCategories(joined string) (shop.Category, []shop.Category) {
	parts := strings.Split(joined, db.CategorySeparator)
	if len(parts) == 0 || parts[0] == "" {
		return "", nil
	}

	main := shop.Category(parts[0])
	var subs []shop.Category
	for _, p := range parts[1:] {
		if p != "" {
			subs = append(subs, shop.Category(p))
		}
	}
	return main, subs
}

// Package query defines the validated discovery request.
package query

import (
	"fmt"
	"math"

	"github.com/kbeauty/beautyfinder/internal/domain"
	"github.com/kbeauty/beautyfinder/internal/domain/geo"
	"github.com/kbeauty/beautyfinder/internal/domain/shop"
)

// Page size limits. The radius is not capped: the bounding box clamps
// at the poles and widens to the full longitude range on its own, so
// any positive finite radius is executable.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Query is a validated shop discovery request. Construct with New; a
// zero Query is not usable.
type Query struct {
	origin       geo.Point
	radiusKm     float64
	category     shop.Category
	tier         shop.Tier
	onlyFeatured bool
	limit        int
	offset       int
	cursor       string
}

// New validates and normalizes discovery parameters. Category and tier
// are optional (empty string disables the filter). Limit defaults to 20
// and is capped at 100. Violations return domain.ErrInvalidQuery.
func New(
	origin geo.Point,
	radiusKm float64,
	category shop.Category,
	tier shop.Tier,
	onlyFeatured bool,
	limit, offset int,
	cursor string,
) (Query, error) {
	if !origin.Valid() {
		return Query{}, fmt.Errorf("%w: origin out of bounds (%.4f, %.4f)",
			domain.ErrInvalidQuery, origin.Lat, origin.Lon)
	}
	if radiusKm <= 0 || math.IsNaN(radiusKm) || math.IsInf(radiusKm, 0) {
		return Query{}, fmt.Errorf("%w: radius_km must be a positive number, got %g", domain.ErrInvalidQuery, radiusKm)
	}
	if category != "" && !category.IsValid() {
		return Query{}, fmt.Errorf("%w: unknown category %q", domain.ErrInvalidQuery, category)
	}
	if tier != "" && !tier.IsValid() {
		return Query{}, fmt.Errorf("%w: unknown partnership tier %q", domain.ErrInvalidQuery, tier)
	}
	if limit < 0 {
		return Query{}, fmt.Errorf("%w: limit must be positive, got %d", domain.ErrInvalidQuery, limit)
	}
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		return Query{}, fmt.Errorf("%w: offset must not be negative, got %d", domain.ErrInvalidQuery, offset)
	}

	return Query{
		origin:       origin,
		radiusKm:     radiusKm,
		category:     category,
		tier:         tier,
		onlyFeatured: onlyFeatured,
		limit:        limit,
		offset:       offset,
		cursor:       cursor,
	}, nil
}

// Origin returns the caller's coordinates.
func (q *Query) Origin() geo.Point { return q.origin }

// RadiusKm returns the search horizon in kilometers.
func (q *Query) RadiusKm() float64 { return q.radiusKm }

// Category returns the category filter, empty when unset.
func (q *Query) Category() shop.Category { return q.category }

// Tier returns the partnership tier filter, empty when unset.
func (q *Query) Tier() shop.Tier { return q.tier }

// OnlyFeatured reports whether only featured shops are requested.
func (q *Query) OnlyFeatured() bool { return q.onlyFeatured }

// Limit returns the page size.
func (q *Query) Limit() int { return q.limit }

// Offset returns the pagination offset. Ignored when a cursor is set.
func (q *Query) Offset() int { return q.offset }

// Cursor returns the pagination cursor: the ID of the last item of the
// previous page in ranked order, empty for the first page.
func (q *Query) Cursor() string { return q.cursor }

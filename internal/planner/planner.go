// Package planner translates a discovery query into a concrete access
// plan: bounding-box prefilter, index choice, and the residual
// predicates the index does not resolve.
package planner

import (
	"fmt"

	"github.com/kbeauty/beautyfinder/internal/catalog"
	"github.com/kbeauty/beautyfinder/internal/domain"
	"github.com/kbeauty/beautyfinder/internal/domain/geo"
	"github.com/kbeauty/beautyfinder/internal/domain/query"
	"github.com/kbeauty/beautyfinder/internal/domain/shop"
)

// IndexedPredicates are the filters the store applies through the chosen
// index. Zero values mean the predicate is absent.
type IndexedPredicates struct {
	Category shop.Category
	Tier     shop.Tier
	Featured bool
}

// ResidualPredicates are re-checked exactly against each candidate after
// the store narrows the set. The radius check is always residual because
// the bounding box is a superset; the featured window is always residual
// because the index only sees the boolean flag, not featured_until.
type ResidualPredicates struct {
	Origin       geo.Point
	RadiusKm     float64
	Category     shop.Category
	Tier         shop.Tier
	OnlyFeatured bool
}

// AccessPlan is the ephemeral execution recipe for one query.
// Constructed per query, discarded after execution, never persisted.
type AccessPlan struct {
	Index    catalog.Descriptor
	Box      geo.Box
	Indexed  IndexedPredicates
	Residual ResidualPredicates
}

// Planner chooses access plans against a static index catalog. Pure:
// Plan has no side effects.
type Planner struct {
	catalog *catalog.Catalog
}

// New creates a planner over the given catalog.
func New(c *catalog.Catalog) *Planner {
	return &Planner{catalog: c}
}

// Plan builds the access plan for a validated query. Queries constructed
// through query.New are already validated; the invariants are re-checked
// here so a plan is never produced for garbage input.
func (p *Planner) Plan(q *query.Query) (AccessPlan, error) {
	if !q.Origin().Valid() {
		return AccessPlan{}, fmt.Errorf("%w: origin out of bounds", domain.ErrInvalidQuery)
	}
	if q.RadiusKm() <= 0 {
		return AccessPlan{}, fmt.Errorf("%w: radius_km must be positive", domain.ErrInvalidQuery)
	}
	if q.Limit() <= 0 {
		return AccessPlan{}, fmt.Errorf("%w: limit must be positive", domain.ErrInvalidQuery)
	}

	sig := catalog.Signature{
		Category: q.Category() != "",
		Tier:     q.Tier() != "",
		Featured: q.OnlyFeatured(),
	}
	idx := p.catalog.Select(sig)

	plan := AccessPlan{
		Index: idx,
		Box:   geo.BoundingBox(q.Origin(), q.RadiusKm()),
		Residual: ResidualPredicates{
			Origin:       q.Origin(),
			RadiusKm:     q.RadiusKm(),
			OnlyFeatured: q.OnlyFeatured(),
		},
	}

	// Predicates the index resolves move into the store query; the rest
	// stay residual. The featured flag narrows candidates when indexed
	// but the time window is still re-checked engine-side.
	if q.Category() != "" {
		if idx.Covers(sig, catalog.ColumnCategory) {
			plan.Indexed.Category = q.Category()
		} else {
			plan.Residual.Category = q.Category()
		}
	}
	if q.Tier() != "" {
		if idx.Covers(sig, catalog.ColumnTier) {
			plan.Indexed.Tier = q.Tier()
		} else {
			plan.Residual.Tier = q.Tier()
		}
	}
	if q.OnlyFeatured() && idx.Covers(sig, catalog.ColumnFeatured) {
		plan.Indexed.Featured = true
	}

	return plan, nil
}

// Package shop translates access plans into bounded store lookups and
// store entries back into shop records.
package shop

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kbeauty/beautyfinder/internal/db"
	"github.com/kbeauty/beautyfinder/internal/domain/shop"
	"github.com/kbeauty/beautyfinder/internal/logger"
	"github.com/kbeauty/beautyfinder/internal/metrics"
	"github.com/kbeauty/beautyfinder/internal/planner"
)

// DefaultFetchLimit caps how many candidates one plan execution pulls
// from the store before residual filtering.
const DefaultFetchLimit = 1000

// store is the consumer interface for plan execution (ISP).
type store interface {
	SearchShops(ctx context.Context, q *db.ShopQuery) (*db.SearchResult, error)
}

// Repo implements usecase/discovery.ShopFetcher.
type Repo struct {
	store      store
	fetchLimit int
}

// New creates a shop repository.
func New(s store) *Repo {
	return &Repo{store: s, fetchLimit: DefaultFetchLimit}
}

// WithFetchLimit overrides the candidate fetch cap.
func (r *Repo) WithFetchLimit(limit int) *Repo {
	if limit > 0 {
		r.fetchLimit = limit
	}
	return r
}

// FetchActiveShops executes the plan: active shops inside the bounding
// box, narrowed by the predicates the chosen index resolves. Entries
// that fail to parse or carry out-of-bounds coordinates are skipped, not
// surfaced as errors.
func (r *Repo) FetchActiveShops(ctx context.Context, plan *planner.AccessPlan) ([]shop.Record, error) {
	q := &db.ShopQuery{
		IndexName: IndexName(plan.Index),
		Box: db.Box{
			MinLat:   plan.Box.MinLat,
			MaxLat:   plan.Box.MaxLat,
			MinLon:   plan.Box.MinLon,
			MaxLon:   plan.Box.MaxLon,
			WrapsLon: plan.Box.WrapsLon,
		},
		Tags:         tagsFromPlan(plan),
		ReturnFields: returnFields(),
		Limit:        r.fetchLimit,
	}

	sr, err := r.store.SearchShops(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search shops via %s: %w", q.IndexName, err)
	}

	// The store reports the full match count; when it exceeds what the
	// fetch limit let through, ranking only sees a subset of the radius.
	if sr.Total > len(sr.Entries) {
		metrics.TruncatedFetches.Inc()
		logger.FromContext(ctx).Warn("candidate set truncated",
			zap.Int("matched", sr.Total),
			zap.Int("fetched", len(sr.Entries)),
			zap.String("index", q.IndexName),
		)
	}

	records := make([]shop.Record, 0, len(sr.Entries))
	for i := range sr.Entries {
		rec, err := recordFromEntry(&sr.Entries[i])
		if err != nil {
			continue
		}
		if !rec.Location.Valid() {
			continue
		}
		records = append(records, rec)
	}

	return records, nil
}

// tagsFromPlan builds the index-resolved predicates. Status is always
// pinned to active.
func tagsFromPlan(plan *planner.AccessPlan) []db.TagFilter {
	tags := []db.TagFilter{{Field: db.FieldStatus, Value: string(shop.StatusActive)}}

	if plan.Indexed.Category != "" {
		tags = append(tags, db.TagFilter{Field: db.FieldCategory, Value: string(plan.Indexed.Category)})
	}
	if plan.Indexed.Tier != "" {
		tags = append(tags, db.TagFilter{Field: db.FieldTier, Value: string(plan.Indexed.Tier)})
	}
	if plan.Indexed.Featured {
		tags = append(tags, db.TagFilter{Field: db.FieldFeatured, Value: "true"})
	}

	return tags
}

func returnFields() []string {
	return []string{
		db.FieldID, db.FieldName, db.FieldAddress, db.FieldPhone,
		db.FieldLat, db.FieldLon, db.FieldCategory, db.FieldTier,
		db.FieldFeatured, db.FieldFeaturedUntil, db.FieldStatus,
	}
}

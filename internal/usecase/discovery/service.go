// Package discovery is the public entry point of the shop discovery
// engine: plan, fetch, residual-filter, rank, paginate, all under an
// explicit latency budget.
package discovery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kbeauty/beautyfinder/internal/domain"
	"github.com/kbeauty/beautyfinder/internal/domain/geo"
	"github.com/kbeauty/beautyfinder/internal/domain/query"
	"github.com/kbeauty/beautyfinder/internal/domain/result"
	"github.com/kbeauty/beautyfinder/internal/domain/shop"
	"github.com/kbeauty/beautyfinder/internal/logger"
	"github.com/kbeauty/beautyfinder/internal/metrics"
	"github.com/kbeauty/beautyfinder/internal/planner"
	"github.com/kbeauty/beautyfinder/internal/ranking"
)

// Default latency budgets. The target is observability-only; the hard
// budget aborts the search; the store timeout bounds the sole blocking
// point so a slow store cannot consume the whole budget.
const (
	DefaultTargetBudget = 100 * time.Millisecond
	DefaultHardBudget   = 200 * time.Millisecond
	DefaultStoreTimeout = 80 * time.Millisecond
)

// Page is one ranked, truncated result page plus the scanned-candidate
// count for observability.
type Page struct {
	Results      []result.Ranked
	TotalScanned int
	HasMore      bool
	NextCursor   string
}

// Service orchestrates planner, store fetch, ranking, and pagination.
// Stateless: concurrent Search calls share only the read-only catalog
// behind the planner and the store's connection pool.
type Service struct {
	shops        ShopFetcher
	planner      *planner.Planner
	targetBudget time.Duration
	hardBudget   time.Duration
	storeTimeout time.Duration
	now          func() time.Time
}

// New creates a discovery service with default budgets.
func New(shops ShopFetcher, p *planner.Planner) *Service {
	return &Service{
		shops:        shops,
		planner:      p,
		targetBudget: DefaultTargetBudget,
		hardBudget:   DefaultHardBudget,
		storeTimeout: DefaultStoreTimeout,
		now:          time.Now,
	}
}

// WithBudgets overrides the latency budgets. Non-positive values keep
// the defaults.
func (s *Service) WithBudgets(target, hard, store time.Duration) *Service {
	if target > 0 {
		s.targetBudget = target
	}
	if hard > 0 {
		s.hardBudget = hard
	}
	if store > 0 {
		s.storeTimeout = store
	}
	return s
}

// WithClock overrides the time source.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Search runs one discovery query. Empty result sets are success;
// errors are domain.ErrInvalidQuery, domain.ErrStoreUnavailable, or
// domain.ErrDeadlineExceeded. Caller cancellation propagates into the
// in-flight store fetch.
func (s *Service) Search(ctx context.Context, q *query.Query) (*Page, error) {
	start := s.now()

	page, err := s.search(ctx, q)

	elapsed := s.now().Sub(start)
	metrics.SearchDuration.WithLabelValues(statusLabel(err)).Observe(elapsed.Seconds())
	if err == nil && elapsed > s.targetBudget {
		metrics.SlowSearches.Inc()
		logger.FromContext(ctx).Warn("slow search",
			zap.Duration("elapsed", elapsed),
			zap.Duration("target", s.targetBudget),
		)
	}

	return page, err
}

func (s *Service) search(ctx context.Context, q *query.Query) (*Page, error) {
	plan, err := s.planner.Plan(q)
	if err != nil {
		// no partial work: the store is never touched for a bad query
		return nil, err
	}
	metrics.IndexSelected.WithLabelValues(plan.Index.Name()).Inc()

	// The whole search runs under the hard budget; the fetch additionally
	// runs under the store timeout.
	opCtx, cancelOp := context.WithTimeout(ctx, s.hardBudget)
	defer cancelOp()

	fetchCtx, cancelFetch := context.WithTimeout(opCtx, s.storeTimeout)
	defer cancelFetch()

	candidates, err := s.shops.FetchActiveShops(fetchCtx, &plan)
	if err != nil {
		return nil, s.classifyFetchError(ctx, opCtx, err)
	}
	metrics.CandidatesScanned.Observe(float64(len(candidates)))

	now := s.now()
	survivors := applyResidual(candidates, &plan, now)
	ranked := ranking.Rank(survivors, plan.Residual.Origin, now)

	if err := opCtx.Err(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("search canceled: %w", ctx.Err())
		}
		return nil, fmt.Errorf("%w: search exceeded %s", domain.ErrDeadlineExceeded, s.hardBudget)
	}

	page := paginate(ranked, q)
	page.TotalScanned = len(candidates)
	return page, nil
}

// classifyFetchError maps a failed store fetch onto the error taxonomy.
// An aborted fetch is the caller's cancellation, the hard budget, or a
// store timeout, checked in that order.
func (s *Service) classifyFetchError(ctx, opCtx context.Context, err error) error {
	if ctx.Err() != nil {
		return fmt.Errorf("fetch canceled: %w", ctx.Err())
	}
	if errors.Is(err, context.DeadlineExceeded) {
		if opCtx.Err() != nil {
			return fmt.Errorf("%w: store fetch exceeded %s", domain.ErrDeadlineExceeded, s.hardBudget)
		}
		return fmt.Errorf("%w: store fetch exceeded %s", domain.ErrStoreUnavailable, s.storeTimeout)
	}
	return fmt.Errorf("%w: %w", domain.ErrStoreUnavailable, err)
}

// applyResidual re-checks every predicate exactly against each
// candidate: exact radius, category, tier, the featured time window,
// and the active-status guard. Predicates the index already resolved
// are re-checked too, so a store that mishandles a tag filter can
// never leak a non-matching shop into the results.
func applyResidual(candidates []shop.Record, plan *planner.AccessPlan, now time.Time) []shop.Record {
	res := &plan.Residual

	category := res.Category
	if category == "" {
		category = plan.Indexed.Category
	}
	tier := res.Tier
	if tier == "" {
		tier = plan.Indexed.Tier
	}

	survivors := make([]shop.Record, 0, len(candidates))
	for _, rec := range candidates {
		if rec.Status != shop.StatusActive {
			continue
		}
		if !rec.Location.Valid() {
			continue
		}
		if geo.HaversineKm(res.Origin, rec.Location) > res.RadiusKm {
			continue
		}
		if category != "" && !rec.InCategory(category) {
			continue
		}
		if tier != "" && rec.Tier != tier {
			continue
		}
		if res.OnlyFeatured && !rec.EffectivelyFeatured(now) {
			continue
		}
		survivors = append(survivors, rec)
	}
	return survivors
}

// paginate applies cursor or offset, then the limit. The cursor is the
// ID of the last item of the previous page in ranked order.
func paginate(ranked []result.Ranked, q *query.Query) *Page {
	start := q.Offset()
	if cursor := q.Cursor(); cursor != "" {
		start = len(ranked)
		for i := range ranked {
			if ranked[i].Shop.ID == cursor {
				start = i + 1
				break
			}
		}
	}

	if start > len(ranked) {
		start = len(ranked)
	}
	end := start + q.Limit()
	if end > len(ranked) {
		end = len(ranked)
	}

	page := &Page{
		Results: ranked[start:end],
		HasMore: end < len(ranked),
	}
	if page.HasMore && len(page.Results) > 0 {
		page.NextCursor = page.Results[len(page.Results)-1].Shop.ID
	}
	return page
}

func statusLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidQuery):
		return "invalid_query"
	case errors.Is(err, domain.ErrDeadlineExceeded):
		return "deadline_exceeded"
	case errors.Is(err, domain.ErrStoreUnavailable):
		return "store_unavailable"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// the caller's own context ended, whether by cancel or deadline
		return "canceled"
	default:
		return "error"
	}
}

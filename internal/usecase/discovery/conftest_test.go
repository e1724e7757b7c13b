package discovery

import (
	"context"
	"testing"
	"time"

	"github.com/kbeauty/beautyfinder/internal/catalog"
	"github.com/kbeauty/beautyfinder/internal/domain/geo"
	"github.com/kbeauty/beautyfinder/internal/domain/query"
	"github.com/kbeauty/beautyfinder/internal/domain/shop"
	"github.com/kbeauty/beautyfinder/internal/planner"
)

var (
	cityHall = geo.Point{Lat: 37.5665, Lon: 126.9780}
	testNow  = time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
)

// mockFetcher implements ShopFetcher for tests.
type mockFetcher struct {
	shops    []shop.Record
	err      error
	called   int
	lastPlan *planner.AccessPlan
	fetchFn  func(ctx context.Context, plan *planner.AccessPlan) ([]shop.Record, error)
}

func (m *mockFetcher) FetchActiveShops(ctx context.Context, plan *planner.AccessPlan) ([]shop.Record, error) {
	m.called++
	m.lastPlan = plan
	if m.fetchFn != nil {
		return m.fetchFn(ctx, plan)
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.shops, nil
}

func newTestService(fetcher *mockFetcher) *Service {
	svc := New(fetcher, planner.New(catalog.Default()))
	svc.WithClock(func() time.Time { return testNow })
	return svc
}

// northOf returns a point km kilometers north of city hall.
func northOf(km float64) geo.Point {
	return geo.Point{Lat: cityHall.Lat + km/111.19, Lon: cityHall.Lon}
}

func activeShop(id string, km float64) shop.Record {
	return shop.Record{
		ID:       id,
		Name:     "shop " + id,
		Location: northOf(km),
		Category: shop.CategoryNail,
		Tier:     shop.TierNonPartnered,
		Status:   shop.StatusActive,
	}
}

func mustQuery(t *testing.T, radiusKm float64, opts ...func(*queryParams)) *query.Query {
	t.Helper()
	p := queryParams{radiusKm: radiusKm}
	for _, opt := range opts {
		opt(&p)
	}
	q, err := query.New(cityHall, p.radiusKm, p.category, p.tier, p.onlyFeatured, p.limit, p.offset, p.cursor)
	if err != nil {
		t.Fatalf("query.New: %v", err)
	}
	return &q
}

type queryParams struct {
	radiusKm     float64
	category     shop.Category
	tier         shop.Tier
	onlyFeatured bool
	limit        int
	offset       int
	cursor       string
}

func withCategory(c shop.Category) func(*queryParams) {
	return func(p *queryParams) { p.category = c }
}

func withTier(tr shop.Tier) func(*queryParams) {
	return func(p *queryParams) { p.tier = tr }
}

func withFeaturedOnly() func(*queryParams) {
	return func(p *queryParams) { p.onlyFeatured = true }
}

func withLimit(n int) func(*queryParams) {
	return func(p *queryParams) { p.limit = n }
}

func withCursor(c string) func(*queryParams) {
	return func(p *queryParams) { p.cursor = c }
}

func withOffset(n int) func(*queryParams) {
	return func(p *queryParams) { p.offset = n }
}

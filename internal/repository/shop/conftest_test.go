package shop

import (
	"context"

	"github.com/kbeauty/beautyfinder/internal/catalog"
	"github.com/kbeauty/beautyfinder/internal/db"
	"github.com/kbeauty/beautyfinder/internal/domain/geo"
	"github.com/kbeauty/beautyfinder/internal/planner"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn  func(ctx context.Context, q *db.ShopQuery) (*db.SearchResult, error)
	lastQuery *db.ShopQuery
}

func (m *mockStore) SearchShops(ctx context.Context, q *db.ShopQuery) (*db.SearchResult, error) {
	m.lastQuery = q
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func newTestRepo() (*Repo, *mockStore) {
	ms := &mockStore{}
	return New(ms), ms
}

func testPlan() *planner.AccessPlan {
	origin := geo.Point{Lat: 37.5665, Lon: 126.9780}
	return &planner.AccessPlan{
		Index: catalog.Default().Fallback(),
		Box:   geo.BoundingBox(origin, 3),
		Residual: planner.ResidualPredicates{
			Origin:   origin,
			RadiusKm: 3,
		},
	}
}

func entryFields(overrides map[string]string) map[string]string {
	fields := map[string]string{
		db.FieldID:       "shop-1",
		db.FieldName:     "Test Nail",
		db.FieldLat:      "37.5665",
		db.FieldLon:      "126.978",
		db.FieldCategory: "nail",
		db.FieldTier:     "non_partnered",
		db.FieldFeatured: "false",
		db.FieldStatus:   "active",
	}
	for k, v := range overrides {
		fields[k] = v
	}
	return fields
}

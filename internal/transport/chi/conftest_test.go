package chi

import (
	"context"
	"net/http/httptest"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kbeauty/beautyfinder/internal/domain/geo"
	"github.com/kbeauty/beautyfinder/internal/domain/query"
	"github.com/kbeauty/beautyfinder/internal/domain/result"
	"github.com/kbeauty/beautyfinder/internal/domain/shop"
	discoveryuc "github.com/kbeauty/beautyfinder/internal/usecase/discovery"
	healthuc "github.com/kbeauty/beautyfinder/internal/usecase/health"
)

// mockSearcher implements Searcher for handler tests.
type mockSearcher struct {
	page      *discoveryuc.Page
	err       error
	lastQuery *query.Query
}

func (m *mockSearcher) Search(_ context.Context, q *query.Query) (*discoveryuc.Page, error) {
	m.lastQuery = q
	if m.err != nil {
		return nil, m.err
	}
	if m.page != nil {
		return m.page, nil
	}
	return &discoveryuc.Page{}, nil
}

// mockHealth implements HealthChecker for handler tests.
type mockHealth struct {
	report healthuc.Report
}

func (m *mockHealth) Check(_ context.Context) healthuc.Report {
	if m.report.Status == "" {
		return healthuc.Report{Status: healthuc.Healthy, Checks: map[string]string{"store": "ok"}}
	}
	return m.report
}

func newTestServer(searcher *mockSearcher, health *mockHealth) *httptest.Server {
	if searcher == nil {
		searcher = &mockSearcher{}
	}
	if health == nil {
		health = &mockHealth{}
	}
	srv := NewServer(searcher, health, zap.NewNop())
	r := chi.NewRouter()
	srv.Routes(r)
	return httptest.NewServer(r)
}

func rankedHit(id string, km float64, rank int) result.Ranked {
	return result.Ranked{
		Shop: shop.Record{
			ID:       id,
			Name:     "shop " + id,
			Location: geo.Point{Lat: 37.57, Lon: 126.98},
			Category: shop.CategoryNail,
			Tier:     shop.TierNonPartnered,
			Status:   shop.StatusActive,
		},
		DistanceKm: km,
		Rank:       rank,
	}
}

func searchURL(base string) string {
	return base + "/api/v1/shops/search?lat=37.5665&lon=126.978&radius_km=3"
}

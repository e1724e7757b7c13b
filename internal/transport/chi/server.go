// Package chi exposes the discovery engine over HTTP.
package chi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kbeauty/beautyfinder/internal/domain"
	"github.com/kbeauty/beautyfinder/internal/domain/geo"
	"github.com/kbeauty/beautyfinder/internal/domain/query"
	"github.com/kbeauty/beautyfinder/internal/domain/result"
	"github.com/kbeauty/beautyfinder/internal/domain/shop"
	discoveryuc "github.com/kbeauty/beautyfinder/internal/usecase/discovery"
	healthuc "github.com/kbeauty/beautyfinder/internal/usecase/health"
)

// Searcher runs discovery queries.
type Searcher interface {
	Search(ctx context.Context, q *query.Query) (*discoveryuc.Page, error)
}

// HealthChecker reports component availability.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server handles the discovery HTTP API.
type Server struct {
	discovery Searcher
	health    HealthChecker
	logger    *zap.Logger
}

// NewServer creates an HTTP API server.
func NewServer(discovery Searcher, health HealthChecker, logger *zap.Logger) *Server {
	return &Server{discovery: discovery, health: health, logger: logger}
}

// Routes registers all handlers on the router.
func (s *Server) Routes(r chi.Router) {
	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())
	r.Get("/api/v1/shops/search", s.handleSearch)
}

// shopResponse is the JSON shape of one ranked hit.
type shopResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name,omitempty"`
	Address       string   `json:"address,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	Category      string   `json:"category"`
	SubCategories []string `json:"sub_categories,omitempty"`
	Tier          string   `json:"partnership_tier"`
	IsFeatured    bool     `json:"is_featured"`
	FeaturedUntil string   `json:"featured_until,omitempty"`
	DistanceKm    float64  `json:"distance_km"`
	Rank          int      `json:"rank"`
}

type searchResponse struct {
	Items        []shopResponse `json:"items"`
	TotalScanned int            `json:"total_scanned"`
	HasMore      bool           `json:"has_more"`
	NextCursor   string         `json:"next_cursor,omitempty"`
}

// handleSearch handles GET /api/v1/shops/search.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q, err := queryFromRequest(r)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	page, err := s.discovery.Search(r.Context(), &q)
	if err != nil {
		s.writeDomainError(w, err)
		return
	}

	resp := searchResponse{
		Items:        make([]shopResponse, len(page.Results)),
		TotalScanned: page.TotalScanned,
		HasMore:      page.HasMore,
		NextCursor:   page.NextCursor,
	}
	for i := range page.Results {
		resp.Items[i] = shopToResponse(&page.Results[i])
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleHealth handles GET /healthz.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, map[string]interface{}{
		"status": report.Status,
		"checks": report.Checks,
	})
}

// queryFromRequest parses and validates HTTP query parameters into a
// discovery query. Parameter syntax errors and domain validation both
// surface as ErrInvalidQuery.
func queryFromRequest(r *http.Request) (query.Query, error) {
	params := r.URL.Query()

	lat, err := parseFloatParam(params.Get("lat"), "lat")
	if err != nil {
		return query.Query{}, err
	}
	lon, err := parseFloatParam(params.Get("lon"), "lon")
	if err != nil {
		return query.Query{}, err
	}
	radius, err := parseFloatParam(params.Get("radius_km"), "radius_km")
	if err != nil {
		return query.Query{}, err
	}

	limit, err := parseIntParam(params.Get("limit"), "limit")
	if err != nil {
		return query.Query{}, err
	}
	offset, err := parseIntParam(params.Get("offset"), "offset")
	if err != nil {
		return query.Query{}, err
	}

	onlyFeatured := false
	if raw := params.Get("featured"); raw != "" {
		onlyFeatured, err = strconv.ParseBool(raw)
		if err != nil {
			return query.Query{}, invalidParam("featured", raw)
		}
	}

	return query.New(
		geo.Point{Lat: lat, Lon: lon},
		radius,
		shop.Category(params.Get("category")),
		shop.Tier(params.Get("tier")),
		onlyFeatured,
		limit,
		offset,
		params.Get("cursor"),
	)
}

func shopToResponse(ranked *result.Ranked) shopResponse {
	rec := &ranked.Shop

	subs := make([]string, 0, len(rec.SubCategories))
	for _, c := range rec.SubCategories {
		subs = append(subs, string(c))
	}

	featuredUntil := ""
	if !rec.FeaturedUntil.IsZero() {
		featuredUntil = rec.FeaturedUntil.UTC().Format(time.RFC3339)
	}

	return shopResponse{
		ID:            rec.ID,
		Name:          rec.Name,
		Address:       rec.Address,
		Phone:         rec.Phone,
		Latitude:      rec.Location.Lat,
		Longitude:     rec.Location.Lon,
		Category:      string(rec.Category),
		SubCategories: subs,
		Tier:          string(rec.Tier),
		IsFeatured:    rec.IsFeatured,
		FeaturedUntil: featuredUntil,
		DistanceKm:    ranked.DistanceKm,
		Rank:          ranked.Rank,
	}
}

// writeDomainError maps domain errors onto HTTP statuses.
func (s *Server) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		writeError(w, http.StatusBadRequest, "invalid_query", err.Error())
	case errors.Is(err, domain.ErrDeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "deadline_exceeded", "search exceeded its latency budget")
	case errors.Is(err, domain.ErrStoreUnavailable):
		writeError(w, http.StatusServiceUnavailable, "store_unavailable", "shop store is unavailable")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		// the client went away or its deadline ran out before we answered;
		// nothing sensible to write
		s.logger.Debug("request canceled", zap.Error(err))
	default:
		s.logger.Error("search failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func parseFloatParam(raw, name string) (float64, error) {
	if raw == "" {
		return 0, missingParam(name)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, invalidParam(name, raw)
	}
	return v, nil
}

func parseIntParam(raw, name string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, invalidParam(name, raw)
	}
	return v, nil
}

func missingParam(name string) error {
	return fmt.Errorf("%w: missing required parameter %q", domain.ErrInvalidQuery, name)
}

func invalidParam(name, raw string) error {
	return fmt.Errorf("%w: invalid value %q for parameter %q", domain.ErrInvalidQuery, raw, name)
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}

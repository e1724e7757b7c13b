// Package metrics holds the Prometheus collectors for the discovery
// engine and its HTTP surface. Registration is explicit, no init().
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// SearchDuration tracks end-to-end discovery latency. Buckets bracket
	// the 100ms target and the 200ms acceptable ceiling.
	SearchDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "beautyfinder",
			Name:      "discovery_search_duration_seconds",
			Help:      "Discovery search duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.075, 0.1, 0.15, 0.2, 0.3, 0.5, 1},
		},
		[]string{"status"},
	)

	// CandidatesScanned tracks how many store candidates each search
	// examined before residual filtering.
	CandidatesScanned = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "beautyfinder",
			Name:      "discovery_candidates_scanned",
			Help:      "Candidates fetched from the store per search",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		},
	)

	// SlowSearches counts searches that finished over the latency target
	// but within the hard budget.
	SlowSearches = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "beautyfinder",
			Name:      "discovery_slow_searches_total",
			Help:      "Searches slower than the latency target",
		},
	)

	// TruncatedFetches counts fetches where the store matched more shops
	// than the fetch limit allowed through. Ranking then only sees a
	// subset, so a rising counter means the limit needs revisiting.
	TruncatedFetches = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "beautyfinder",
			Name:      "discovery_truncated_fetches_total",
			Help:      "Store fetches that hit the candidate fetch limit",
		},
	)

	// IndexSelected counts access-path choices by index name, exposing
	// which composite indexes actually earn their storage.
	IndexSelected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "beautyfinder",
			Name:      "discovery_index_selected_total",
			Help:      "Access plans by selected index",
		},
		[]string{"index"},
	)
)

// RegisterDiscoveryMetrics registers the discovery collectors.
func RegisterDiscoveryMetrics() {
	prometheus.MustRegister(SearchDuration)
	prometheus.MustRegister(CandidatesScanned)
	prometheus.MustRegister(SlowSearches)
	prometheus.MustRegister(TruncatedFetches)
	prometheus.MustRegister(IndexSelected)
}

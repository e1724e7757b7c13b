// Package result defines the ranked discovery hit.
package result

import "github.com/kbeauty/beautyfinder/internal/domain/shop"

// Ranked is a shop annotated with its distance from the query origin and
// its rank position. Computed fresh per query; distance is
// origin-dependent and never cached across requests.
type Ranked struct {
	Shop       shop.Record
	DistanceKm float64
	Rank       int
}

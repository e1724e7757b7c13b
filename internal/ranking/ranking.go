// Package ranking orders discovery candidates with the deterministic
// multi-key comparator: partnership tier, featured state, distance, ID.
package ranking

import (
	"sort"
	"time"

	"github.com/kbeauty/beautyfinder/internal/domain/geo"
	"github.com/kbeauty/beautyfinder/internal/domain/result"
	"github.com/kbeauty/beautyfinder/internal/domain/shop"
)

// Key is the precomputed sort key of one candidate. Featured state is
// frozen at ranking time so every comparison within one query sees the
// same value.
type Key struct {
	Partnered  bool
	Featured   bool
	DistanceKm float64
	ID         string
}

// Less is the ranking comparator, a strict weak order over keys:
//  1. partnered before non-partnered
//  2. featured before non-featured
//  3. ascending distance
//  4. ascending ID, so repeated queries over unchanged data produce
//     identical ordering
func Less(a, b Key) bool {
	if a.Partnered != b.Partnered {
		return a.Partnered
	}
	if a.Featured != b.Featured {
		return a.Featured
	}
	if a.DistanceKm != b.DistanceKm {
		return a.DistanceKm < b.DistanceKm
	}
	return a.ID < b.ID
}

// KeyOf builds the sort key for a shop at the given origin and instant.
func KeyOf(r *shop.Record, origin geo.Point, now time.Time) Key {
	return Key{
		Partnered:  r.Tier == shop.TierPartnered,
		Featured:   r.EffectivelyFeatured(now),
		DistanceKm: geo.HaversineKm(origin, r.Location),
		ID:         r.ID,
	}
}

// Rank sorts candidates by the comparator and returns them annotated
// with distance and 1-based rank. The input slice is not modified.
func Rank(candidates []shop.Record, origin geo.Point, now time.Time) []result.Ranked {
	type keyed struct {
		rec shop.Record
		key Key
	}

	ks := make([]keyed, len(candidates))
	for i, rec := range candidates {
		ks[i] = keyed{rec: rec, key: KeyOf(&rec, origin, now)}
	}

	sort.Slice(ks, func(i, j int) bool { return Less(ks[i].key, ks[j].key) })

	ranked := make([]result.Ranked, len(ks))
	for i, k := range ks {
		ranked[i] = result.Ranked{
			Shop:       k.rec,
			DistanceKm: k.key.DistanceKm,
			Rank:       i + 1,
		}
	}
	return ranked
}

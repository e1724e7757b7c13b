// Package catalog declares which composite indexes exist over the shop
// store and picks an access path for a given predicate combination.
//
// Every index leads with status and ends with location; the predicate
// columns in between are usable only as a prefix, mirroring how
// composite btree and FT indexes behave. The catalog makes the
// over-indexing vs full-scan trade-off explicit and testable instead of
// burying it in ad-hoc query strings.
package catalog

import "sort"

// Column is a predicate column a composite index can cover, in its
// position between the leading status column and the trailing location
// columns.
type Column string

// Predicate columns.
const (
	ColumnCategory Column = "category"
	ColumnTier     Column = "partnership_tier"
	ColumnFeatured Column = "is_featured"
)

// Signature records which optional predicates a query sets. Status is
// always filtered to active and is not part of the signature.
type Signature struct {
	Category bool
	Tier     bool
	Featured bool
}

// Has reports whether the signature sets the given column's predicate.
func (s Signature) Has(c Column) bool {
	switch c {
	case ColumnCategory:
		return s.Category
	case ColumnTier:
		return s.Tier
	case ColumnFeatured:
		return s.Featured
	}
	return false
}

// Count returns the number of set predicates.
func (s Signature) Count() int {
	n := 0
	for _, c := range []Column{ColumnCategory, ColumnTier, ColumnFeatured} {
		if s.Has(c) {
			n++
		}
	}
	return n
}

// Descriptor describes one composite index: its name, the predicate
// columns after status in index order, and whether it also covers
// location for spatial pruning.
type Descriptor struct {
	name           string
	columns        []Column
	coversLocation bool
}

// Name returns the index name.
func (d Descriptor) Name() string { return d.name }

// Columns returns the predicate columns after status, in index order.
func (d Descriptor) Columns() []Column { return d.columns }

// CoversLocation reports whether the index includes location columns.
func (d Descriptor) CoversLocation() bool { return d.coversLocation }

// CoveredColumns returns the longest prefix of the index's predicate
// columns whose predicates the signature all sets. Columns past the
// first unset predicate are unusable, prefix semantics.
func (d Descriptor) CoveredColumns(sig Signature) []Column {
	var covered []Column
	for _, c := range d.columns {
		if !sig.Has(c) {
			break
		}
		covered = append(covered, c)
	}
	return covered
}

// Covers reports whether the index resolves the given column for the
// signature.
func (d Descriptor) Covers(sig Signature, c Column) bool {
	for _, col := range d.CoveredColumns(sig) {
		if col == c {
			return true
		}
	}
	return false
}

// Catalog is a static, read-only set of index descriptors. Safe for
// concurrent use.
type Catalog struct {
	descriptors []Descriptor
	fallback    Descriptor
}

// Default returns the production index catalog over
// (status, category, partnership_tier, is_featured, location).
func Default() *Catalog {
	return New([]Descriptor{
		{name: "shops:status-cat-loc", columns: []Column{ColumnCategory}, coversLocation: true},
		{name: "shops:status-tier-loc", columns: []Column{ColumnTier}, coversLocation: true},
		{name: "shops:status-feat-loc", columns: []Column{ColumnFeatured}, coversLocation: true},
		{name: "shops:status-cat-tier-loc", columns: []Column{ColumnCategory, ColumnTier}, coversLocation: true},
		{
			name:           "shops:status-cat-tier-feat-loc",
			columns:        []Column{ColumnCategory, ColumnTier, ColumnFeatured},
			coversLocation: true,
		},
	})
}

// New builds a catalog from descriptors. The default (status, location)
// index is always present as the fallback.
func New(descriptors []Descriptor) *Catalog {
	return &Catalog{
		descriptors: descriptors,
		fallback:    Descriptor{name: "shops:status-loc", coversLocation: true},
	}
}

// NewDescriptor creates an index descriptor. Exposed for tests and for
// store drivers bootstrapping physical indexes.
func NewDescriptor(name string, columns []Column, coversLocation bool) Descriptor {
	return Descriptor{name: name, columns: columns, coversLocation: coversLocation}
}

// Fallback returns the default (status, location) index.
func (c *Catalog) Fallback() Descriptor { return c.fallback }

// All returns every descriptor including the fallback, for physical
// index bootstrap.
func (c *Catalog) All() []Descriptor {
	all := make([]Descriptor, 0, len(c.descriptors)+1)
	all = append(all, c.fallback)
	all = append(all, c.descriptors...)
	return all
}

// Select returns the best-matching index for the signature using
// longest-prefix-match semantics: most covered predicates wins; ties
// prefer an index that covers location, then the narrower index, then
// name order for determinism. With nothing covered the default
// (status, location) index is returned.
func (c *Catalog) Select(sig Signature) Descriptor {
	best := c.fallback
	bestCovered := 0

	candidates := make([]Descriptor, len(c.descriptors))
	copy(candidates, c.descriptors)
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].name < candidates[j].name
	})

	for _, d := range candidates {
		covered := len(d.CoveredColumns(sig))
		if covered == 0 {
			continue
		}
		switch {
		case covered > bestCovered:
			best, bestCovered = d, covered
		case covered == bestCovered:
			if betterOnTie(d, best) {
				best = d
			}
		}
	}

	return best
}

// betterOnTie breaks a covered-count tie: prefer location coverage, then
// fewer total columns (the narrower index).
func betterOnTie(candidate, current Descriptor) bool {
	if candidate.coversLocation != current.coversLocation {
		return candidate.coversLocation
	}
	return len(candidate.columns) < len(current.columns)
}

// Package shop defines the shop record the discovery engine reads from
// the store. Records enter the store already geocoded; this package does
// not resolve addresses.
package shop

import (
	"time"

	"github.com/kbeauty/beautyfinder/internal/domain/geo"
)

// Category is a service category of a shop.
type Category string

// Service categories.
const (
	CategoryNail          Category = "nail"
	CategoryEyelash       Category = "eyelash"
	CategoryWaxing        Category = "waxing"
	CategoryHair          Category = "hair"
	CategoryEyebrowTattoo Category = "eyebrow_tattoo"
)

// Categories lists all valid service categories.
func Categories() []Category {
	return []Category{CategoryNail, CategoryEyelash, CategoryWaxing, CategoryHair, CategoryEyebrowTattoo}
}

// IsValid reports whether the category is a known enum value.
func (c Category) IsValid() bool {
	switch c {
	case CategoryNail, CategoryEyelash, CategoryWaxing, CategoryHair, CategoryEyebrowTattoo:
		return true
	}
	return false
}

// Tier is the business partnership classification of a shop. It affects
// ranking priority, not eligibility.
type Tier string

// Partnership tiers.
const (
	TierPartnered    Tier = "partnered"
	TierNonPartnered Tier = "non_partnered"
)

// IsValid reports whether the tier is a known enum value.
func (t Tier) IsValid() bool {
	return t == TierPartnered || t == TierNonPartnered
}

// Status is the lifecycle state of a shop. Only active shops are ever
// returned by discovery.
type Status string

// Shop statuses.
const (
	StatusActive              Status = "active"
	StatusInactive            Status = "inactive"
	StatusPendingApproval     Status = "pending_approval"
	StatusPendingVerification Status = "pending_verification"
	StatusSuspended           Status = "suspended"
)

// IsValid reports whether the status is a known enum value.
func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusPendingApproval, StatusPendingVerification, StatusSuspended:
		return true
	}
	return false
}

// Record is one sellable location.
type Record struct {
	ID            string
	Name          string
	Address       string
	Phone         string
	Location      geo.Point
	Category      Category
	SubCategories []Category
	Tier          Tier
	IsFeatured    bool
	FeaturedUntil time.Time
	Status        Status
}

// EffectivelyFeatured reports whether the shop counts as featured at the
// given instant: the flag is set and the feature window, if any, has not
// closed.
func (r *Record) EffectivelyFeatured(now time.Time) bool {
	if !r.IsFeatured {
		return false
	}
	return r.FeaturedUntil.IsZero() || r.FeaturedUntil.After(now)
}

// InCategory reports whether the shop offers the given category as its
// main or a secondary service.
func (r *Record) InCategory(c Category) bool {
	if r.Category == c {
		return true
	}
	for _, sub := range r.SubCategories {
		if sub == c {
			return true
		}
	}
	return false
}

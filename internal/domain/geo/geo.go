// Package geo provides great-circle distance and bounding-box math for
// shop discovery. All distances are kilometers, all coordinates WGS-84
// decimal degrees.
package geo

import "math"

// EarthRadiusKm is the mean radius of Earth used for haversine distance.
const EarthRadiusKm = 6371.0

// polarGuardDeg is the latitude beyond which longitude pruning is
// abandoned: near the poles a degree of longitude shrinks toward zero,
// so the box over-covers the full longitude range instead.
const polarGuardDeg = 89.5

// Point is a WGS-84 coordinate in decimal degrees.
type Point struct {
	Lat float64
	Lon float64
}

// Valid reports whether the point lies within latitude/longitude bounds.
func (p Point) Valid() bool {
	return p.Lat >= -90 && p.Lat <= 90 && p.Lon >= -180 && p.Lon <= 180
}

// HaversineKm returns the great-circle distance in kilometers between two
// points. Symmetric, and zero iff a == b.
func HaversineKm(a, b Point) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusKm * c
}

// Box is an axis-aligned latitude/longitude rectangle. When WrapsLon is
// set the longitude interval crosses the ±180 meridian and reads as
// [MinLon, 180] ∪ [-180, MaxLon].
type Box struct {
	MinLat   float64
	MaxLat   float64
	MinLon   float64
	MaxLon   float64
	WrapsLon bool
}

// BoundingBox returns a conservative rectangle guaranteed to contain
// every point within radiusKm of origin. Near the poles the box widens
// to the full longitude range; across the ±180 meridian it wraps rather
// than truncating.
func BoundingBox(origin Point, radiusKm float64) Box {
	dLatDeg := radiusKm / EarthRadiusKm * 180 / math.Pi

	box := Box{
		MinLat: origin.Lat - dLatDeg,
		MaxLat: origin.Lat + dLatDeg,
	}

	// Latitude clamps at the poles; a box touching a pole must cover all
	// longitudes because the circle surrounds the pole.
	touchesPole := false
	if box.MinLat < -90 {
		box.MinLat = -90
		touchesPole = true
	}
	if box.MaxLat > 90 {
		box.MaxLat = 90
		touchesPole = true
	}

	// Longitude shrink factor uses the box latitude closest to a pole so
	// the widening is conservative for every latitude inside the box.
	extremeLat := math.Max(math.Abs(box.MinLat), math.Abs(box.MaxLat))
	if touchesPole || extremeLat >= polarGuardDeg {
		box.MinLon = -180
		box.MaxLon = 180
		return box
	}

	dLonDeg := dLatDeg / math.Cos(extremeLat*math.Pi/180)
	if dLonDeg >= 180 {
		box.MinLon = -180
		box.MaxLon = 180
		return box
	}

	box.MinLon = origin.Lon - dLonDeg
	box.MaxLon = origin.Lon + dLonDeg

	if box.MinLon < -180 {
		box.MinLon += 360
		box.WrapsLon = true
	}
	if box.MaxLon > 180 {
		box.MaxLon -= 360
		box.WrapsLon = true
	}

	return box
}

// Contains reports whether the point lies inside the box.
func (b Box) Contains(p Point) bool {
	if p.Lat < b.MinLat || p.Lat > b.MaxLat {
		return false
	}
	if b.WrapsLon {
		return p.Lon >= b.MinLon || p.Lon <= b.MaxLon
	}
	return p.Lon >= b.MinLon && p.Lon <= b.MaxLon
}

// FullLon reports whether the box covers the entire longitude range.
func (b Box) FullLon() bool {
	return !b.WrapsLon && b.MinLon <= -180 && b.MaxLon >= 180
}

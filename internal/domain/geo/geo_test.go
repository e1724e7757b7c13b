package geo

import (
	"math"
	"math/rand"
	"testing"
)

func TestPoint_Valid(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"seoul", Point{Lat: 37.5665, Lon: 126.9780}, true},
		{"origin", Point{}, true},
		{"north pole", Point{Lat: 90, Lon: 0}, true},
		{"antimeridian", Point{Lat: 0, Lon: -180}, true},
		{"lat too high", Point{Lat: 90.01, Lon: 0}, false},
		{"lat too low", Point{Lat: -91, Lon: 0}, false},
		{"lon too high", Point{Lat: 0, Lon: 180.5}, false},
		{"lon too low", Point{Lat: 0, Lon: -181}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.p.Valid(); got != tt.want {
				t.Errorf("Valid(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestHaversineKm_Zero(t *testing.T) {
	p := Point{Lat: 37.5665, Lon: 126.9780}
	if d := HaversineKm(p, p); d != 0 {
		t.Errorf("distance to self = %g, want 0", d)
	}
}

func TestHaversineKm_Symmetric(t *testing.T) {
	a := Point{Lat: 37.5665, Lon: 126.9780}
	b := Point{Lat: 35.1796, Lon: 129.0756}
	d1 := HaversineKm(a, b)
	d2 := HaversineKm(b, a)
	if math.Abs(d1-d2) > 1e-9 {
		t.Errorf("asymmetric distance: %g vs %g", d1, d2)
	}
}

func TestHaversineKm_MeridianDegree(t *testing.T) {
	// One degree of latitude along a meridian is ~111.19 km for the
	// 6371 km mean radius.
	a := Point{Lat: 0, Lon: 0}
	b := Point{Lat: 1, Lon: 0}
	d := HaversineKm(a, b)
	if math.Abs(d-111.19) > 1.0 {
		t.Errorf("meridian degree = %g km, want ~111.19", d)
	}
}

func TestHaversineKm_KnownDistance(t *testing.T) {
	// Seoul city hall to Busan city hall, ~325 km.
	seoul := Point{Lat: 37.5665, Lon: 126.9780}
	busan := Point{Lat: 35.1796, Lon: 129.0756}
	d := HaversineKm(seoul, busan)
	if d < 315 || d > 335 {
		t.Errorf("Seoul-Busan = %g km, want ~325", d)
	}
}

func TestBoundingBox_ContainsRadius(t *testing.T) {
	// The box must contain every point within the radius. Sample
	// directions around several origins and check points just inside
	// the circle.
	origins := []Point{
		{Lat: 37.5665, Lon: 126.9780},
		{Lat: 0, Lon: 0},
		{Lat: -45, Lon: 170},
		{Lat: 60, Lon: -179.9},
		{Lat: 88, Lon: 10},
	}
	radii := []float64{0.5, 5, 50, 100}

	rng := rand.New(rand.NewSource(1))
	for _, origin := range origins {
		for _, radius := range radii {
			box := BoundingBox(origin, radius)
			for i := 0; i < 500; i++ {
				bearing := rng.Float64() * 2 * math.Pi
				dist := rng.Float64() * radius
				p := destination(origin, bearing, dist)
				if !box.Contains(p) {
					t.Fatalf("box %+v for origin %+v radius %g does not contain %+v (dist %g)",
						box, origin, radius, p, dist)
				}
			}
		}
	}
}

func TestBoundingBox_NearPoleCoversAllLongitudes(t *testing.T) {
	box := BoundingBox(Point{Lat: 89.8, Lon: 45}, 50)
	if !box.FullLon() {
		t.Errorf("near-pole box should cover all longitudes, got %+v", box)
	}
	if box.MaxLat != 90 {
		t.Errorf("MaxLat = %g, want clamped to 90", box.MaxLat)
	}
}

func TestBoundingBox_AntimeridianWrap(t *testing.T) {
	box := BoundingBox(Point{Lat: 0, Lon: 179.9}, 50)
	if !box.WrapsLon {
		t.Fatalf("box should wrap across the antimeridian: %+v", box)
	}
	if !box.Contains(Point{Lat: 0, Lon: -179.8}) {
		t.Errorf("wrapped box should contain points past the antimeridian")
	}
	if box.Contains(Point{Lat: 0, Lon: 0}) {
		t.Errorf("wrapped box should not contain the far side of the globe")
	}
}

func TestBoundingBox_NoWrapAwayFromAntimeridian(t *testing.T) {
	box := BoundingBox(Point{Lat: 37.5665, Lon: 126.9780}, 10)
	if box.WrapsLon {
		t.Errorf("Seoul box should not wrap: %+v", box)
	}
	if box.MinLat >= box.MaxLat || box.MinLon >= box.MaxLon {
		t.Errorf("degenerate box: %+v", box)
	}
}

func TestBox_Contains(t *testing.T) {
	box := Box{MinLat: 37.0, MaxLat: 38.0, MinLon: 126.0, MaxLon: 128.0}
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"inside", Point{Lat: 37.5, Lon: 127.0}, true},
		{"on edge", Point{Lat: 37.0, Lon: 126.0}, true},
		{"north of box", Point{Lat: 38.5, Lon: 127.0}, false},
		{"west of box", Point{Lat: 37.5, Lon: 125.0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

// destination computes the point at the given distance and initial
// bearing from the origin on a sphere of EarthRadiusKm.
func destination(origin Point, bearing, distKm float64) Point {
	lat1 := origin.Lat * math.Pi / 180
	lon1 := origin.Lon * math.Pi / 180
	ad := distKm / EarthRadiusKm

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(ad) + math.Cos(lat1)*math.Sin(ad)*math.Cos(bearing))
	lon2 := lon1 + math.Atan2(
		math.Sin(bearing)*math.Sin(ad)*math.Cos(lat1),
		math.Cos(ad)-math.Sin(lat1)*math.Sin(lat2),
	)

	// Normalize longitude to [-180, 180].
	lonDeg := lon2 * 180 / math.Pi
	for lonDeg > 180 {
		lonDeg -= 360
	}
	for lonDeg < -180 {
		lonDeg += 360
	}
	return Point{Lat: lat2 * 180 / math.Pi, Lon: lonDeg}
}

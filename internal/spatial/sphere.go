package spatial

import (
	"fmt"

	"github.com/golang/geo/s2"
)

// LoopFromDegrees builds a normalized S2 loop from (lon, lat) vertices in degrees.
// The ring must not repeat its first vertex.
func LoopFromDegrees(ring []Point) (*s2.Loop, error) {
	if len(ring) < 3 {
		return nil, fmt.Errorf("loop needs at least 3 vertices, got %d", len(ring))
	}

	points := make([]s2.Point, len(ring))
	for i, p := range ring {
		ll := s2.LatLngFromDegrees(p.Y, p.X)
		if !ll.IsValid() {
			return nil, fmt.Errorf("vertex %d (%g, %g) is not a valid coordinate", i, p.X, p.Y)
		}
		points[i] = s2.PointFromLatLng(ll)
	}

	loop := s2.LoopFromPoints(points)
	if err := loop.Validate(); err != nil {
		return nil, fmt.Errorf("invalid loop: %w", err)
	}

	// Rings may arrive in either winding; the interior is the smaller side
	loop.Normalize()
	return loop, nil
}

// SphericalAreaKm2 returns the area enclosed by a ring of (lon, lat) vertices in square kilometers
func SphericalAreaKm2(ring []Point) (float64, error) {
	loop, err := LoopFromDegrees(ring)
	if err != nil {
		return 0, err
	}
	return loop.Area() * EarthRadiusKm * EarthRadiusKm, nil
}

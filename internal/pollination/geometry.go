package pollination

import (
	"fmt"
	"math"

	"github.com/jengzang/pollinator-abundance/internal/models"
	"github.com/jengzang/pollinator-abundance/internal/spatial"
)

// minAreaKm2 is the smallest area a zone may enclose before it is treated as degenerate
const minAreaKm2 = 1e-12

// prepareRing validates a zone boundary and returns its ring in native units,
// without the closing vertex and without repeated consecutive vertices.
func prepareRing(zone models.Zone) ([]spatial.Point, error) {
	if !zone.CRS.Valid() {
		return nil, fmt.Errorf("%s has unknown crs %q: %w", zone, zone.CRS, ErrInvalidGeometry)
	}

	ring := make([]spatial.Point, 0, len(zone.Ring))
	for i, c := range zone.Ring {
		if math.IsNaN(c.X) || math.IsNaN(c.Y) || math.IsInf(c.X, 0) || math.IsInf(c.Y, 0) {
			return nil, fmt.Errorf("%s vertex %d is not finite: %w", zone, i, ErrInvalidGeometry)
		}
		p := spatial.Point{X: c.X, Y: c.Y}
		if len(ring) > 0 && ring[len(ring)-1] == p {
			continue
		}
		ring = append(ring, p)
	}
	if len(ring) > 1 && ring[0] == ring[len(ring)-1] {
		ring = ring[:len(ring)-1]
	}

	if len(ring) < 3 {
		return nil, fmt.Errorf("%s has %d distinct vertices: %w", zone, len(ring), ErrInvalidGeometry)
	}
	if spatial.SelfIntersects(ring) {
		return nil, fmt.Errorf("%s boundary intersects itself: %w", zone, ErrInvalidGeometry)
	}

	var area float64
	if zone.CRS == models.CRSGeographic {
		a, err := spatial.SphericalAreaKm2(ring)
		if err != nil {
			return nil, fmt.Errorf("%s: %v: %w", zone, err, ErrInvalidGeometry)
		}
		area = a
	} else {
		area = spatial.PolygonArea(ring) / 1e6
	}
	if !(area > minAreaKm2) {
		return nil, fmt.Errorf("%s encloses zero area: %w", zone, ErrInvalidGeometry)
	}

	return ring, nil
}

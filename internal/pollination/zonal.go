package pollination

import (
	"fmt"
	"math"

	"github.com/jengzang/pollinator-abundance/internal/models"
	"github.com/jengzang/pollinator-abundance/internal/spatial"
)

// Zone is an area of the common grid. A cell belongs to the zone when its centre
// lies inside every ring.
type Zone struct {
	Name  string
	rings [][]spatial.Point
}

// CAZone covers the whole conservation area
func CAZone(frame *Frame) Zone {
	return Zone{Name: "CA", rings: [][]spatial.Point{frame.Boundary}}
}

// ROIZone covers the region of interest mapped through the alignment, clipped to the CA
func ROIZone(frame *Frame, a Alignment) Zone {
	return Zone{Name: "ROI", rings: [][]spatial.Point{a.FrameRing(), frame.Boundary}}
}

// Contains reports whether a frame position belongs to the zone
func (z Zone) Contains(p spatial.Point) bool {
	if len(z.rings) == 0 {
		return false
	}
	for _, ring := range z.rings {
		if !spatial.PointInPolygon(p, ring) {
			return false
		}
	}
	return true
}

// cellRange returns the grid window covering the zone's first ring
func (z Zone) cellRange(frame *Frame) (row0, row1, col0, col1 int) {
	if len(z.rings) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY, maxX, maxY := spatial.BoundingBox(z.rings[0])
	col0 = clamp(int(math.Floor(minX/frame.CellSizeKm)), 0, frame.Cols)
	col1 = clamp(int(math.Ceil(maxX/frame.CellSizeKm)), 0, frame.Cols)
	row0 = clamp(int(math.Floor(minY/frame.CellSizeKm)), 0, frame.Rows)
	row1 = clamp(int(math.Ceil(maxY/frame.CellSizeKm)), 0, frame.Rows)
	return row0, row1, col0, col1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// zoneSamples holds the valid cell values of one zone, per layer
type zoneSamples struct {
	zoneCells   int
	cellAreaKm2 float64

	pa  []float64
	hn  []float64
	fr  []float64
	hqi []float64 // sqrt(HN*FR) where both are valid
}

// Aggregate evaluates the surface over the zone and summarizes every metric.
// No-data cells are excluded; a metric without valid cells is absent.
func Aggregate(frame *Frame, zone Zone, surface *models.Raster) (models.Summary, error) {
	if surface == nil {
		return models.Summary{}, fmt.Errorf("%s: no abundance surface: %w", zone.Name, ErrDataNotFound)
	}
	if surface.CRS != frame.CRS {
		return models.Summary{}, fmt.Errorf("%s: surface crs %q does not match frame crs %q: %w",
			zone.Name, surface.CRS, frame.CRS, ErrComputation)
	}
	if err := surface.Validate(); err != nil {
		return models.Summary{}, fmt.Errorf("%s: %v: %w", zone.Name, err, ErrComputation)
	}

	s, err := sampleZone(frame, zone, surface)
	if err != nil {
		return models.Summary{}, err
	}
	return summarize(zone.Name, s)
}

func sampleZone(frame *Frame, zone Zone, surface *models.Raster) (*zoneSamples, error) {
	s := &zoneSamples{cellAreaKm2: frame.CellAreaKm2()}

	row0, row1, col0, col1 := zone.cellRange(frame)
	for row := row0; row < row1; row++ {
		for col := col0; col < col1; col++ {
			center := frame.CellCenter(row, col)
			if !zone.Contains(center) {
				continue
			}
			s.zoneCells++

			native := frame.ToNative(center)
			pa, paOK, err := sample(surface, models.LayerPollinatorAbundance, native)
			if err != nil {
				return nil, fmt.Errorf("%s cell (%d, %d): %w", zone.Name, row, col, err)
			}
			hn, hnOK, err := sample(surface, models.LayerNestingSuitability, native)
			if err != nil {
				return nil, fmt.Errorf("%s cell (%d, %d): %w", zone.Name, row, col, err)
			}
			fr, frOK, err := sample(surface, models.LayerFloralResources, native)
			if err != nil {
				return nil, fmt.Errorf("%s cell (%d, %d): %w", zone.Name, row, col, err)
			}

			if paOK {
				s.pa = append(s.pa, pa)
			}
			if hnOK {
				s.hn = append(s.hn, hn)
			}
			if frOK {
				s.fr = append(s.fr, fr)
			}
			if hnOK && frOK {
				s.hqi = append(s.hqi, math.Sqrt(hn*fr))
			}
		}
	}
	return s, nil
}

// sample reads one layer at a native position. Missing data is reported through ok;
// values no abundance model can produce are errors.
func sample(surface *models.Raster, layer models.Layer, native spatial.Point) (float64, bool, error) {
	v, ok := surface.Sample(layer, native.X, native.Y)
	if !ok {
		return 0, false, nil
	}
	if math.IsInf(v, 0) || v < 0 {
		return 0, false, fmt.Errorf("layer %s holds invalid value %g: %w", layer, v, ErrComputation)
	}
	return v, true, nil
}

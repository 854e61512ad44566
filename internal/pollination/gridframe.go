package pollination

import (
	"fmt"
	"math"

	"github.com/jengzang/pollinator-abundance/internal/models"
	"github.com/jengzang/pollinator-abundance/internal/spatial"
)

// DefaultCellSizeKm is the side of a common-grid cell when none is configured
const DefaultCellSizeKm = 0.1

// gridEpsilon absorbs floating point noise when dividing an extent into cells
const gridEpsilon = 1e-9

// Frame is the spatial reference shared by both zones of a calculation: a planar
// kilometer frame anchored at the CA's south-west bounding corner, sampled on a
// regular grid of square cells.
type Frame struct {
	CRS    models.CRS
	Origin spatial.Point // native units

	WidthKm  float64
	HeightKm float64

	CellSizeKm float64
	Cols       int
	Rows       int

	Projection spatial.Projection

	// CA boundary in frame kilometers
	Boundary []spatial.Point
}

// BuildFrame derives the common frame and grid of a conservation area
func BuildFrame(ca models.Zone, cellSizeKm float64) (*Frame, error) {
	if !(cellSizeKm > 0) || math.IsInf(cellSizeKm, 0) {
		return nil, fmt.Errorf("cell size %g km must be positive: %w", cellSizeKm, ErrComputation)
	}

	ring, err := prepareRing(ca)
	if err != nil {
		return nil, err
	}

	geographic := ca.CRS == models.CRSGeographic
	minX, minY, maxX, maxY := spatial.BoundingBox(ring)
	width, height := spatial.ExtentKm(geographic, minX, minY, maxX, maxY)

	origin := spatial.Point{X: minX, Y: minY}
	proj := spatial.NewProjection(geographic, origin)

	boundary := make([]spatial.Point, len(ring))
	for i, p := range ring {
		boundary[i] = proj.Forward(p)
	}

	// The projected boundary always starts at (0, 0); its far corner bounds the grid
	_, _, gridW, gridH := spatial.BoundingBox(boundary)

	return &Frame{
		CRS:        ca.CRS,
		Origin:     origin,
		WidthKm:    width,
		HeightKm:   height,
		CellSizeKm: cellSizeKm,
		Cols:       cellCount(gridW, cellSizeKm),
		Rows:       cellCount(gridH, cellSizeKm),
		Projection: proj,
		Boundary:   boundary,
	}, nil
}

func cellCount(extent, cell float64) int {
	n := int(math.Ceil(extent/cell - gridEpsilon))
	if n < 1 {
		return 1
	}
	return n
}

// CellCenter returns the frame position of the centre of a grid cell.
// Row 0 is the southern edge of the grid.
func (f *Frame) CellCenter(row, col int) spatial.Point {
	return spatial.Point{
		X: (float64(col) + 0.5) * f.CellSizeKm,
		Y: (float64(row) + 0.5) * f.CellSizeKm,
	}
}

// CellAreaKm2 returns the area of one grid cell
func (f *Frame) CellAreaKm2() float64 {
	return f.CellSizeKm * f.CellSizeKm
}

// ToFrame projects a native point into frame kilometers
func (f *Frame) ToFrame(native spatial.Point) spatial.Point {
	return f.Projection.Forward(native)
}

// ToNative maps a frame position back to native units
func (f *Frame) ToNative(p spatial.Point) spatial.Point {
	return f.Projection.Inverse(p)
}

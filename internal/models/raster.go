package models

import (
	"fmt"
	"math"
)

// Layer names a band of an abundance raster
type Layer string

const (
	LayerPollinatorAbundance Layer = "PA"
	LayerNestingSuitability  Layer = "HN"
	LayerFloralResources     Layer = "FR"
)

// Layers lists every band a raster may carry, in storage order
var Layers = []Layer{LayerPollinatorAbundance, LayerNestingSuitability, LayerFloralResources}

// DefaultNoData is the sentinel used when a raster does not declare one
const DefaultNoData = -9999.0

// Raster is a north-up georeferenced grid of abundance values.
// Row 0 is the northern edge; values are stored row-major.
type Raster struct {
	ID           int64   `json:"id" db:"id"`
	PlantationID int64   `json:"plantation_id" db:"plantation_id"`
	CRS          CRS     `json:"crs" db:"crs"`
	OriginX      float64 `json:"origin_x" db:"origin_x"` // west edge, native units
	OriginY      float64 `json:"origin_y" db:"origin_y"` // north edge, native units
	CellWidth    float64 `json:"cell_width" db:"cell_width"`
	CellHeight   float64 `json:"cell_height" db:"cell_height"`
	Rows         int     `json:"rows" db:"rows"`
	Cols         int     `json:"cols" db:"cols"`
	NoData       float64 `json:"nodata" db:"nodata"`

	Bands map[Layer][]float64 `json:"bands"`
}

// Validate checks that the georeference and band sizes are consistent
func (r *Raster) Validate() error {
	if r.Rows <= 0 || r.Cols <= 0 {
		return fmt.Errorf("raster %d has empty shape %dx%d", r.ID, r.Rows, r.Cols)
	}
	if !(r.CellWidth > 0) || !(r.CellHeight > 0) {
		return fmt.Errorf("raster %d has non-positive cell size %gx%g", r.ID, r.CellWidth, r.CellHeight)
	}
	if !r.CRS.Valid() {
		return fmt.Errorf("raster %d has unknown crs %q", r.ID, r.CRS)
	}
	for layer, band := range r.Bands {
		if len(band) != r.Rows*r.Cols {
			return fmt.Errorf("raster %d band %s has %d values, want %d", r.ID, layer, len(band), r.Rows*r.Cols)
		}
	}
	return nil
}

// CellAt returns the row and column containing the native point (x, y).
// ok is false when the point lies outside the raster.
func (r *Raster) CellAt(x, y float64) (row, col int, ok bool) {
	fc := (x - r.OriginX) / r.CellWidth
	fr := (r.OriginY - y) / r.CellHeight
	if math.IsNaN(fc) || math.IsNaN(fr) || fc < 0 || fr < 0 {
		return 0, 0, false
	}

	col = int(math.Floor(fc))
	row = int(math.Floor(fr))
	if row >= r.Rows || col >= r.Cols {
		return 0, 0, false
	}
	return row, col, true
}

// Sample returns the raw value of layer at the native point (x, y).
// ok is false outside the raster, for a missing band, for NaN and for the NoData sentinel.
func (r *Raster) Sample(layer Layer, x, y float64) (float64, bool) {
	band, exists := r.Bands[layer]
	if !exists {
		return 0, false
	}
	row, col, ok := r.CellAt(x, y)
	if !ok {
		return 0, false
	}

	v := band[row*r.Cols+col]
	if math.IsNaN(v) || v == r.NoData {
		return 0, false
	}
	return v, true
}

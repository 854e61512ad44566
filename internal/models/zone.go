package models

import "fmt"

// ZoneKind distinguishes the conservation area from the region of interest nested in it
type ZoneKind string

const (
	ZoneKindCA  ZoneKind = "ca"
	ZoneKindROI ZoneKind = "roi"
)

// CRS identifies how zone and raster coordinates are expressed
type CRS string

const (
	CRSGeographic CRS = "geographic" // WGS84 degrees, X = longitude, Y = latitude
	CRSProjected  CRS = "projected"  // planar metres, X = easting, Y = northing
)

// Valid reports whether the CRS is one the engine can measure
func (c CRS) Valid() bool {
	return c == CRSGeographic || c == CRSProjected
}

// Coord is a vertex in native CRS units
type Coord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Zone represents a CA or ROI boundary
type Zone struct {
	ID   int64    `json:"id" db:"id"`
	Kind ZoneKind `json:"kind" db:"kind"`
	Name string   `json:"name,omitempty" db:"name"`
	CRS  CRS      `json:"crs" db:"crs"`

	// Exterior ring, not closed (first vertex is not repeated)
	Ring []Coord `json:"ring" db:"ring"`
}

// String identifies the zone in logs and error messages
func (z Zone) String() string {
	return fmt.Sprintf("%s %d", z.Kind, z.ID)
}

// Clone returns a copy that shares no memory with z
func (z Zone) Clone() Zone {
	out := z
	out.Ring = append([]Coord(nil), z.Ring...)
	return out
}

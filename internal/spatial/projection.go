package spatial

import (
	"math"
)

// Projection maps native coordinates to a local planar frame in kilometers and back.
// Frame x grows east and frame y grows north from the projection origin.
type Projection interface {
	Forward(native Point) Point
	Inverse(frame Point) Point
}

// NewProjection returns the projection anchored at origin for the given coordinate kind
func NewProjection(geographic bool, origin Point) Projection {
	if geographic {
		return Sinusoidal{Origin: origin}
	}
	return Planar{Origin: origin}
}

// Planar translates projected meters into kilometers relative to Origin
type Planar struct {
	Origin Point
}

func (p Planar) Forward(native Point) Point {
	return Point{
		X: (native.X - p.Origin.X) / 1000,
		Y: (native.Y - p.Origin.Y) / 1000,
	}
}

func (p Planar) Inverse(frame Point) Point {
	return Point{
		X: p.Origin.X + frame.X*1000,
		Y: p.Origin.Y + frame.Y*1000,
	}
}

// Sinusoidal is an equal-area projection of (lon, lat) degrees centered on Origin.
// Distances along parallels and along the central meridian are preserved.
type Sinusoidal struct {
	Origin Point
}

func (s Sinusoidal) Forward(native Point) Point {
	lat := native.Y * math.Pi / 180
	dLon := (native.X - s.Origin.X) * math.Pi / 180
	dLat := (native.Y - s.Origin.Y) * math.Pi / 180
	return Point{
		X: EarthRadiusKm * math.Cos(lat) * dLon,
		Y: EarthRadiusKm * dLat,
	}
}

func (s Sinusoidal) Inverse(frame Point) Point {
	lat := s.Origin.Y + frame.Y/EarthRadiusKm*180/math.Pi
	cos := math.Cos(lat * math.Pi / 180)
	if cos == 0 {
		return Point{X: s.Origin.X, Y: lat}
	}
	return Point{
		X: s.Origin.X + frame.X/(EarthRadiusKm*cos)*180/math.Pi,
		Y: lat,
	}
}

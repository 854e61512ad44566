package spatial

import (
	"math"

	"github.com/golang/geo/s2"
)

// Constants
const (
	EarthRadiusKm = 6371.0 // Earth's mean radius in kilometers
)

// GreatCircleKm calculates the great-circle distance between two points in kilometers
func GreatCircleKm(lat1, lon1, lat2, lon2 float64) float64 {
	p1 := s2.LatLngFromDegrees(lat1, lon1)
	p2 := s2.LatLngFromDegrees(lat2, lon2)
	return p1.Distance(p2).Radians() * EarthRadiusKm
}

// PlanarKm calculates the Euclidean distance between two projected points given in meters,
// returned in kilometers
func PlanarKm(x1, y1, x2, y2 float64) float64 {
	return math.Hypot(x2-x1, y2-y1) / 1000
}

// ExtentKm measures the width and height of a bounding box in kilometers.
// Geographic boxes are measured along great circles through the box midlines so that
// high latitudes are not distorted; projected boxes are measured in the plane.
func ExtentKm(geographic bool, minX, minY, maxX, maxY float64) (width, height float64) {
	if !geographic {
		return PlanarKm(minX, minY, maxX, minY), PlanarKm(minX, minY, minX, maxY)
	}

	midLat := (minY + maxY) / 2
	midLon := (minX + maxX) / 2
	width = GreatCircleKm(midLat, minX, midLat, maxX)
	height = GreatCircleKm(minY, midLon, maxY, midLon)
	return width, height
}

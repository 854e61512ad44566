package pollination

import (
	"fmt"
	"math"

	"github.com/jengzang/pollinator-abundance/internal/models"
	"github.com/jengzang/pollinator-abundance/internal/spatial"
)

// containmentEpsilonKm is how far an ROI vertex may sit outside the CA boundary
// and still count as contained
const containmentEpsilonKm = 1e-9

// Alignment maps ROI-local kilometers into the CA frame. Only translation is modelled.
type Alignment struct {
	// ROI extent per unit of CA extent, both measured on the common grid
	RatioX float64
	RatioY float64

	// ROI origin (south-west bounding corner) in CA frame kilometers
	Point spatial.Point

	WidthKm  float64
	HeightKm float64

	// ROI boundary in ROI-local kilometers
	LocalRing []spatial.Point

	// Contained is false when part of the ROI lies outside the CA. The ROI summary
	// then covers only the intersection of the two zones.
	Contained bool
}

// ToFrame maps an ROI-local position into the CA frame
func (a Alignment) ToFrame(local spatial.Point) spatial.Point {
	return local.Add(a.Point)
}

// FrameRing returns the ROI boundary in CA frame kilometers
func (a Alignment) FrameRing() []spatial.Point {
	out := make([]spatial.Point, len(a.LocalRing))
	for i, p := range a.LocalRing {
		out[i] = a.ToFrame(p)
	}
	return out
}

// ResolveAlignment computes the scale ratios and offset relating an ROI to the CA frame
func ResolveAlignment(frame *Frame, roi models.Zone) (Alignment, error) {
	if frame == nil {
		return Alignment{}, fmt.Errorf("no frame to align %s to: %w", roi, ErrAlignment)
	}
	if !positiveFinite(frame.WidthKm) || !positiveFinite(frame.HeightKm) {
		return Alignment{}, fmt.Errorf("ca extent %gx%g km cannot be divided: %w",
			frame.WidthKm, frame.HeightKm, ErrAlignment)
	}
	if roi.CRS != frame.CRS {
		return Alignment{}, fmt.Errorf("%s uses crs %q, ca uses %q: %w", roi, roi.CRS, frame.CRS, ErrAlignment)
	}

	ring, err := prepareRing(roi)
	if err != nil {
		return Alignment{}, err
	}

	minX, minY, maxX, maxY := spatial.BoundingBox(ring)
	width, height := spatial.ExtentKm(roi.CRS == models.CRSGeographic, minX, minY, maxX, maxY)

	point := frame.ToFrame(spatial.Point{X: minX, Y: minY})
	frameRing := make([]spatial.Point, len(ring))
	local := make([]spatial.Point, len(ring))
	for i, p := range ring {
		frameRing[i] = frame.ToFrame(p)
		local[i] = frameRing[i].Sub(point)
	}

	a := Alignment{
		RatioX:    width / frame.WidthKm,
		RatioY:    height / frame.HeightKm,
		Point:     point,
		WidthKm:   width,
		HeightKm:  height,
		LocalRing: local,
		Contained: spatial.RingWithin(frameRing, frame.Boundary, containmentEpsilonKm),
	}
	if !positiveFinite(a.RatioX) || !positiveFinite(a.RatioY) {
		return Alignment{}, fmt.Errorf("%s ratios %g, %g are not positive: %w", roi, a.RatioX, a.RatioY, ErrAlignment)
	}
	return a, nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// Package marker calibrates pixel-to-real-world scale from a square fiducial
// of known physical size placed next to the animal.
package marker

import (
	"gonum.org/v1/gonum/stat"

	"herdscore/internal/geometry"
)

// Calibration is the result of locating the fiducial in one image. Numeric
// fields are only meaningful when Detected is true.
type Calibration struct {
	Detected     bool
	WidthPx      float64
	HeightPx     float64
	AvgSidePx    float64
	ScaleCmPerPx float64
}

// FromCorners computes a Calibration from the four marker corners in order
// and the marker's known physical side length. The average side is the mean
// of the four corner-to-corner side lengths; width and height are the
// bounding extents of the corners.
func FromCorners(corners [4]geometry.Point, sizeCm float64) Calibration {
	sides := make([]float64, 4)
	for i := 0; i < 4; i++ {
		sides[i] = corners[i].Distance(corners[(i+1)%4])
	}
	avg := stat.Mean(sides, nil)

	width, height := geometry.BoundingExtents(corners[:])

	cal := Calibration{
		Detected:  true,
		WidthPx:   width,
		HeightPx:  height,
		AvgSidePx: avg,
	}
	if avg > 0 && sizeCm > 0 {
		cal.ScaleCmPerPx = sizeCm / avg
	} else {
		cal.Detected = false
	}
	return cal
}

// SelectLargest returns the index of the candidate quad with the largest
// enclosed area. The intentionally placed marker dominates stray square-ish
// noise in the frame. Returns -1 when there are no candidates.
func SelectLargest(candidates [][4]geometry.Point) int {
	best := -1
	var bestArea float64
	for i, quad := range candidates {
		if area := geometry.QuadArea(quad); best == -1 || area > bestArea {
			best = i
			bestArea = area
		}
	}
	return best
}

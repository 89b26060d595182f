package marker_test

import (
	"math"
	"testing"

	"herdscore/internal/geometry"
	"herdscore/internal/marker"
)

func axisAlignedSquare(origin geometry.Point, side float64) [4]geometry.Point {
	return [4]geometry.Point{
		origin,
		geometry.Pt(origin.X+side, origin.Y),
		geometry.Pt(origin.X+side, origin.Y+side),
		geometry.Pt(origin.X, origin.Y+side),
	}
}

func TestFromCornersScaleInvariant(t *testing.T) {
	// A 10 cm marker measuring 45 px per side on average.
	cal := marker.FromCorners(axisAlignedSquare(geometry.Pt(100, 100), 45), 10)

	if !cal.Detected {
		t.Fatal("expected detection")
	}
	if math.Abs(cal.AvgSidePx-45) > 1e-9 {
		t.Fatalf("expected avg side 45, got %v", cal.AvgSidePx)
	}
	if math.Abs(cal.ScaleCmPerPx-10.0/45.0) > 1e-9 {
		t.Fatalf("expected scale %.6f, got %v", 10.0/45.0, cal.ScaleCmPerPx)
	}
	if cal.WidthPx != 45 || cal.HeightPx != 45 {
		t.Fatalf("expected 45x45 extents, got %vx%v", cal.WidthPx, cal.HeightPx)
	}
}

func TestFromCornersAveragesUnevenSides(t *testing.T) {
	// A slightly skewed quad: sides 40, 50, 40, 50.
	quad := [4]geometry.Point{
		geometry.Pt(0, 0), geometry.Pt(40, 0), geometry.Pt(40, 50), geometry.Pt(0, 50),
	}
	cal := marker.FromCorners(quad, 10)
	if math.Abs(cal.AvgSidePx-45) > 1e-9 {
		t.Fatalf("expected mean of four sides 45, got %v", cal.AvgSidePx)
	}
	if math.Abs(cal.ScaleCmPerPx-10.0/45.0) > 1e-9 {
		t.Fatalf("scale must be size_cm / avg_side_px, got %v", cal.ScaleCmPerPx)
	}
}

func TestFromCornersRotated(t *testing.T) {
	// 45-degree rotated square with side 10*sqrt(2): bounding extents differ
	// from side length, scale still derives from the sides.
	side := 10 * math.Sqrt2
	quad := [4]geometry.Point{
		geometry.Pt(0, -10), geometry.Pt(10, 0), geometry.Pt(0, 10), geometry.Pt(-10, 0),
	}
	cal := marker.FromCorners(quad, 5)
	if math.Abs(cal.AvgSidePx-side) > 1e-9 {
		t.Fatalf("expected avg side %v, got %v", side, cal.AvgSidePx)
	}
	if cal.WidthPx != 20 || cal.HeightPx != 20 {
		t.Fatalf("expected 20x20 bounding extents, got %vx%v", cal.WidthPx, cal.HeightPx)
	}
}

func TestFromCornersDegenerate(t *testing.T) {
	var quad [4]geometry.Point // all corners coincide
	cal := marker.FromCorners(quad, 10)
	if cal.Detected {
		t.Fatal("zero-size quad must not produce a scale")
	}
	if cal.ScaleCmPerPx != 0 {
		t.Fatalf("expected no scale, got %v", cal.ScaleCmPerPx)
	}
}

func TestSelectLargest(t *testing.T) {
	candidates := [][4]geometry.Point{
		axisAlignedSquare(geometry.Pt(0, 0), 8),
		axisAlignedSquare(geometry.Pt(200, 200), 60),
		axisAlignedSquare(geometry.Pt(500, 10), 25),
	}
	if idx := marker.SelectLargest(candidates); idx != 1 {
		t.Fatalf("expected largest candidate at index 1, got %d", idx)
	}
	if idx := marker.SelectLargest(nil); idx != -1 {
		t.Fatalf("expected -1 for no candidates, got %d", idx)
	}
}

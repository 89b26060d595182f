// Package geometry provides the 2D primitives the measurement pipeline
// works in: image-space points, distances, vertex angles, and quad areas.
package geometry

import "math"

// Epsilon below which a ray is considered degenerate.
const Epsilon = 1e-9

// Point is a 2D point in image pixel coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt creates a new Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Sub returns the vector from other to p.
func (p Point) Sub(other Point) Point {
	return Point{X: p.X - other.X, Y: p.Y - other.Y}
}

// Distance returns the Euclidean distance to another point.
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Norm returns the vector length of p treated as a vector from the origin.
func (p Point) Norm() float64 {
	return math.Sqrt(p.X*p.X + p.Y*p.Y)
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// AngleAt returns the angle at vertex between the rays vertex→a and
// vertex→b, in degrees in [0, 180]. The boolean is false when either ray is
// shorter than Epsilon, in which case the angle is undefined.
func AngleAt(vertex, a, b Point) (float64, bool) {
	ra := a.Sub(vertex)
	rb := b.Sub(vertex)
	na := ra.Norm()
	nb := rb.Norm()
	if na < Epsilon || nb < Epsilon {
		return 0, false
	}
	cos := (ra.X*rb.X + ra.Y*rb.Y) / (na * nb)
	// Guard against rounding pushing the cosine outside [-1, 1].
	cos = math.Max(-1, math.Min(1, cos))
	return math.Acos(cos) * 180 / math.Pi, true
}

// QuadArea returns the enclosed area of a quadrilateral given its corners
// in order, via the shoelace formula.
func QuadArea(corners [4]Point) float64 {
	var sum float64
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		sum += corners[i].X*corners[j].Y - corners[j].X*corners[i].Y
	}
	return math.Abs(sum) / 2
}

// BoundingExtents returns the width and height of the axis-aligned bounding
// box of the given points.
func BoundingExtents(points []Point) (width, height float64) {
	if len(points) == 0 {
		return 0, 0
	}
	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return maxX - minX, maxY - minY
}

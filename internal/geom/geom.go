package geom

import "math"

// Tolerances used by the hit tests, in world units.
const (
	NearTolerance    = 5.0
	SegmentTolerance = 1.0
	StrokeTolerance  = 5.0
)

// Point is a position on the canvas.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// IsNear reports whether (x, y) lies strictly inside the 10×10 box centred
// on (tx, ty).
func IsNear(x, y, tx, ty float64) bool {
	return math.Abs(x-tx) < NearTolerance && math.Abs(y-ty) < NearTolerance
}

// IsOnSegment reports whether (x, y) lies on the path between (x1, y1) and
// (x2, y2). The test compares |ab| with |ap|+|pb|, so it is only meaningful
// for points roughly between the two ends.
func IsOnSegment(x1, y1, x2, y2, x, y, tolerance float64) bool {
	a, b, p := Pt(x1, y1), Pt(x2, y2), Pt(x, y)
	offset := Distance(a, b) - (Distance(a, p) + Distance(b, p))
	return math.Abs(offset) < tolerance
}

// IsInsideBox reports whether (x, y) lies in the box spanned by (x1, y1) and
// (x2, y2), edges included. The box is expected to be normalized.
func IsInsideBox(x, y, x1, y1, x2, y2 float64) bool {
	return x >= x1 && x <= x2 && y >= y1 && y <= y2
}

// Box is an axis-aligned rectangle given by its min and max corners.
type Box struct {
	Min, Max Point
}

// BoxOf returns the normalized box spanned by two corners.
func BoxOf(x1, y1, x2, y2 float64) Box {
	return Box{
		Min: Pt(math.Min(x1, x2), math.Min(y1, y2)),
		Max: Pt(math.Max(x1, x2), math.Max(y1, y2)),
	}
}

// Contains reports whether p lies inside b, edges included.
func (b Box) Contains(p Point) bool {
	return IsInsideBox(p.X, p.Y, b.Min.X, b.Min.Y, b.Max.X, b.Max.Y)
}

// Corners returns top-left, top-right, bottom-left and bottom-right.
func (b Box) Corners() (tl, tr, bl, br Point) {
	return b.Min, Pt(b.Max.X, b.Min.Y), Pt(b.Min.X, b.Max.Y), b.Max
}

// Width returns the horizontal extent of b.
func (b Box) Width() float64 { return b.Max.X - b.Min.X }

// Height returns the vertical extent of b.
func (b Box) Height() float64 { return b.Max.Y - b.Min.Y }

// Union returns the smallest box containing both b and o.
func (b Box) Union(o Box) Box {
	return Box{
		Min: Pt(math.Min(b.Min.X, o.Min.X), math.Min(b.Min.Y, o.Min.Y)),
		Max: Pt(math.Max(b.Max.X, o.Max.X), math.Max(b.Max.Y, o.Max.Y)),
	}
}

package scene

import (
	"fmt"
	"slices"

	"whiteboard/internal/domain"
	"whiteboard/internal/geom"
)

// LineHeight is the fixed height of a text element.
const LineHeight = 24.0

// Measurer returns the rendered width of a string.
type Measurer interface {
	Measure(text string) float64
}

// MeasureFunc adapts a plain function to Measurer.
type MeasureFunc func(text string) float64

func (f MeasureFunc) Measure(text string) float64 { return f(text) }

// Change is the new geometry or content for one element.
type Change struct {
	X1, Y1, X2, Y2 float64
	Variant        domain.Variant
	Text           string
}

// Coords are the four stored coordinates of a boxed element.
type Coords struct {
	X1, Y1, X2, Y2 float64
}

// CoordsOf returns the stored coordinates of el.
func CoordsOf(el domain.Element) Coords {
	return Coords{X1: el.X1, Y1: el.Y1, X2: el.X2, Y2: el.Y2}
}

// Mutator applies element changes to scenes. Scenes are never modified in
// place; each call returns a new scene with one element replaced.
type Mutator struct {
	measure Measurer
}

// NewMutator creates a Mutator that sizes text with m.
func NewMutator(m Measurer) *Mutator {
	return &Mutator{measure: m}
}

// Update replaces element id of s according to c.
func (m *Mutator) Update(s domain.Scene, id int, c Change) (domain.Scene, error) {
	if !s.Has(id) {
		return nil, fmt.Errorf("update element %d: out of range (scene has %d)", id, len(s))
	}
	var (
		el  domain.Element
		err error
	)
	switch c.Variant {
	case domain.VariantSegment, domain.VariantRectangle:
		el, err = NewElement(id, c.X1, c.Y1, c.X2, c.Y2, c.Variant)
	case domain.VariantFreehand:
		el = s[id].Clone()
		el.Points = append(el.Points, geom.Pt(c.X2, c.Y2))
	case domain.VariantText:
		width := m.measure.Measure(c.Text)
		el, err = NewElement(id, c.X1, c.Y1, c.X1+width, c.Y1+LineHeight, c.Variant)
		el.Text = c.Text
	case domain.VariantNotGate, domain.VariantAndGate, domain.VariantOrGate:
		el, err = NewElement(id, c.X1, c.Y1, 0, 0, c.Variant)
	default:
		err = fmt.Errorf("update element %d: %w: %q", id, domain.ErrUnrecognizedVariant, c.Variant)
	}
	if err != nil {
		return nil, err
	}
	return s.With(el), nil
}

// MovePoints replaces the point sequence of a freehand stroke.
func (m *Mutator) MovePoints(s domain.Scene, id int, points []geom.Point) (domain.Scene, error) {
	if !s.Has(id) {
		return nil, fmt.Errorf("move points %d: out of range (scene has %d)", id, len(s))
	}
	el := s[id].Clone()
	el.Points = slices.Clone(points)
	return s.With(el), nil
}

// NeedsNormalization reports whether a committed element of this variant must
// have its coordinates reordered.
func NeedsNormalization(v domain.Variant) bool {
	return v == domain.VariantSegment || v == domain.VariantRectangle
}

// Normalize reorders the coordinates of a segment or rectangle. Rectangles get
// x1≤x2, y1≤y2; segments start at the endpoint with the smaller x (then y).
func Normalize(el domain.Element) Coords {
	c := CoordsOf(el)
	if el.Variant == domain.VariantRectangle {
		return Coords{
			X1: min(c.X1, c.X2),
			Y1: min(c.Y1, c.Y2),
			X2: max(c.X1, c.X2),
			Y2: max(c.Y1, c.Y2),
		}
	}
	if c.X1 < c.X2 || (c.X1 == c.X2 && c.Y1 < c.Y2) {
		return c
	}
	return Coords{X1: c.X2, Y1: c.Y2, X2: c.X1, Y2: c.Y1}
}

// Resize moves the handle named by region to (x, y) and keeps the opposite
// corner or endpoint fixed. Gates have a fixed footprint and report false.
func Resize(variant domain.Variant, region domain.Region, x, y float64, c Coords) (Coords, bool) {
	if variant.IsGate() {
		return c, false
	}
	switch region {
	case domain.RegionTopLeft, domain.RegionStart:
		return Coords{X1: x, Y1: y, X2: c.X2, Y2: c.Y2}, true
	case domain.RegionTopRight:
		return Coords{X1: c.X1, Y1: y, X2: x, Y2: c.Y2}, true
	case domain.RegionBottomLeft:
		return Coords{X1: x, Y1: c.Y1, X2: c.X2, Y2: y}, true
	case domain.RegionBottomRight, domain.RegionEnd:
		return Coords{X1: c.X1, Y1: c.Y1, X2: x, Y2: y}, true
	}
	return c, false
}

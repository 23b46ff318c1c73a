package scene

import (
	"fmt"

	"whiteboard/internal/domain"
	"whiteboard/internal/geom"
)

// NewElement builds an element of the given variant from its anchor points.
// Freehand strokes, text and gates ignore x2/y2 beyond what they store.
func NewElement(id int, x1, y1, x2, y2 float64, variant domain.Variant) (domain.Element, error) {
	el := domain.Element{ID: id, Variant: variant}
	switch variant {
	case domain.VariantSegment:
		el.X1, el.Y1, el.X2, el.Y2 = x1, y1, x2, y2
		el.Outline = []geom.Point{geom.Pt(x1, y1), geom.Pt(x2, y2)}
	case domain.VariantRectangle:
		el.X1, el.Y1, el.X2, el.Y2 = x1, y1, x2, y2
		el.Outline = []geom.Point{
			geom.Pt(x1, y1),
			geom.Pt(x2, y1),
			geom.Pt(x2, y2),
			geom.Pt(x1, y2),
			geom.Pt(x1, y1),
		}
	case domain.VariantFreehand:
		el.Points = []geom.Point{geom.Pt(x1, y1)}
	case domain.VariantText:
		el.X1, el.Y1, el.X2, el.Y2 = x1, y1, x2, y2
	case domain.VariantNotGate, domain.VariantAndGate, domain.VariantOrGate:
		el.X1, el.Y1 = x1, y1
	default:
		return domain.Element{}, fmt.Errorf("create element: %w: %q", domain.ErrUnrecognizedVariant, variant)
	}
	return el, nil
}

// Footprint returns the fixed glyph box of a gate anchored at (x1, y1).
func Footprint(variant domain.Variant, x1, y1 float64) (geom.Box, bool) {
	switch variant {
	case domain.VariantNotGate:
		return geom.BoxOf(x1, y1-50, x1+190, y1+50), true
	case domain.VariantAndGate:
		return geom.BoxOf(x1, y1-20, x1+190, y1+80), true
	case domain.VariantOrGate:
		return geom.BoxOf(x1, y1-40, x1+240, y1+100), true
	}
	return geom.Box{}, false
}

// Bounds returns the axis-aligned extent of an element, used by renderers to
// size their output.
func Bounds(el domain.Element) geom.Box {
	switch el.Variant {
	case domain.VariantFreehand:
		if len(el.Points) == 0 {
			return geom.Box{}
		}
		b := geom.Box{Min: el.Points[0], Max: el.Points[0]}
		for _, p := range el.Points[1:] {
			b = b.Union(geom.Box{Min: p, Max: p})
		}
		return b
	case domain.VariantNotGate, domain.VariantAndGate, domain.VariantOrGate:
		b, _ := Footprint(el.Variant, el.X1, el.Y1)
		return b
	default:
		return geom.BoxOf(el.X1, el.Y1, el.X2, el.Y2)
	}
}

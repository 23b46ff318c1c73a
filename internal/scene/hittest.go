package scene

import (
	"fmt"

	"whiteboard/internal/domain"
	"whiteboard/internal/geom"
)

// Hit is the result of a successful hit test.
type Hit struct {
	Element domain.Element
	Region  domain.Region
}

// PositionWithin returns the region of el under (x, y), or RegionNone.
// Handles are checked before the body so a corner grab wins over a move.
func PositionWithin(x, y float64, el domain.Element) (domain.Region, error) {
	switch el.Variant {
	case domain.VariantSegment:
		if geom.IsNear(x, y, el.X1, el.Y1) {
			return domain.RegionStart, nil
		}
		if geom.IsNear(x, y, el.X2, el.Y2) {
			return domain.RegionEnd, nil
		}
		if geom.IsOnSegment(el.X1, el.Y1, el.X2, el.Y2, x, y, geom.SegmentTolerance) {
			return domain.RegionInside, nil
		}
		return domain.RegionNone, nil
	case domain.VariantRectangle:
		return boxRegion(x, y, geom.Box{Min: geom.Pt(el.X1, el.Y1), Max: geom.Pt(el.X2, el.Y2)}), nil
	case domain.VariantFreehand:
		for i := 0; i+1 < len(el.Points); i++ {
			a, b := el.Points[i], el.Points[i+1]
			if geom.IsOnSegment(a.X, a.Y, b.X, b.Y, x, y, geom.StrokeTolerance) {
				return domain.RegionInside, nil
			}
		}
		return domain.RegionNone, nil
	case domain.VariantText:
		if geom.IsInsideBox(x, y, el.X1, el.Y1, el.X2, el.Y2) {
			return domain.RegionInside, nil
		}
		return domain.RegionNone, nil
	case domain.VariantNotGate, domain.VariantAndGate, domain.VariantOrGate:
		box, _ := Footprint(el.Variant, el.X1, el.Y1)
		return boxRegion(x, y, box), nil
	default:
		return domain.RegionNone, fmt.Errorf("hit test: %w: %q", domain.ErrUnrecognizedVariant, el.Variant)
	}
}

// boxRegion checks the four corners, then the inclusive body. The box is
// used as stored: a rectangle mid-draw may not be normalized yet, in which
// case only its corners are grabbable.
func boxRegion(x, y float64, b geom.Box) domain.Region {
	switch {
	case geom.IsNear(x, y, b.Min.X, b.Min.Y):
		return domain.RegionTopLeft
	case geom.IsNear(x, y, b.Max.X, b.Min.Y):
		return domain.RegionTopRight
	case geom.IsNear(x, y, b.Min.X, b.Max.Y):
		return domain.RegionBottomLeft
	case geom.IsNear(x, y, b.Max.X, b.Max.Y):
		return domain.RegionBottomRight
	case geom.IsInsideBox(x, y, b.Min.X, b.Min.Y, b.Max.X, b.Max.Y):
		return domain.RegionInside
	}
	return domain.RegionNone
}

// ElementAt returns the first element in scene order under (x, y).
// Later elements do not shadow earlier ones even when drawn on top.
func ElementAt(x, y float64, s domain.Scene) (Hit, bool, error) {
	for _, el := range s {
		region, err := PositionWithin(x, y, el)
		if err != nil {
			return Hit{}, false, err
		}
		if region != domain.RegionNone {
			return Hit{Element: el, Region: region}, true, nil
		}
	}
	return Hit{}, false, nil
}

// CursorFor maps a region to the pointer icon a front-end should display.
func CursorFor(region domain.Region) domain.Cursor {
	switch region {
	case domain.RegionTopLeft, domain.RegionBottomRight, domain.RegionStart, domain.RegionEnd:
		return domain.CursorNWSEResize
	case domain.RegionTopRight, domain.RegionBottomLeft:
		return domain.CursorNESWResize
	case domain.RegionInside:
		return domain.CursorMove
	default:
		return domain.CursorDefault
	}
}

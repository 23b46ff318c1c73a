package domain

import (
	"errors"
	"slices"

	"whiteboard/internal/geom"
)

// ErrUnrecognizedVariant is returned when an element variant or tool tag is
// outside the closed set below. It signals a programming error.
var ErrUnrecognizedVariant = errors.New("unrecognized variant")

type Variant string

const (
	VariantSegment   Variant = "segment"
	VariantRectangle Variant = "rectangle"
	VariantFreehand  Variant = "freehand"
	VariantText      Variant = "text"
	VariantNotGate   Variant = "not_gate"
	VariantAndGate   Variant = "and_gate"
	VariantOrGate    Variant = "or_gate"
)

// Variants lists every drawable variant in toolbar order.
var Variants = []Variant{
	VariantSegment,
	VariantRectangle,
	VariantFreehand,
	VariantText,
	VariantNotGate,
	VariantAndGate,
	VariantOrGate,
}

// Valid reports whether v is one of the known variants.
func (v Variant) Valid() bool {
	return slices.Contains(Variants, v)
}

// IsGate reports whether v is one of the fixed-footprint logic gates.
func (v Variant) IsGate() bool {
	return v == VariantNotGate || v == VariantAndGate || v == VariantOrGate
}

// Element is a single drawable on the board. Which fields are meaningful
// depends on Variant:
//
//	segment, rectangle  X1,Y1,X2,Y2 and Outline
//	freehand            Points
//	text                X1,Y1 (origin), X2,Y2 (measured corner), Text
//	gates               X1,Y1 (anchor)
type Element struct {
	ID      int          `json:"id"`
	Variant Variant      `json:"variant"`
	X1      float64      `json:"x1"`
	Y1      float64      `json:"y1"`
	X2      float64      `json:"x2"`
	Y2      float64      `json:"y2"`
	Points  []geom.Point `json:"points,omitempty"`
	Text    string       `json:"text,omitempty"`
	// Outline is the renderer geometry for segments and rectangles.
	Outline []geom.Point `json:"-"`
}

// Clone returns a copy of e that shares no slices with it.
func (e Element) Clone() Element {
	e.Points = slices.Clone(e.Points)
	e.Outline = slices.Clone(e.Outline)
	return e
}

// Scene is the ordered element sequence of a board. Scene[i].ID == i.
type Scene []Element

// With returns a copy of s where the element at el.ID is replaced by el.
// The other elements are shared; they are never mutated in place.
func (s Scene) With(el Element) Scene {
	out := slices.Clone(s)
	out[el.ID] = el
	return out
}

// Append returns a copy of s with el added at the end. el.ID must equal len(s).
func (s Scene) Append(el Element) Scene {
	out := make(Scene, len(s), len(s)+1)
	copy(out, s)
	return append(out, el)
}

// NextID returns the id a newly created element receives.
func (s Scene) NextID() int { return len(s) }

// Has reports whether id addresses an element of s.
func (s Scene) Has(id int) bool { return id >= 0 && id < len(s) }

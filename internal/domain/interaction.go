package domain

import "fmt"

// Region labels the part of an element under the cursor.
type Region string

const (
	RegionNone        Region = ""
	RegionInside      Region = "inside"
	RegionTopLeft     Region = "tl"
	RegionTopRight    Region = "tr"
	RegionBottomLeft  Region = "bl"
	RegionBottomRight Region = "br"
	RegionStart       Region = "start"
	RegionEnd         Region = "end"
)

// IsHandle reports whether r is a resize handle rather than the body.
func (r Region) IsHandle() bool {
	return r != RegionNone && r != RegionInside
}

// Cursor is the pointer icon a front-end should show for a region.
type Cursor string

const (
	CursorDefault    Cursor = "default"
	CursorMove       Cursor = "move"
	CursorNWSEResize Cursor = "nwse-resize"
	CursorNESWResize Cursor = "nesw-resize"
)

type Tool string

const (
	ToolSelection Tool = "selection"
	ToolSegment   Tool = Tool(VariantSegment)
	ToolRectangle Tool = Tool(VariantRectangle)
	ToolFreehand  Tool = Tool(VariantFreehand)
	ToolText      Tool = Tool(VariantText)
	ToolNotGate   Tool = Tool(VariantNotGate)
	ToolAndGate   Tool = Tool(VariantAndGate)
	ToolOrGate    Tool = Tool(VariantOrGate)
)

// Tools lists every tool in toolbar order.
var Tools = []Tool{
	ToolSelection,
	ToolSegment,
	ToolRectangle,
	ToolFreehand,
	ToolText,
	ToolNotGate,
	ToolAndGate,
	ToolOrGate,
}

// ParseTool converts a tag into a Tool.
func ParseTool(s string) (Tool, error) {
	t := Tool(s)
	if t == ToolSelection || Variant(t).Valid() {
		return t, nil
	}
	return "", fmt.Errorf("parse tool: %w: %q", ErrUnrecognizedVariant, s)
}

// Variant returns the element variant a drawing tool creates. The selection
// tool has none.
func (t Tool) Variant() (Variant, bool) {
	if t == ToolSelection {
		return "", false
	}
	v := Variant(t)
	return v, v.Valid()
}

// Action is the interaction state held by the controller.
type Action string

const (
	ActionNone     Action = "none"
	ActionDrawing  Action = "drawing"
	ActionMoving   Action = "moving"
	ActionResizing Action = "resizing"
	ActionWriting  Action = "writing"
)

// Selection is the element targeted by the current gesture, as it was at
// pointer-down, plus the offsets needed to move it.
type Selection struct {
	Element Element
	Region  Region
	// OffsetX/OffsetY are cursor minus (X1, Y1) at pointer-down.
	OffsetX float64
	OffsetY float64
	// PointOffsets holds cursor minus each stroke point, for freehand moves.
	PointOffsets []PointOffset
}

// PointOffset is the cursor-to-point offset of one freehand point.
type PointOffset struct {
	DX, DY float64
}

package controller

import (
	"fmt"

	"whiteboard/internal/domain"
	"whiteboard/internal/geom"
	"whiteboard/internal/history"
	"whiteboard/internal/scene"
)

// Controller turns pointer and keyboard events into scene changes. It owns the
// history and is not safe for concurrent use; callers deliver one event at a
// time.
type Controller struct {
	history *history.History[domain.Scene]
	mutator *scene.Mutator

	tool      domain.Tool
	action    domain.Action
	selection *domain.Selection
	// stepped is set once the current gesture owns a history entry; later
	// frames of the same gesture overwrite it.
	stepped bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithTool sets the initial tool.
func WithTool(t domain.Tool) Option {
	return func(c *Controller) { c.tool = t }
}

// WithHistoryLimit caps the undo stack. 0 keeps every step.
func WithHistoryLimit(n int) Option {
	return func(c *Controller) {
		c.history = history.New(domain.Scene{}, history.WithLimit(n))
	}
}

// New creates a Controller with an empty scene. m sizes text elements.
func New(m scene.Measurer, opts ...Option) *Controller {
	c := &Controller{
		history: history.New(domain.Scene{}),
		mutator: scene.NewMutator(m),
		tool:    domain.ToolSelection,
		action:  domain.ActionNone,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ── Accessors ──────────────────────────────────────────────

// Scene returns the current snapshot. It must be treated as read-only.
func (c *Controller) Scene() domain.Scene { return c.history.Current() }

// Tool returns the active tool.
func (c *Controller) Tool() domain.Tool { return c.tool }

// SetTool changes the tool used by the next pointer-down.
func (c *Controller) SetTool(t domain.Tool) { c.tool = t }

// Action returns the interaction state.
func (c *Controller) Action() domain.Action { return c.action }

// Selection returns the element targeted by the current gesture, if any.
func (c *Controller) Selection() *domain.Selection { return c.selection }

// EditingID returns the id of the element under text edit. Renderers skip it
// so the text input can be drawn in its place.
func (c *Controller) EditingID() (int, bool) {
	if c.action != domain.ActionWriting || c.selection == nil {
		return 0, false
	}
	return c.selection.Element.ID, true
}

// HistoryIndex returns the current undo position and the stack size.
func (c *Controller) HistoryIndex() (index, length int) {
	return c.history.Index(), c.history.Len()
}

// ── Pointer events ─────────────────────────────────────────

// PointerDown starts a gesture at (x, y).
func (c *Controller) PointerDown(x, y float64) error {
	if c.action == domain.ActionWriting {
		return nil
	}
	if c.tool == domain.ToolSelection {
		return c.grab(x, y)
	}

	variant, ok := c.tool.Variant()
	if !ok {
		return fmt.Errorf("pointer down: %w: tool %q", domain.ErrUnrecognizedVariant, c.tool)
	}
	cur := c.Scene()
	el, err := scene.NewElement(cur.NextID(), x, y, x, y, variant)
	if err != nil {
		return err
	}
	c.history.Set(cur.Append(el), false)
	c.stepped = true
	c.selection = &domain.Selection{Element: el}
	if variant == domain.VariantText {
		c.action = domain.ActionWriting
	} else {
		c.action = domain.ActionDrawing
	}
	return nil
}

func (c *Controller) grab(x, y float64) error {
	hit, ok, err := scene.ElementAt(x, y, c.Scene())
	if err != nil || !ok {
		return err
	}
	sel := &domain.Selection{Element: hit.Element.Clone(), Region: hit.Region}
	if hit.Element.Variant == domain.VariantFreehand {
		sel.PointOffsets = make([]domain.PointOffset, len(hit.Element.Points))
		for i, p := range hit.Element.Points {
			sel.PointOffsets[i] = domain.PointOffset{DX: x - p.X, DY: y - p.Y}
		}
	} else {
		sel.OffsetX = x - hit.Element.X1
		sel.OffsetY = y - hit.Element.Y1
	}
	c.selection = sel
	c.stepped = false
	if hit.Region == domain.RegionInside {
		c.action = domain.ActionMoving
	} else {
		c.action = domain.ActionResizing
	}
	return nil
}

// PointerMove advances the current gesture. It also returns the cursor the
// front-end should show: with the selection tool, the icon for whatever is
// under (x, y).
func (c *Controller) PointerMove(x, y float64) (domain.Cursor, error) {
	cursor := domain.CursorDefault
	if c.tool == domain.ToolSelection {
		hit, ok, err := scene.ElementAt(x, y, c.Scene())
		if err != nil {
			return cursor, err
		}
		if ok {
			cursor = scene.CursorFor(hit.Region)
		}
	}

	sel := c.selection
	switch c.action {
	case domain.ActionDrawing:
		el := c.Scene()[sel.Element.ID]
		return cursor, c.update(el.ID, scene.Change{X1: el.X1, Y1: el.Y1, X2: x, Y2: y, Variant: el.Variant})
	case domain.ActionMoving:
		if !c.stepped && atGrabPoint(sel, x, y) {
			return cursor, nil
		}
		return cursor, c.move(sel, x, y)
	case domain.ActionResizing:
		coords, ok := scene.Resize(sel.Element.Variant, sel.Region, x, y, scene.CoordsOf(sel.Element))
		if !ok || (!c.stepped && coords == scene.CoordsOf(sel.Element)) {
			return cursor, nil
		}
		return cursor, c.update(sel.Element.ID, scene.Change{
			X1: coords.X1, Y1: coords.Y1, X2: coords.X2, Y2: coords.Y2,
			Variant: sel.Element.Variant,
		})
	}
	return cursor, nil
}

func (c *Controller) move(sel *domain.Selection, x, y float64) error {
	el := sel.Element
	if el.Variant == domain.VariantFreehand {
		points := make([]geom.Point, len(sel.PointOffsets))
		for i, off := range sel.PointOffsets {
			points[i] = geom.Pt(x-off.DX, y-off.DY)
		}
		next, err := c.mutator.MovePoints(c.Scene(), el.ID, points)
		if err != nil {
			return err
		}
		c.commit(next)
		return nil
	}
	width, height := el.X2-el.X1, el.Y2-el.Y1
	nx, ny := x-sel.OffsetX, y-sel.OffsetY
	return c.update(el.ID, scene.Change{
		X1: nx, Y1: ny, X2: nx + width, Y2: ny + height,
		Variant: el.Variant,
		Text:    el.Text,
	})
}

// atGrabPoint reports whether (x, y) is where the selection was grabbed.
func atGrabPoint(sel *domain.Selection, x, y float64) bool {
	el := sel.Element
	if el.Variant == domain.VariantFreehand {
		if len(sel.PointOffsets) == 0 {
			return true
		}
		off, p := sel.PointOffsets[0], el.Points[0]
		return x-off.DX == p.X && y-off.DY == p.Y
	}
	return x-sel.OffsetX == el.X1 && y-sel.OffsetY == el.Y1
}

// PointerUp ends the gesture. Segments and rectangles are normalized. A text
// element released where it was grabbed enters text editing instead.
func (c *Controller) PointerUp(x, y float64) error {
	sel, action := c.selection, c.action
	if action == domain.ActionWriting {
		return nil
	}
	if sel == nil {
		c.endGesture()
		return nil
	}

	el := sel.Element
	if action == domain.ActionMoving && el.Variant == domain.VariantText && atGrabPoint(sel, x, y) {
		c.action = domain.ActionWriting
		return nil
	}

	defer c.endGesture()
	return c.normalize()
}

// normalize rewrites the element of a finished draw or resize so x1,y1 is its
// top-left corner. A press on a handle without any drag leaves the scene
// untouched.
func (c *Controller) normalize() error {
	sel := c.selection
	if sel == nil || !c.stepped {
		return nil
	}
	if c.action != domain.ActionDrawing && c.action != domain.ActionResizing {
		return nil
	}
	if !scene.NeedsNormalization(sel.Element.Variant) || !c.Scene().Has(sel.Element.ID) {
		return nil
	}
	cur := c.Scene()[sel.Element.ID]
	n := scene.Normalize(cur)
	if n == scene.CoordsOf(cur) {
		return nil
	}
	return c.update(cur.ID, scene.Change{X1: n.X1, Y1: n.Y1, X2: n.X2, Y2: n.Y2, Variant: cur.Variant})
}

// Blur commits the text typed into the edit field and ends editing.
func (c *Controller) Blur(text string) error {
	if c.action != domain.ActionWriting || c.selection == nil {
		return nil
	}
	defer c.endGesture()
	el := c.Scene()[c.selection.Element.ID]
	// Reopening a text element and leaving it as it was records nothing.
	if !c.stepped && el.Text == text {
		return nil
	}
	return c.update(el.ID, scene.Change{X1: el.X1, Y1: el.Y1, Variant: el.Variant, Text: text})
}

// ── History ────────────────────────────────────────────────

// Undo steps back one history entry, finishing any gesture in progress first.
func (c *Controller) Undo() bool {
	c.finishGesture()
	return c.history.Undo()
}

// Redo steps forward one history entry, finishing any gesture in progress
// first.
func (c *Controller) Redo() bool {
	c.finishGesture()
	return c.history.Redo()
}

// Clear appends an empty scene, so clearing can itself be undone.
func (c *Controller) Clear() {
	c.finishGesture()
	c.history.Set(domain.Scene{}, false)
}

// ── Internals ──────────────────────────────────────────────

// update applies a change to the current scene and records it.
func (c *Controller) update(id int, ch scene.Change) error {
	next, err := c.mutator.Update(c.Scene(), id, ch)
	if err != nil {
		return err
	}
	c.commit(next)
	return nil
}

// commit writes next as the gesture's history step: appended the first time,
// overwritten afterwards.
func (c *Controller) commit(next domain.Scene) {
	c.history.Set(next, c.stepped)
	c.stepped = true
}

// finishGesture commits an interrupted gesture the way pointer-up would,
// leaving its history step normalized.
func (c *Controller) finishGesture() {
	// The element comes from the current snapshot and the variant was checked
	// when the gesture started, so normalizing it cannot fail.
	_ = c.normalize()
	c.endGesture()
}

func (c *Controller) endGesture() {
	c.action = domain.ActionNone
	c.selection = nil
	c.stepped = false
}

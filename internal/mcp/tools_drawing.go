package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"

	"whiteboard/internal/controller"
	"whiteboard/internal/domain"
	"whiteboard/internal/geom"
	"whiteboard/internal/scene"
)

const (
	defaultShapeW = 160.0
	defaultShapeH = 100.0
	defaultTextW  = 200.0
)

func (s *Server) registerDrawingTools() {
	// ── Tool and pointer events ───────────────────────

	s.mcp.AddTool(mcp.NewTool("select_tool",
		mcp.WithDescription("Select the tool used by the next pointer_down: selection, segment, rectangle, freehand, text, not_gate, and_gate, or_gate"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
		mcp.WithString("tool", mcp.Description("Tool name"), mcp.Required()),
	), s.handleSelectTool)

	s.mcp.AddTool(mcp.NewTool("pointer_down",
		mcp.WithDescription("Press the pointer at (x, y). With a drawing tool this creates an element; with the selection tool it grabs the element under the pointer."),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
		mcp.WithNumber("x", mcp.Description("X coordinate"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("Y coordinate"), mcp.Required()),
	), s.handlePointerDown)

	s.mcp.AddTool(mcp.NewTool("pointer_move",
		mcp.WithDescription("Move the pointer to (x, y), continuing any draw, move or resize gesture. Returns the cursor to show."),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
		mcp.WithNumber("x", mcp.Description("X coordinate"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("Y coordinate"), mcp.Required()),
	), s.handlePointerMove)

	s.mcp.AddTool(mcp.NewTool("pointer_up",
		mcp.WithDescription("Release the pointer at (x, y), ending the gesture"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
		mcp.WithNumber("x", mcp.Description("X coordinate"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("Y coordinate"), mcp.Required()),
	), s.handlePointerUp)

	s.mcp.AddTool(mcp.NewTool("text_blur",
		mcp.WithDescription("Commit the text of the element being edited and leave text editing"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
		mcp.WithString("text", mcp.Description("Final text content"), mcp.Required()),
	), s.handleTextBlur)

	s.mcp.AddTool(mcp.NewTool("shortcut",
		mcp.WithDescription("Send a keyboard shortcut, e.g. key z with ctrl to undo, key y with ctrl to redo"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
		mcp.WithString("key", mcp.Description("Key name"), mcp.Required()),
		mcp.WithBoolean("ctrl", mcp.Description("Ctrl held")),
		mcp.WithBoolean("meta", mcp.Description("Meta held")),
		mcp.WithBoolean("shift", mcp.Description("Shift held")),
	), s.handleShortcut)

	// ── Whole shapes ─────────────────────────────────

	s.mcp.AddTool(mcp.NewTool("draw_shape",
		mcp.WithDescription("Draw one element as a complete gesture. Omit x1/y1 to auto-place it clear of existing elements."),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
		mcp.WithString("tool", mcp.Description("segment, rectangle, freehand, text, not_gate, and_gate or or_gate"), mcp.Required()),
		mcp.WithNumber("x1", mcp.Description("Start X (optional)")),
		mcp.WithNumber("y1", mcp.Description("Start Y (optional)")),
		mcp.WithNumber("x2", mcp.Description("End X (optional, defaults to x1 + width)")),
		mcp.WithNumber("y2", mcp.Description("End Y (optional, defaults to y1 + height)")),
		mcp.WithNumber("width", mcp.Description("Width when x2 is omitted (default 160)")),
		mcp.WithNumber("height", mcp.Description("Height when y2 is omitted (default 100)")),
		mcp.WithString("text", mcp.Description("Text content for text elements")),
	), s.handleDrawShape)

	s.mcp.AddTool(mcp.NewTool("draw_stroke",
		mcp.WithDescription("Draw a freehand stroke through a list of points"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
		mcp.WithString("pointsJSON", mcp.Description(`JSON array of points, e.g. [{"x":0,"y":0},{"x":10,"y":5}]`), mcp.Required()),
	), s.handleDrawStroke)

	s.mcp.AddTool(mcp.NewTool("connect_elements",
		mcp.WithDescription("Wire the right edge of one element to the left edge of another with horizontal and vertical segments that route around other elements"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
		mcp.WithNumber("fromId", mcp.Description("Source element ID"), mcp.Required()),
		mcp.WithNumber("toId", mcp.Description("Target element ID"), mcp.Required()),
	), s.handleConnectElements)

	// ── History ──────────────────────────────────────

	s.mcp.AddTool(mcp.NewTool("undo",
		mcp.WithDescription("Undo the last change on the board"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
	), s.handleUndo)

	s.mcp.AddTool(mcp.NewTool("redo",
		mcp.WithDescription("Redo the last undone change on the board"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
	), s.handleRedo)

	s.mcp.AddTool(mcp.NewTool("clear_board",
		mcp.WithDescription("🛑 DESTRUCTIVE: Remove every element from the board. Can be undone."),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleClearBoard)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleSelectTool(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := s.resolveBoardID(req.GetArguments())
	if err != nil {
		return toolError(err)
	}
	tool, err := domain.ParseTool(req.GetString("tool", ""))
	if err != nil {
		return toolError(err)
	}
	if err := s.boards.SetTool(ctx, id, tool); err != nil {
		return toolError(err)
	}
	if s.settings != nil {
		if err := s.settings.SaveTool(tool); err != nil {
			log.Printf("[MCP] save tool: %v", err)
		}
	}
	return textResult(fmt.Sprintf("Tool set to %s", tool)), nil
}

func (s *Server) handlePointerDown(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.pointerEvent(ctx, req, s.boards.PointerDown)
}

func (s *Server) handlePointerUp(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.pointerEvent(ctx, req, s.boards.PointerUp)
}

func (s *Server) handlePointerMove(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := s.resolveBoardID(args)
	if err != nil {
		return toolError(err)
	}
	x, y, err := requirePoint(args)
	if err != nil {
		return toolError(err)
	}
	cursor, err := s.boards.PointerMove(ctx, id, x, y)
	if err != nil {
		return toolError(err)
	}
	st, err := s.boards.State(id)
	if err != nil {
		return toolError(err)
	}
	return jsonResult(map[string]any{"cursor": cursor, "state": st})
}

// pointerEvent runs a down or up event and reports the resulting board state.
func (s *Server) pointerEvent(ctx context.Context, req mcp.CallToolRequest, fn func(context.Context, string, float64, float64) error) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := s.resolveBoardID(args)
	if err != nil {
		return toolError(err)
	}
	x, y, err := requirePoint(args)
	if err != nil {
		return toolError(err)
	}
	if err := fn(ctx, id, x, y); err != nil {
		return toolError(err)
	}
	st, err := s.boards.State(id)
	if err != nil {
		return toolError(err)
	}
	return jsonResult(st)
}

func (s *Server) handleTextBlur(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := s.resolveBoardID(req.GetArguments())
	if err != nil {
		return toolError(err)
	}
	el, err := s.boards.Blur(ctx, id, req.GetString("text", ""))
	if err != nil {
		return toolError(err)
	}
	return jsonResult(el)
}

func (s *Server) handleShortcut(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := s.resolveBoardID(req.GetArguments())
	if err != nil {
		return toolError(err)
	}
	handled, err := s.boards.Shortcut(ctx, id, controller.Shortcut{
		Key:   req.GetString("key", ""),
		Ctrl:  req.GetBool("ctrl", false),
		Meta:  req.GetBool("meta", false),
		Shift: req.GetBool("shift", false),
	})
	if err != nil {
		return toolError(err)
	}
	if !handled {
		return textResult("Shortcut ignored"), nil
	}
	st, err := s.boards.State(id)
	if err != nil {
		return toolError(err)
	}
	return jsonResult(st)
}

func (s *Server) handleDrawShape(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := s.resolveBoardID(args)
	if err != nil {
		return toolError(err)
	}
	tool, err := domain.ParseTool(req.GetString("tool", ""))
	if err != nil {
		return toolError(err)
	}
	variant, ok := tool.Variant()
	if !ok {
		return toolError(fmt.Errorf("tool %q does not draw", tool))
	}
	text := req.GetString("text", "")

	w := getFloat(args, "width", defaultShapeW)
	h := getFloat(args, "height", defaultShapeH)
	if variant == domain.VariantText {
		w, h = getFloat(args, "width", defaultTextW), scene.LineHeight
	}

	x1, hasX := args["x1"].(float64)
	y1, hasY := args["y1"].(float64)
	if !hasX || !hasY {
		x1, y1, err = s.autoPlace(id, variant, w, h)
		if err != nil {
			return toolError(err)
		}
	}
	x2 := getFloat(args, "x2", x1+w)
	y2 := getFloat(args, "y2", y1+h)

	el, err := s.boards.DrawShape(ctx, id, tool, x1, y1, x2, y2, text)
	if err != nil {
		return toolError(err)
	}
	return jsonResult(el)
}

// autoPlace returns the anchor for a new element of the given size that
// keeps clear of everything already on the board.
func (s *Server) autoPlace(id string, variant domain.Variant, w, h float64) (float64, float64, error) {
	els, err := s.boards.Elements(id)
	if err != nil {
		return 0, 0, err
	}
	occupied := make([]geom.Box, 0, len(els))
	for _, el := range els {
		occupied = append(occupied, scene.Bounds(el))
	}

	// Gates have a fixed glyph that does not start at the anchor.
	var offset geom.Point
	if fp, ok := scene.Footprint(variant, 0, 0); ok {
		w, h = fp.Width(), fp.Height()
		offset = fp.Min
	}
	x, y := s.layout.NextPosition(occupied, w, h)
	return x - offset.X, y - offset.Y, nil
}

type strokePoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (s *Server) handleDrawStroke(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := s.resolveBoardID(req.GetArguments())
	if err != nil {
		return toolError(err)
	}
	var raw []strokePoint
	if err := json.Unmarshal([]byte(req.GetString("pointsJSON", "")), &raw); err != nil {
		return toolError(fmt.Errorf("invalid pointsJSON: %w", err))
	}
	points := make([]geom.Point, len(raw))
	for i, p := range raw {
		points[i] = geom.Pt(p.X, p.Y)
	}
	el, err := s.boards.DrawStroke(ctx, id, points)
	if err != nil {
		return toolError(err)
	}
	return jsonResult(el)
}

func (s *Server) handleConnectElements(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := s.resolveBoardID(args)
	if err != nil {
		return toolError(err)
	}
	fromID, err := requireFloat(args, "fromId")
	if err != nil {
		return toolError(err)
	}
	toID, err := requireFloat(args, "toId")
	if err != nil {
		return toolError(err)
	}
	els, err := s.boards.Elements(id)
	if err != nil {
		return toolError(err)
	}
	from, to := int(fromID), int(toID)
	if !els.Has(from) || !els.Has(to) {
		return toolError(fmt.Errorf("element %d or %d not found", from, to))
	}
	if from == to {
		return toolError(fmt.Errorf("cannot connect element %d to itself", from))
	}

	var obstacles []geom.Box
	for _, el := range els {
		// Existing wires may be crossed.
		if el.ID == from || el.ID == to || el.Variant == domain.VariantSegment {
			continue
		}
		obstacles = append(obstacles, scene.Bounds(el))
	}
	path := routeWire(scene.Bounds(els[from]), scene.Bounds(els[to]), obstacles)

	wire, err := s.boards.DrawWire(ctx, id, path)
	if err != nil {
		return toolError(err)
	}
	return jsonResult(wire)
}

func (s *Server) handleUndo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.historyStep(ctx, req, s.boards.Undo, "Nothing to undo")
}

func (s *Server) handleRedo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.historyStep(ctx, req, s.boards.Redo, "Nothing to redo")
}

func (s *Server) historyStep(ctx context.Context, req mcp.CallToolRequest, fn func(context.Context, string) (bool, error), noop string) (*mcp.CallToolResult, error) {
	id, err := s.resolveBoardID(req.GetArguments())
	if err != nil {
		return toolError(err)
	}
	moved, err := fn(ctx, id)
	if err != nil {
		return toolError(err)
	}
	if !moved {
		return textResult(noop), nil
	}
	st, err := s.boards.State(id)
	if err != nil {
		return toolError(err)
	}
	return jsonResult(st)
}

func (s *Server) handleClearBoard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := s.resolveBoardID(req.GetArguments())
	if err != nil {
		return toolError(err)
	}
	if err := s.boards.Clear(ctx, id); err != nil {
		return toolError(err)
	}
	return textResult(fmt.Sprintf("Board %s cleared", id)), nil
}

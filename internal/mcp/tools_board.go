package mcpserver

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerBoardTools() {
	// ── create_board ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("create_board",
		mcp.WithDescription("Create a new empty whiteboard and make it the active board"),
		mcp.WithString("name", mcp.Description("Board name (optional)")),
	), s.handleCreateBoard)

	// ── list_boards ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_boards",
		mcp.WithDescription("List all open whiteboards"),
	), s.handleListBoards)

	// ── set_active_board ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("set_active_board",
		mcp.WithDescription("Set the active board for subsequent tool calls. Tools that accept boardId will default to this."),
		mcp.WithString("boardId",
			mcp.Description("ID of the board to make active"),
			mcp.Required(),
		),
	), s.handleSetActiveBoard)

	// ── delete_board ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("delete_board",
		mcp.WithDescription("🛑 DESTRUCTIVE: Close a board and discard its undo history."),
		mcp.WithString("boardId", mcp.Description("Board ID"), mcp.Required()),
		mcp.WithToolAnnotation(mcp.ToolAnnotation{DestructiveHint: boolPtr(true)}),
	), s.handleDeleteBoard)

	// ── board_state ────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("board_state",
		mcp.WithDescription("Show the board's tool, interaction state, element being edited and undo position"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
	), s.handleBoardState)

	// ── list_elements ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_elements",
		mcp.WithDescription("List every element on the board with its id, variant and coordinates"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
	), s.handleListElements)

	// ── hit_test ───────────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("hit_test",
		mcp.WithDescription("Report which element and region (inside, a corner, or a segment endpoint) is under a point"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
		mcp.WithNumber("x", mcp.Description("X coordinate"), mcp.Required()),
		mcp.WithNumber("y", mcp.Description("Y coordinate"), mcp.Required()),
	), s.handleHitTest)

	// ── render_board ───────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("render_board",
		mcp.WithDescription("Render the board to a PNG image"),
		mcp.WithString("boardId", mcp.Description("Board ID (optional, defaults to active board)")),
	), s.handleRenderBoard)
}

// ── Handlers ───────────────────────────────────────────────

func (s *Server) handleCreateBoard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info := s.boards.CreateBoard(req.GetString("name", ""))
	if s.settings != nil {
		// Boards open with the last tool an agent selected.
		if t := s.settings.LoadTool(""); t != "" {
			if err := s.boards.SetTool(ctx, info.ID, t); err != nil {
				return toolError(err)
			}
		}
	}
	s.setActiveBoard(info.ID)
	return jsonResult(info)
}

func (s *Server) handleListBoards(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(s.boards.ListBoards())
}

func (s *Server) handleSetActiveBoard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("boardId", "")
	if id == "" {
		return toolError(fmt.Errorf("boardId is required"))
	}
	if _, err := s.boards.State(id); err != nil {
		return toolError(err)
	}
	s.setActiveBoard(id)
	return textResult(fmt.Sprintf("Active board set to %s", id)), nil
}

func (s *Server) handleDeleteBoard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := req.GetString("boardId", "")
	if err := s.boards.DeleteBoard(id); err != nil {
		return toolError(err)
	}
	if s.activeBoard() == id {
		s.setActiveBoard("")
	}
	return textResult(fmt.Sprintf("Board %s deleted", id)), nil
}

func (s *Server) handleBoardState(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := s.resolveBoardID(req.GetArguments())
	if err != nil {
		return toolError(err)
	}
	st, err := s.boards.State(id)
	if err != nil {
		return toolError(err)
	}
	return jsonResult(st)
}

func (s *Server) handleListElements(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := s.resolveBoardID(req.GetArguments())
	if err != nil {
		return toolError(err)
	}
	els, err := s.boards.Elements(id)
	if err != nil {
		return toolError(err)
	}
	return jsonResult(els)
}

func (s *Server) handleHitTest(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := req.GetArguments()
	id, err := s.resolveBoardID(args)
	if err != nil {
		return toolError(err)
	}
	x, y, err := requirePoint(args)
	if err != nil {
		return toolError(err)
	}
	hit, err := s.boards.HitTest(id, x, y)
	if err != nil {
		return toolError(err)
	}
	if hit == nil {
		return textResult(fmt.Sprintf("No element at (%g, %g)", x, y)), nil
	}
	return jsonResult(map[string]any{
		"elementId": hit.Element.ID,
		"variant":   hit.Element.Variant,
		"region":    hit.Region,
	})
}

func (s *Server) handleRenderBoard(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := s.resolveBoardID(req.GetArguments())
	if err != nil {
		return toolError(err)
	}
	data, err := s.boards.Render(id)
	if err != nil {
		return toolError(err)
	}
	return mcp.NewToolResultImage(
		fmt.Sprintf("Board %s", id),
		base64.StdEncoding.EncodeToString(data),
		"image/png",
	), nil
}

package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("logic_circuit",
		mcp.WithPromptDescription("Sketch a logic circuit from gates and wires"),
		mcp.WithArgument("expression",
			mcp.ArgumentDescription("Boolean expression to draw, e.g. NOT (A AND B) OR C"),
			mcp.RequiredArgument(),
		),
	), s.handleLogicCircuitPrompt)

	s.mcp.AddPrompt(mcp.NewPrompt("box_diagram",
		mcp.WithPromptDescription("Draw a labelled box-and-line diagram"),
		mcp.WithArgument("subject",
			mcp.ArgumentDescription("What the diagram shows"),
			mcp.RequiredArgument(),
		),
	), s.handleBoxDiagramPrompt)
}

func (s *Server) handleLogicCircuitPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	expr := req.Params.Arguments["expression"]
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Draw a circuit for: %s", expr),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Draw a logic circuit for "%s" on the active board (call create_board first if there is none).

1. Place one gate per operator with draw_shape, using tool not_gate, and_gate or or_gate. Work left to right from the inputs.
2. Label each input with draw_shape tool text to the left of the gate it feeds.
3. Connect each gate output to the input it drives with connect_elements.
4. Call render_board to check the result and undo any misplaced element.

Gates are fixed size: a not_gate spans 190x100 from its anchor, an and_gate 190x100, an or_gate 240x140.`, expr),
				},
			},
		},
	}, nil
}

func (s *Server) handleBoxDiagramPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	subject := req.Params.Arguments["subject"]
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Diagram: %s", subject),
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.TextContent{
					Type: "text",
					Text: fmt.Sprintf(`Draw a diagram of "%s" on the active board:

1. Draw one rectangle per component with draw_shape. Omit x1/y1 to let the board auto-place it.
2. Put a text label inside each rectangle with draw_shape tool text.
3. Connect related components with segments.
4. Use list_elements to read back coordinates and render_board to review the layout.`, subject),
				},
			},
		},
	}, nil
}

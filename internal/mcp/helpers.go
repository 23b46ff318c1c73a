package mcpserver

import (
	"encoding/json"
	"fmt"

	"whiteboard/internal/service"

	"github.com/mark3labs/mcp-go/mcp"
)

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// toolError reports a failed call to the agent as a tool result rather than
// a protocol error, so it can correct its arguments and retry.
func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

// resolveBoardID returns the boardId from tool args or falls back to the
// active board.
func (s *Server) resolveBoardID(args map[string]any) (string, error) {
	if id, ok := args["boardId"].(string); ok && id != "" {
		return id, nil
	}
	if id := s.activeBoard(); id != "" {
		return id, nil
	}
	return "", fmt.Errorf("%w: pass boardId or call create_board / set_active_board first", service.ErrNoActiveBoard)
}

func getFloat(args map[string]any, key string, fallback float64) float64 {
	if v, ok := args[key].(float64); ok {
		return v
	}
	return fallback
}

func requireFloat(args map[string]any, key string) (float64, error) {
	v, ok := args[key].(float64)
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	return v, nil
}

func requirePoint(args map[string]any) (x, y float64, err error) {
	if x, err = requireFloat(args, "x"); err != nil {
		return 0, 0, err
	}
	if y, err = requireFloat(args, "y"); err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

func boolPtr(v bool) *bool { return &v }

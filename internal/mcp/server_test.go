package mcpserver

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"whiteboard/internal/domain"
	"whiteboard/internal/render"
	"whiteboard/internal/scene"
	"whiteboard/internal/service"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	r, err := render.New(render.Options{Width: 320, Height: 240})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	boards := service.NewBoardService(service.BoardOptions{
		Measurer: scene.MeasureFunc(func(text string) float64 { return float64(len(text)) * 10 }),
		Renderer: r,
	}, nil)
	return New(Deps{Boards: boards})
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	if err != nil {
		t.Fatalf("handler returned protocol error: %v", err)
	}
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty result")
	}
	tc, ok := res.Content[0].(mcp.TextContent)
	if !ok {
		t.Fatalf("expected text content, got %T", res.Content[0])
	}
	return tc.Text
}

func listElements(t *testing.T, s *Server) []domain.Element {
	t.Helper()
	res := call(t, s.handleListElements, map[string]any{})
	if res.IsError {
		t.Fatalf("list_elements failed: %s", resultText(t, res))
	}
	var els []domain.Element
	if err := json.Unmarshal([]byte(resultText(t, res)), &els); err != nil {
		t.Fatalf("decode elements: %v", err)
	}
	return els
}

func TestTools_RequireActiveBoard(t *testing.T) {
	s := newTestServer(t)
	res := call(t, s.handleDrawShape, map[string]any{"tool": "rectangle"})
	if !res.IsError {
		t.Fatal("expected an error without an active board")
	}
}

func TestTools_CreateBoardSetsActive(t *testing.T) {
	s := newTestServer(t)
	res := call(t, s.handleCreateBoard, map[string]any{"name": "circuits"})
	if res.IsError {
		t.Fatalf("create_board failed: %s", resultText(t, res))
	}
	var info service.BoardInfo
	if err := json.Unmarshal([]byte(resultText(t, res)), &info); err != nil {
		t.Fatal(err)
	}
	if s.activeBoard() != info.ID {
		t.Errorf("expected active board %s, got %s", info.ID, s.activeBoard())
	}
}

func TestTools_PointerGesture(t *testing.T) {
	s := newTestServer(t)
	call(t, s.handleCreateBoard, map[string]any{})

	if res := call(t, s.handleSelectTool, map[string]any{"tool": "rectangle"}); res.IsError {
		t.Fatalf("select_tool failed: %s", resultText(t, res))
	}
	call(t, s.handlePointerDown, map[string]any{"x": 50.0, "y": 60.0})
	call(t, s.handlePointerMove, map[string]any{"x": 10.0, "y": 20.0})
	call(t, s.handlePointerUp, map[string]any{"x": 10.0, "y": 20.0})

	els := listElements(t, s)
	if len(els) != 1 {
		t.Fatalf("expected 1 element, got %d", len(els))
	}
	el := els[0]
	if el.X1 != 10 || el.Y1 != 20 || el.X2 != 50 || el.Y2 != 60 {
		t.Errorf("expected normalized (10,20)-(50,60), got (%v,%v)-(%v,%v)", el.X1, el.Y1, el.X2, el.Y2)
	}
}

func TestTools_TextBlurWithoutEdit(t *testing.T) {
	s := newTestServer(t)
	call(t, s.handleCreateBoard, map[string]any{})

	if res := call(t, s.handleTextBlur, map[string]any{"text": "x"}); !res.IsError {
		t.Fatal("expected an error when no text is being edited")
	}

	call(t, s.handleSelectTool, map[string]any{"tool": "text"})
	call(t, s.handlePointerDown, map[string]any{"x": 0.0, "y": 0.0})
	call(t, s.handleClearBoard, map[string]any{})
	if res := call(t, s.handleTextBlur, map[string]any{"text": "x"}); !res.IsError {
		t.Fatal("expected an error once clear_board ended the edit")
	}
}

func TestTools_SelectToolRejectsUnknown(t *testing.T) {
	s := newTestServer(t)
	call(t, s.handleCreateBoard, map[string]any{})
	if res := call(t, s.handleSelectTool, map[string]any{"tool": "ellipse"}); !res.IsError {
		t.Fatal("expected unknown tool to be rejected")
	}
}

func TestTools_DrawShapeAutoPlaces(t *testing.T) {
	s := newTestServer(t)
	call(t, s.handleCreateBoard, map[string]any{})

	call(t, s.handleDrawShape, map[string]any{"tool": "rectangle"})
	call(t, s.handleDrawShape, map[string]any{"tool": "rectangle"})

	els := listElements(t, s)
	if len(els) != 2 {
		t.Fatalf("expected 2 elements, got %d", len(els))
	}
	a, b := scene.Bounds(els[0]), scene.Bounds(els[1])
	if intersects(a, b) {
		t.Errorf("auto-placed shapes overlap: %v and %v", a, b)
	}
}

func TestTools_DrawTextAndUndo(t *testing.T) {
	s := newTestServer(t)
	call(t, s.handleCreateBoard, map[string]any{})

	res := call(t, s.handleDrawShape, map[string]any{"tool": "text", "x1": 10.0, "y1": 10.0, "text": "AND"})
	if res.IsError {
		t.Fatalf("draw_shape failed: %s", resultText(t, res))
	}
	var el domain.Element
	if err := json.Unmarshal([]byte(resultText(t, res)), &el); err != nil {
		t.Fatal(err)
	}
	if el.Text != "AND" || el.X2 != 40 {
		t.Errorf("expected text AND with X2 40, got %q with X2 %v", el.Text, el.X2)
	}

	call(t, s.handleUndo, map[string]any{})
	if els := listElements(t, s); len(els) != 0 {
		t.Errorf("expected empty board after undo, got %d elements", len(els))
	}
	res = call(t, s.handleUndo, map[string]any{})
	if got := resultText(t, res); got != "Nothing to undo" {
		t.Errorf("expected no-op undo message, got %q", got)
	}
}

func TestTools_ConnectElements(t *testing.T) {
	s := newTestServer(t)
	call(t, s.handleCreateBoard, map[string]any{})
	call(t, s.handleDrawShape, map[string]any{"tool": "rectangle", "x1": 0.0, "y1": 0.0, "x2": 100.0, "y2": 100.0})
	call(t, s.handleDrawShape, map[string]any{"tool": "rectangle", "x1": 300.0, "y1": 0.0, "x2": 400.0, "y2": 100.0})

	res := call(t, s.handleConnectElements, map[string]any{"fromId": 0.0, "toId": 1.0})
	if res.IsError {
		t.Fatalf("connect_elements failed: %s", resultText(t, res))
	}
	els := listElements(t, s)
	if len(els) != 3 {
		t.Fatalf("expected 3 elements, got %d", len(els))
	}
	wire := els[2]
	if wire.Variant != domain.VariantSegment || wire.X1 != 100 || wire.Y1 != 50 || wire.X2 != 300 || wire.Y2 != 50 {
		t.Errorf("expected segment (100,50)-(300,50), got %+v", wire)
	}

	if res := call(t, s.handleConnectElements, map[string]any{"fromId": 0.0, "toId": 9.0}); !res.IsError {
		t.Error("expected unknown element to be rejected")
	}
}

func TestTools_HitTest(t *testing.T) {
	s := newTestServer(t)
	call(t, s.handleCreateBoard, map[string]any{})
	call(t, s.handleDrawShape, map[string]any{"tool": "rectangle", "x1": 0.0, "y1": 0.0, "x2": 100.0, "y2": 100.0})

	res := call(t, s.handleHitTest, map[string]any{"x": 50.0, "y": 50.0})
	var hit map[string]any
	if err := json.Unmarshal([]byte(resultText(t, res)), &hit); err != nil {
		t.Fatal(err)
	}
	if hit["region"] != string(domain.RegionInside) {
		t.Errorf("expected inside, got %v", hit["region"])
	}

	res = call(t, s.handleHitTest, map[string]any{"x": 500.0, "y": 500.0})
	if got := resultText(t, res); got != "No element at (500, 500)" {
		t.Errorf("unexpected miss message %q", got)
	}
}

func TestTools_RenderBoard(t *testing.T) {
	s := newTestServer(t)
	call(t, s.handleCreateBoard, map[string]any{})
	res := call(t, s.handleRenderBoard, map[string]any{})
	if res.IsError {
		t.Fatal("render_board failed")
	}
	var found bool
	for _, c := range res.Content {
		if img, ok := c.(mcp.ImageContent); ok && img.MIMEType == "image/png" && img.Data != "" {
			found = true
		}
	}
	if !found {
		t.Error("expected PNG image content")
	}
}

func TestBoardIDFromURI(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{elementsURI("abc-123"), "abc-123"},
		{"whiteboard://board/abc/other", ""},
		{"notes://page/abc/blocks", ""},
		{"whiteboard://board/a/b/elements", ""},
	}
	for _, tt := range tests {
		if got := boardIDFromURI(tt.uri); got != tt.want {
			t.Errorf("boardIDFromURI(%q) = %q, want %q", tt.uri, got, tt.want)
		}
	}
}

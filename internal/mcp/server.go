package mcpserver

import (
	"context"
	"log"
	"sync"

	"whiteboard/internal/service"

	"github.com/mark3labs/mcp-go/server"
)

// Server is the MCP server for the whiteboard.
// It exposes tools, resources, and prompts so AI agents can draw on boards
// through the same pointer gestures a user would make.
type Server struct {
	mcp    *server.MCPServer
	layout *LayoutEngine

	boards   *service.BoardService
	settings *service.SettingsService

	// Active board context (set by create_board and set_active_board)
	mu            sync.RWMutex
	activeBoardID string
}

// Deps holds all dependencies passed from the app layer to the MCP server.
type Deps struct {
	Boards   *service.BoardService
	Settings *service.SettingsService
	// Events, when set, is subscribed to so board changes reach clients as
	// resource update notifications.
	Events *service.Broadcaster
	// CanvasWidth bounds auto-placed shapes.
	CanvasWidth float64
}

// New creates and configures a new MCP server with all tools and resources.
func New(deps Deps) *Server {
	s := &Server{
		layout:   NewLayoutEngine(deps.CanvasWidth),
		boards:   deps.Boards,
		settings: deps.Settings,
	}

	s.mcp = server.NewMCPServer(
		"whiteboard-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
	)

	s.registerBoardTools()
	s.registerDrawingTools()
	s.registerResources()
	s.registerPrompts()

	if deps.Events != nil {
		deps.Events.Subscribe(s.notifyBoardChanged)
	}

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	log.Println("[MCP] Starting stdio server...")
	return server.ServeStdio(s.mcp)
}

// notifyBoardChanged forwards board events to connected clients.
func (s *Server) notifyBoardChanged(_ context.Context, event string, data any) {
	if event != service.EventBoardChanged {
		return
	}
	params := map[string]any{"uri": boardsURI}
	if m, ok := data.(map[string]string); ok {
		params["uri"] = elementsURI(m["boardId"])
	}
	s.mcp.SendNotificationToAllClients("notifications/resources/updated", params)
}

func (s *Server) setActiveBoard(id string) {
	s.mu.Lock()
	s.activeBoardID = id
	s.mu.Unlock()
}

func (s *Server) activeBoard() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeBoardID
}

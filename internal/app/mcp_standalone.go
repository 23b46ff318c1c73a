package app

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	mcpserver "whiteboard/internal/mcp"
)

// ServeMCP runs the app as a standalone MCP server on stdin/stdout with no
// terminal UI. Logs go to stderr; stdout carries the protocol.
func ServeMCP(configPath string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.SetOutput(os.Stderr)
	a := New(configPath)
	if err := a.Startup(false); err != nil {
		return err
	}
	defer a.Shutdown()
	a.watchConfig(ctx)

	mcpSrv := mcpserver.New(mcpserver.Deps{
		Boards:      a.boards,
		Settings:    a.settings,
		Events:      a.events,
		CanvasWidth: float64(a.cfg.Render.Width),
	})

	log.Println("[MCP] Starting standalone stdio server...")
	return mcpSrv.ServeStdio()
}

package app

import (
	"context"
	"os/signal"
	"syscall"

	"whiteboard/internal/tui"
)

// RunTUI opens a fresh board in the terminal UI and blocks until the user
// quits. Logs go to the data dir since the UI owns the terminal.
func RunTUI(configPath string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer cancel()

	a := New(configPath)
	if err := a.Startup(true); err != nil {
		return err
	}
	defer a.Shutdown()
	a.watchConfig(ctx)

	board := a.boards.CreateBoard("")
	return tui.Run(tui.Options{
		Boards:     a.boards,
		BoardID:    board.ID,
		Events:     a.events,
		Settings:   a.settings,
		CellWidth:  a.cfg.Terminal.CellWidth,
		CellHeight: a.cfg.Terminal.CellHeight,
	})
}

package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"whiteboard/internal/config"
	"whiteboard/internal/render"
	"whiteboard/internal/service"
	"whiteboard/internal/storage"
	"whiteboard/internal/textmeasure"
)

// App holds the configuration, storage and services shared by the terminal
// UI and the MCP server.
type App struct {
	configPath string

	cfg     *config.Config
	cfgFile string
	dataDir string
	logFile *os.File

	db       *storage.DB
	events   *service.Broadcaster
	boards   *service.BoardService
	settings *service.SettingsService
}

// New creates a new App. configPath overrides the config file search.
func New(configPath string) *App {
	return &App{configPath: configPath}
}

// Startup loads the configuration and opens storage and services. With
// logToFile, the standard logger writes to whiteboard.log in the data dir.
func (a *App) Startup(logToFile bool) error {
	loader := config.NewLoader(a.configPath)
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg
	a.cfgFile = loader.Path()

	dataDir, err := cfg.ResolveDataDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	a.dataDir = dataDir

	if logToFile {
		f, err := os.OpenFile(filepath.Join(dataDir, "whiteboard.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		a.logFile = f
		log.SetOutput(f)
	}

	db, err := storage.New(filepath.Join(dataDir, "whiteboard.db"))
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	a.db = db
	a.settings = service.NewSettingsService(db)

	face, err := textmeasure.New(cfg.Text.FontSize)
	if err != nil {
		return err
	}
	renderer, err := render.New(render.Options{
		Width:       cfg.Render.Width,
		Height:      cfg.Render.Height,
		StrokeWidth: cfg.Render.StrokeWidth,
		FontSize:    cfg.Text.FontSize,
	})
	if err != nil {
		return err
	}

	a.events = &service.Broadcaster{}
	a.boards = service.NewBoardService(service.BoardOptions{
		Measurer:     face,
		Renderer:     renderer,
		DefaultTool:  a.settings.LoadTool(cfg.DefaultTool),
		HistoryLimit: cfg.HistoryLimit,
	}, a.events)

	log.Printf("app: started (config %q, data %s)", a.cfgFile, dataDir)
	return nil
}

// Shutdown closes storage and the log file.
func (a *App) Shutdown() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			log.Printf("app: close database: %v", err)
		}
	}
	if a.logFile != nil {
		log.SetOutput(io.Discard)
		a.logFile.Close()
	}
}

// watchConfig applies edits to the config file while the app runs. New
// boards pick up the new default tool and history limit.
func (a *App) watchConfig(ctx context.Context) {
	if a.cfgFile == "" {
		return
	}
	err := config.Watch(ctx, a.cfgFile, func(cfg *config.Config) {
		if err := a.boards.SetBoardDefaults(cfg.DefaultTool, cfg.HistoryLimit); err != nil {
			log.Printf("app: apply config: %v", err)
		}
	})
	if err != nil {
		log.Printf("app: config watcher disabled: %v", err)
	}
}

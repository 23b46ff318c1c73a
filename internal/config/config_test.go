package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"whiteboard/internal/domain"
)

func TestParse(t *testing.T) {
	input := `
# whiteboard settings
data_dir = /tmp/boards
default_tool = rectangle
history_limit = 50

[text]
font_size = 18

[terminal]
cell_width: 8
cell_height: 16

[render]
width = 640
height = "480"
stroke_width = 3
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.DataDir != "/tmp/boards" {
		t.Errorf("Expected data_dir '/tmp/boards', got '%s'", cfg.DataDir)
	}
	if cfg.DefaultTool != domain.ToolRectangle {
		t.Errorf("Expected default_tool rectangle, got %q", cfg.DefaultTool)
	}
	if cfg.HistoryLimit != 50 {
		t.Errorf("Expected history_limit 50, got %d", cfg.HistoryLimit)
	}
	if cfg.Text.FontSize != 18 {
		t.Errorf("Expected font_size 18, got %v", cfg.Text.FontSize)
	}
	if cfg.Terminal.CellWidth != 8 || cfg.Terminal.CellHeight != 16 {
		t.Errorf("Unexpected terminal section: %+v", cfg.Terminal)
	}
	if cfg.Render != (Render{Width: 640, Height: 480, StrokeWidth: 3}) {
		t.Errorf("Unexpected render section: %+v", cfg.Render)
	}
}

func TestParseDefaults(t *testing.T) {
	cfg, err := Parse(strings.NewReader("unknown = value\n[other]\nx = 1\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	def := New()
	if cfg.String() != def.String() {
		t.Errorf("Expected defaults, got:\n%s", cfg.String())
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"bad tool", "default_tool = hexagon", "root section"},
		{"negative limit", "history_limit = -1", "history_limit"},
		{"bad int", "[render]\nwidth = wide", "[render]"},
		{"zero cell", "[terminal]\ncell_width = 0", "cell_width"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("Expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestCircular(t *testing.T) {
	input := `data_dir = /home/user/boards
default_tool = freehand
history_limit = 10

[text]
font_size = 20

[terminal]
cell_width = 12
cell_height = 24

[render]
width = 800
height = 600
stroke_width = 1.5
`
	cfg, err := Parse(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Initial parse failed: %v", err)
	}

	cfg2, err := Parse(strings.NewReader(cfg.String()))
	if err != nil {
		t.Fatalf("Circular parse failed: %v", err)
	}

	if *cfg != *cfg2 {
		t.Errorf("Config mismatch:\n%+v\n%+v", cfg, cfg2)
	}
}

func TestLoaderOverridePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.rc")
	if err := os.WriteFile(path, []byte("history_limit = 7\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	l := NewLoader(path)
	if got := l.Path(); got != path {
		t.Fatalf("Expected override path %q, got %q", path, got)
	}
	cfg, err := l.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.HistoryLimit != 7 {
		t.Errorf("Expected history_limit 7, got %d", cfg.HistoryLimit)
	}
}

func TestResolveDataDir(t *testing.T) {
	cfg := New()
	cfg.DataDir = "/srv/whiteboard"
	got, err := cfg.ResolveDataDir()
	if err != nil || got != "/srv/whiteboard" {
		t.Errorf("Expected explicit data dir, got %q (%v)", got, err)
	}
}

func TestWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.rc")
	if err := os.WriteFile(path, []byte("history_limit = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloaded := make(chan *Config, 4)
	if err := Watch(ctx, path, func(c *Config) { reloaded <- c }); err != nil {
		t.Fatalf("Watch failed: %v", err)
	}

	if err := os.WriteFile(path, []byte("history_limit = 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("history_limit = 3\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case c := <-reloaded:
		if c.HistoryLimit != 3 {
			t.Errorf("Expected the last write to win, got history_limit %d", c.HistoryLimit)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for reload")
	}
}

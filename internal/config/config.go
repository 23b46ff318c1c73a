package config

import (
	"fmt"
	"strings"

	"whiteboard/internal/domain"
)

// Text holds text layout settings.
type Text struct {
	FontSize float64
}

// Terminal maps terminal cells to canvas units.
type Terminal struct {
	CellWidth  float64
	CellHeight float64
}

// Render holds PNG export settings.
type Render struct {
	Width       int
	Height      int
	StrokeWidth float64
}

// Config holds the application configuration.
type Config struct {
	DataDir      string
	DefaultTool  domain.Tool
	HistoryLimit int
	Text         Text
	Terminal     Terminal
	Render       Render
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		DefaultTool: domain.ToolSelection,
		Text:        Text{FontSize: 24},
		Terminal:    Terminal{CellWidth: 10, CellHeight: 20},
		Render:      Render{Width: 1280, Height: 800, StrokeWidth: 2},
	}
}

// String returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.DataDir != "" {
		fmt.Fprintf(&sb, "data_dir = %s\n", c.DataDir)
	}
	fmt.Fprintf(&sb, "default_tool = %s\n", c.DefaultTool)
	fmt.Fprintf(&sb, "history_limit = %d\n", c.HistoryLimit)
	sb.WriteString("\n")

	sb.WriteString("[text]\n")
	fmt.Fprintf(&sb, "font_size = %g\n", c.Text.FontSize)
	sb.WriteString("\n")

	sb.WriteString("[terminal]\n")
	fmt.Fprintf(&sb, "cell_width = %g\n", c.Terminal.CellWidth)
	fmt.Fprintf(&sb, "cell_height = %g\n", c.Terminal.CellHeight)
	sb.WriteString("\n")

	sb.WriteString("[render]\n")
	fmt.Fprintf(&sb, "width = %d\n", c.Render.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Render.Height)
	fmt.Fprintf(&sb, "stroke_width = %g\n", c.Render.StrokeWidth)

	return sb.String()
}

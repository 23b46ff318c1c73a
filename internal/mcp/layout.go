package mcpserver

import (
	"math"

	"whiteboard/internal/geom"
)

const (
	GridSize = 20.0
	Padding  = 40.0 // 2 grid cells between shapes
	MaxRowW  = 1280.0
)

// LayoutEngine places shapes drawn by agents that did not pass coordinates,
// so that they don't overlap existing elements.
type LayoutEngine struct {
	gridSize float64
	padding  float64
	maxRowW  float64
}

// NewLayoutEngine creates a LayoutEngine that fills rows up to rowWidth.
// rowWidth <= 0 uses MaxRowW.
func NewLayoutEngine(rowWidth float64) *LayoutEngine {
	if rowWidth <= 0 {
		rowWidth = MaxRowW
	}
	return &LayoutEngine{
		gridSize: GridSize,
		padding:  Padding,
		maxRowW:  rowWidth,
	}
}

// snap rounds v to the nearest grid point.
func (le *LayoutEngine) snap(v float64) float64 {
	return math.Round(v/le.gridSize) * le.gridSize
}

// NextPosition finds the first grid position, scanning rows top to bottom,
// where a (w, h) box clears every occupied box by the padding.
func (le *LayoutEngine) NextPosition(occupied []geom.Box, w, h float64) (float64, float64) {
	if len(occupied) == 0 {
		return 0, 0
	}

	padded := make([]geom.Box, len(occupied))
	for i, b := range occupied {
		padded[i] = geom.Box{
			Min: b.Min.Sub(geom.Pt(le.padding, le.padding)),
			Max: b.Max.Add(geom.Pt(le.padding, le.padding)),
		}
	}

	for y := 0.0; y < 100000; y += le.gridSize {
		for x := 0.0; x+w <= le.maxRowW || x == 0; x += le.gridSize {
			candidate := geom.Box{Min: geom.Pt(x, y), Max: geom.Pt(x+w, y+h)}
			overlaps := false
			for _, p := range padded {
				if intersects(candidate, p) {
					overlaps = true
					break
				}
			}
			if !overlaps {
				return x, y
			}
		}
	}

	// Fallback: place below everything.
	maxY := 0.0
	for _, b := range occupied {
		maxY = math.Max(maxY, b.Max.Y)
	}
	return 0, le.snap(maxY + le.padding)
}

// intersects reports whether two boxes overlap with positive area.
func intersects(a, b geom.Box) bool {
	return a.Min.X < b.Max.X && a.Max.X > b.Min.X &&
		a.Min.Y < b.Max.Y && a.Max.Y > b.Min.Y
}

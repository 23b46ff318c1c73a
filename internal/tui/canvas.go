package tui

import (
	"fmt"
	"math"
	"strings"

	"whiteboard/internal/domain"
	"whiteboard/internal/geom"
	"whiteboard/internal/scene"
)

// Grid maps world coordinates onto terminal cells.
type Grid struct {
	Cols, Rows int
	CellW      float64
	CellH      float64
}

// Cell returns the cell containing world point (x, y).
func (g Grid) Cell(x, y float64) (col, row int) {
	return int(math.Floor(x / g.CellW)), int(math.Floor(y / g.CellH))
}

// World returns the world point at the top-left corner of a cell.
func (g Grid) World(col, row int) (x, y float64) {
	return float64(col) * g.CellW, float64(row) * g.CellH
}

// canvas is a grid of runes drawn into cell by cell.
type canvas struct {
	g     Grid
	cells [][]rune
}

func newCanvas(g Grid) *canvas {
	cells := make([][]rune, g.Rows)
	for r := range cells {
		cells[r] = []rune(strings.Repeat(" ", g.Cols))
	}
	return &canvas{g: g, cells: cells}
}

func (c *canvas) set(col, row int, ch rune) {
	if row < 0 || row >= c.g.Rows || col < 0 || col >= c.g.Cols {
		return
	}
	c.cells[row][col] = ch
}

func (c *canvas) text(col, row int, s string) {
	for i, ch := range []rune(s) {
		c.set(col+i, row, ch)
	}
}

// line draws between two cells with Bresenham's algorithm.
func (c *canvas) line(c0, r0, c1, r1 int, ch rune) {
	dc, dr := abs(c1-c0), -abs(r1-r0)
	sc, sr := sign(c1-c0), sign(r1-r0)
	e := dc + dr
	for {
		c.set(c0, r0, ch)
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c0 += sc
		}
		if e2 <= dc {
			e += dc
			r0 += sr
		}
	}
}

func (c *canvas) box(b geom.Box) {
	c0, r0 := c.g.Cell(b.Min.X, b.Min.Y)
	c1, r1 := c.g.Cell(b.Max.X, b.Max.Y)
	for col := c0 + 1; col < c1; col++ {
		c.set(col, r0, '─')
		c.set(col, r1, '─')
	}
	for row := r0 + 1; row < r1; row++ {
		c.set(c0, row, '│')
		c.set(c1, row, '│')
	}
	c.set(c0, r0, '┌')
	c.set(c1, r0, '┐')
	c.set(c0, r1, '└')
	c.set(c1, r1, '┘')
}

func (c *canvas) String() string {
	lines := make([]string, len(c.cells))
	for i, row := range c.cells {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}

// Rasterize draws s onto a grid of cells. The element with id skip is left
// out; pass -1 to draw everything.
func Rasterize(s domain.Scene, skip int, g Grid) (string, error) {
	c, err := rasterize(s, skip, g)
	if err != nil {
		return "", err
	}
	return c.String(), nil
}

func rasterize(s domain.Scene, skip int, g Grid) (*canvas, error) {
	c := newCanvas(g)
	for _, el := range s {
		if el.ID == skip {
			continue
		}
		switch el.Variant {
		case domain.VariantSegment:
			c0, r0 := g.Cell(el.X1, el.Y1)
			c1, r1 := g.Cell(el.X2, el.Y2)
			c.line(c0, r0, c1, r1, segmentRune(c1-c0, r1-r0))
		case domain.VariantRectangle:
			c.box(geom.BoxOf(el.X1, el.Y1, el.X2, el.Y2))
		case domain.VariantFreehand:
			for i, p := range el.Points {
				col, row := g.Cell(p.X, p.Y)
				if i == 0 {
					c.set(col, row, '•')
					continue
				}
				pc, pr := g.Cell(el.Points[i-1].X, el.Points[i-1].Y)
				c.line(pc, pr, col, row, '•')
			}
		case domain.VariantText:
			col, row := g.Cell(el.X1, el.Y1)
			c.text(col, row, el.Text)
		case domain.VariantNotGate, domain.VariantAndGate, domain.VariantOrGate:
			fp, _ := scene.Footprint(el.Variant, el.X1, el.Y1)
			c.box(fp)
			c0, r0 := g.Cell(fp.Min.X, fp.Min.Y)
			c1, r1 := g.Cell(fp.Max.X, fp.Max.Y)
			label := gateLabel(el.Variant)
			c.text((c0+c1)/2-len(label)/2, (r0+r1)/2, label)
		default:
			return nil, fmt.Errorf("rasterize element %d: %w: %q", el.ID, domain.ErrUnrecognizedVariant, el.Variant)
		}
	}
	return c, nil
}

func segmentRune(dc, dr int) rune {
	switch {
	case dr == 0:
		return '─'
	case dc == 0:
		return '│'
	case (dc > 0) == (dr > 0):
		return '╲'
	default:
		return '╱'
	}
}

func gateLabel(v domain.Variant) string {
	switch v {
	case domain.VariantNotGate:
		return "NOT"
	case domain.VariantAndGate:
		return "AND"
	default:
		return "OR"
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

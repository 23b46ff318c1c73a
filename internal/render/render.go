package render

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"sync"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"whiteboard/internal/domain"
)

// NoSkip renders every element.
const NoSkip = -1

// Options control the raster output.
type Options struct {
	Width       int
	Height      int
	StrokeWidth float64
	FontSize    float64
}

// DefaultOptions matches the on-screen canvas.
func DefaultOptions() Options {
	return Options{Width: 1280, Height: 800, StrokeWidth: 2, FontSize: 24}
}

// Renderer rasterizes scenes to PNG.
type Renderer struct {
	opts Options

	mu   sync.Mutex
	face font.Face
}

// New parses the text font and returns a Renderer.
func New(opts Options) (*Renderer, error) {
	def := DefaultOptions()
	if opts.Width <= 0 {
		opts.Width = def.Width
	}
	if opts.Height <= 0 {
		opts.Height = def.Height
	}
	if opts.StrokeWidth <= 0 {
		opts.StrokeWidth = def.StrokeWidth
	}
	if opts.FontSize <= 0 {
		opts.FontSize = def.FontSize
	}

	ttf, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face := truetype.NewFace(ttf, &truetype.Options{
		Size:    opts.FontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	return &Renderer{opts: opts, face: face}, nil
}

// Options returns the effective options.
func (r *Renderer) Options() Options { return r.opts }

// Render draws s onto a white canvas and encodes it as PNG. The element with
// id skip is left out; pass NoSkip to draw everything.
func (r *Renderer) Render(s domain.Scene, skip int) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	dc := gg.NewContext(r.opts.Width, r.opts.Height)
	dc.SetColor(color.White)
	dc.Clear()
	dc.SetColor(color.Black)
	dc.SetFontFace(r.face)
	dc.SetLineCapRound()
	dc.SetLineJoinRound()

	for _, el := range s {
		if el.ID == skip {
			continue
		}
		if err := r.draw(dc, el); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) draw(dc *gg.Context, el domain.Element) error {
	dc.SetLineWidth(r.opts.StrokeWidth)
	switch el.Variant {
	case domain.VariantSegment:
		dc.DrawLine(el.X1, el.Y1, el.X2, el.Y2)
		dc.Stroke()
	case domain.VariantRectangle:
		dc.DrawRectangle(math.Min(el.X1, el.X2), math.Min(el.Y1, el.Y2), math.Abs(el.X2-el.X1), math.Abs(el.Y2-el.Y1))
		dc.Stroke()
	case domain.VariantFreehand:
		drawStroke(dc, el)
	case domain.VariantText:
		// Anchored at the top-left corner of the text box.
		dc.DrawStringAnchored(el.Text, el.X1, el.Y1, 0, 1)
	case domain.VariantNotGate:
		drawNotGate(dc, el.X1, el.Y1)
	case domain.VariantAndGate:
		drawAndGate(dc, el.X1, el.Y1)
	case domain.VariantOrGate:
		drawOrGate(dc, el.X1, el.Y1)
	default:
		return fmt.Errorf("render element %d: %w: %q", el.ID, domain.ErrUnrecognizedVariant, el.Variant)
	}
	return nil
}

// ── Shapes ─────────────────────────────────────────────────

const freehandWidth = 5

func drawStroke(dc *gg.Context, el domain.Element) {
	if len(el.Points) == 0 {
		return
	}
	if len(el.Points) == 1 {
		p := el.Points[0]
		dc.DrawCircle(p.X, p.Y, freehandWidth/2)
		dc.Fill()
		return
	}
	dc.SetLineWidth(freehandWidth)
	dc.MoveTo(el.Points[0].X, el.Points[0].Y)
	for _, p := range el.Points[1:] {
		dc.LineTo(p.X, p.Y)
	}
	dc.Stroke()
}

// Gate glyphs are anchored at the first input lead.

func drawNotGate(dc *gg.Context, x, y float64) {
	dc.DrawLine(x, y, x+70, y)
	dc.MoveTo(x+70, y-50)
	dc.LineTo(x+70, y+50)
	dc.LineTo(x+120, y)
	dc.ClosePath()
	dc.Stroke()
	dc.DrawCircle(x+125, y, 5)
	dc.Stroke()
	dc.DrawLine(x+130, y, x+190, y)
	dc.Stroke()
}

func drawAndGate(dc *gg.Context, x, y float64) {
	dc.DrawLine(x, y, x+70, y)
	dc.DrawLine(x, y+60, x+70, y+60)
	dc.Stroke()
	dc.MoveTo(x+70, y-20)
	dc.LineTo(x+70, y+80)
	dc.Stroke()
	dc.DrawArc(x+70, y+30, 50, -math.Pi/2, math.Pi/2)
	dc.Stroke()
	dc.DrawLine(x+120, y+30, x+190, y+30)
	dc.Stroke()
}

func drawOrGate(dc *gg.Context, x, y float64) {
	dc.DrawLine(x, y, x+85, y)
	dc.DrawLine(x, y+60, x+85, y+60)
	dc.Stroke()
	dc.DrawEllipticalArc(x+50, y+30, 40, 70, -math.Pi/2, math.Pi/2)
	dc.Stroke()
	dc.MoveTo(x+50, y-40)
	dc.QuadraticTo(x+105, y-50, x+160, y+30)
	dc.MoveTo(x+50, y+100)
	dc.QuadraticTo(x+105, y+110, x+160, y+30)
	dc.Stroke()
	dc.DrawLine(x+160, y+30, x+240, y+30)
	dc.Stroke()
}

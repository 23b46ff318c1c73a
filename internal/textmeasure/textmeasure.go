package textmeasure

import (
	"fmt"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// DefaultSize is the point size text elements are laid out at.
const DefaultSize = 24.0

// Face measures strings in Go Regular at a fixed size. The underlying
// font.Face caches glyphs and is not safe for concurrent use, so access is
// serialized.
type Face struct {
	mu   sync.Mutex
	face font.Face
	size float64
}

// New parses the embedded Go Regular font at size points.
func New(size float64) (*Face, error) {
	if size <= 0 {
		size = DefaultSize
	}
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse goregular: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	return &Face{face: face, size: size}, nil
}

// Size returns the point size of the face.
func (f *Face) Size() float64 { return f.size }

// Measure returns the advance width of text in pixels.
func (f *Face) Measure(text string) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	adv := font.MeasureString(f.face, text)
	return float64(adv) / 64
}

// Ascent returns the distance from the top of a line to its baseline.
func (f *Face) Ascent() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return float64(f.face.Metrics().Ascent) / 64
}

package mcpserver

import (
	"testing"

	"whiteboard/internal/geom"
)

func TestNextPosition_EmptyCanvas(t *testing.T) {
	le := NewLayoutEngine(0)
	x, y := le.NextPosition(nil, 160, 100)
	if x != 0 || y != 0 {
		t.Errorf("expected (0, 0) for empty canvas, got (%.0f, %.0f)", x, y)
	}
}

func TestNextPosition_AvoidsExisting(t *testing.T) {
	le := NewLayoutEngine(0)
	existing := []geom.Box{
		geom.BoxOf(0, 0, 160, 100),
		geom.BoxOf(200, 0, 360, 100),
	}
	x, y := le.NextPosition(existing, 160, 100)

	r := geom.Box{Min: geom.Pt(x, y), Max: geom.Pt(x+160, y+100)}
	for _, b := range existing {
		padded := geom.Box{
			Min: b.Min.Sub(geom.Pt(Padding, Padding)),
			Max: b.Max.Add(geom.Pt(Padding, Padding)),
		}
		if intersects(r, padded) {
			t.Errorf("position (%.0f, %.0f) overlaps box %+v", x, y, b)
		}
	}
	if y != 0 {
		t.Errorf("expected the first row to have room, got y=%.0f", y)
	}
}

func TestNextPosition_WrapsRows(t *testing.T) {
	le := NewLayoutEngine(400)
	existing := []geom.Box{geom.BoxOf(0, 0, 400, 100)}
	x, y := le.NextPosition(existing, 100, 100)
	if x != 0 || y < 100+Padding {
		t.Errorf("expected placement on a lower row, got (%.0f, %.0f)", x, y)
	}
}

func TestSnap(t *testing.T) {
	le := NewLayoutEngine(0)
	tests := []struct {
		input, want float64
	}{
		{0, 0},
		{9, 0},
		{10, 20},
		{25, 20},
		{30, 40},
		{100, 100},
	}
	for _, tt := range tests {
		got := le.snap(tt.input)
		if got != tt.want {
			t.Errorf("snap(%.0f) = %.0f, want %.0f", tt.input, got, tt.want)
		}
	}
}

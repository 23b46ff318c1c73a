package mcpserver

import (
	"testing"

	"whiteboard/internal/geom"
)

func TestRouteWire_Straight(t *testing.T) {
	src := geom.BoxOf(0, 0, 100, 100)
	dst := geom.BoxOf(300, 0, 400, 100)

	path := routeWire(src, dst, nil)
	want := []geom.Point{geom.Pt(100, 50), geom.Pt(300, 50)}
	if len(path) != len(want) {
		t.Fatalf("expected %v, got %v", want, path)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Errorf("point %d: expected %v, got %v", i, want[i], path[i])
		}
	}
}

func TestRouteWire_AvoidsObstacle(t *testing.T) {
	src := geom.BoxOf(0, 0, 100, 100)
	dst := geom.BoxOf(300, 0, 400, 100)
	obstacle := geom.BoxOf(180, 20, 220, 80)

	path := routeWire(src, dst, []geom.Box{obstacle})
	if len(path) < 2 {
		t.Fatalf("expected a path, got %v", path)
	}
	if path[0] != geom.Pt(100, 50) || path[len(path)-1] != geom.Pt(300, 50) {
		t.Errorf("expected path from (100,50) to (300,50), got %v", path)
	}
	for i := 1; i < len(path); i++ {
		a, b := path[i-1], path[i]
		if a.X != b.X && a.Y != b.Y {
			t.Errorf("leg %d is diagonal: %v -> %v", i, a, b)
		}
		for _, box := range []geom.Box{src, dst, obstacle} {
			if crosses(a, b, box) {
				t.Errorf("leg %d (%v -> %v) crosses %v", i, a, b, box)
			}
		}
	}
}

func TestCrosses(t *testing.T) {
	box := geom.BoxOf(10, 10, 20, 20)
	tests := []struct {
		name string
		a, b geom.Point
		want bool
	}{
		{"horizontal through", geom.Pt(0, 15), geom.Pt(30, 15), true},
		{"horizontal along edge", geom.Pt(0, 10), geom.Pt(30, 10), false},
		{"horizontal short of box", geom.Pt(0, 15), geom.Pt(10, 15), false},
		{"vertical through", geom.Pt(15, 0), geom.Pt(15, 30), true},
		{"vertical beside", geom.Pt(25, 0), geom.Pt(25, 30), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := crosses(tt.a, tt.b, box); got != tt.want {
				t.Errorf("crosses(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSimplify(t *testing.T) {
	in := []geom.Point{
		geom.Pt(0, 0), geom.Pt(0, 0), geom.Pt(10, 0), geom.Pt(20, 0),
		geom.Pt(20, 10), geom.Pt(20, 30),
	}
	got := simplify(in)
	want := []geom.Point{geom.Pt(0, 0), geom.Pt(20, 0), geom.Pt(20, 30)}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("point %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

package mcpserver

import (
	"container/heap"
	"math"
	"slices"

	"whiteboard/internal/geom"
)

// ═══════════════════════════════════════════════════════════════
// Orthogonal wire routing with obstacle avoidance
// ═══════════════════════════════════════════════════════════════
//
// A wire leaves the right edge of its source, enters the left edge of its
// target and only runs horizontally or vertically. Candidate bend points sit
// on a sparse grid built from the obstacle edges; the cheapest path is found
// with Dijkstra, charging extra for every bend.

const wireMargin = 20.0

// ports returns where a wire leaves src and enters dst.
func ports(src, dst geom.Box) (out, in geom.Point) {
	out = geom.Pt(src.Max.X, (src.Min.Y+src.Max.Y)/2)
	in = geom.Pt(dst.Min.X, (dst.Min.Y+dst.Max.Y)/2)
	return out, in
}

// routeWire computes the polyline of a wire from src to dst that keeps out of
// every obstacle. src and dst are obstacles too.
func routeWire(src, dst geom.Box, obstacles []geom.Box) []geom.Point {
	start, end := ports(src, dst)
	a1 := geom.Pt(start.X+wireMargin, start.Y)
	a2 := geom.Pt(end.X-wireMargin, end.Y)

	blocks := append([]geom.Box{src, dst}, obstacles...)

	xs := []float64{a1.X, a2.X}
	ys := []float64{a1.Y, a2.Y}
	for _, b := range blocks {
		xs = append(xs, b.Min.X-wireMargin, b.Max.X+wireMargin)
		ys = append(ys, b.Min.Y-wireMargin, b.Max.Y+wireMargin)
	}
	xs = withMidpoints(uniqSorted(xs))
	ys = withMidpoints(uniqSorted(ys))

	path := shortestPath(xs, ys, a1, a2, blocks)
	if path == nil {
		mid := (a1.X + a2.X) / 2
		path = []geom.Point{a1, geom.Pt(mid, a1.Y), geom.Pt(mid, a2.Y), a2}
	}
	full := append([]geom.Point{start}, path...)
	return simplify(append(full, end))
}

// ── Graph search ───────────────────────────────────────────

type axis byte

const (
	axisNone axis = iota
	axisH
	axisV
)

type spot struct{ col, row int }

type state struct {
	at  spot
	dir axis
}

type item struct {
	st   state
	dist float64
}

type queue []item

func (q queue) Len() int           { return len(q) }
func (q queue) Less(i, j int) bool { return q[i].dist < q[j].dist }
func (q queue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x any)        { *q = append(*q, x.(item)) }
func (q *queue) Pop() any {
	old := *q
	it := old[len(old)-1]
	*q = old[:len(old)-1]
	return it
}

// shortestPath runs Dijkstra over the grid xs × ys from a to b. Grid points
// inside a block are unusable, and so are moves that cut through one.
func shortestPath(xs, ys []float64, a, b geom.Point, blocks []geom.Box) []geom.Point {
	at := func(s spot) geom.Point { return geom.Pt(xs[s.col], ys[s.row]) }
	from := spot{slices.Index(xs, a.X), slices.Index(ys, a.Y)}
	to := spot{slices.Index(xs, b.X), slices.Index(ys, b.Y)}
	if from.col < 0 || from.row < 0 || to.col < 0 || to.row < 0 {
		return nil
	}

	free := func(s spot) bool {
		p := at(s)
		for _, bl := range blocks {
			if p.X > bl.Min.X && p.X < bl.Max.X && p.Y > bl.Min.Y && p.Y < bl.Max.Y {
				return false
			}
		}
		return true
	}
	open := func(p, q geom.Point) bool {
		for _, bl := range blocks {
			if crosses(p, q, bl) {
				return false
			}
		}
		return true
	}

	dist := map[state]float64{}
	prev := map[state]state{}
	start := state{at: from}
	dist[start] = 0
	q := &queue{{st: start}}

	var goal *state
	for q.Len() > 0 {
		cur := heap.Pop(q).(item)
		if cur.dist > dist[cur.st] {
			continue
		}
		if cur.st.at == to {
			goal = &cur.st
			break
		}
		for _, step := range []struct {
			dc, dr int
			dir    axis
		}{{1, 0, axisH}, {-1, 0, axisH}, {0, 1, axisV}, {0, -1, axisV}} {
			next := spot{cur.st.at.col + step.dc, cur.st.at.row + step.dr}
			if next.col < 0 || next.col >= len(xs) || next.row < 0 || next.row >= len(ys) {
				continue
			}
			if !free(next) || !open(at(cur.st.at), at(next)) {
				continue
			}
			w := geom.Distance(at(cur.st.at), at(next))
			if cur.st.dir != axisNone && cur.st.dir != step.dir {
				w += (w + 1) * (w + 1)
			}
			ns := state{at: next, dir: step.dir}
			nd := cur.dist + w
			if d, seen := dist[ns]; seen && d <= nd {
				continue
			}
			dist[ns] = nd
			prev[ns] = cur.st
			heap.Push(q, item{st: ns, dist: nd})
		}
	}
	if goal == nil {
		return nil
	}

	var path []geom.Point
	for s := *goal; ; s = prev[s] {
		path = append(path, at(s.at))
		if s == start {
			break
		}
	}
	slices.Reverse(path)
	return path
}

// crosses reports whether the axis-aligned move p→q passes through the
// interior of b.
func crosses(p, q geom.Point, b geom.Box) bool {
	if p.Y == q.Y {
		if p.Y <= b.Min.Y || p.Y >= b.Max.Y {
			return false
		}
		return math.Min(p.X, q.X) < b.Max.X && math.Max(p.X, q.X) > b.Min.X
	}
	if p.X <= b.Min.X || p.X >= b.Max.X {
		return false
	}
	return math.Min(p.Y, q.Y) < b.Max.Y && math.Max(p.Y, q.Y) > b.Min.Y
}

// ── Helpers ────────────────────────────────────────────────

// simplify drops repeated and collinear waypoints.
func simplify(pts []geom.Point) []geom.Point {
	out := make([]geom.Point, 0, len(pts))
	for _, p := range pts {
		if n := len(out); n > 0 && out[n-1] == p {
			continue
		}
		if n := len(out); n >= 2 {
			a, b := out[n-2], out[n-1]
			if (a.X == b.X && b.X == p.X) || (a.Y == b.Y && b.Y == p.Y) {
				out[n-1] = p
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

func uniqSorted(vals []float64) []float64 {
	slices.Sort(vals)
	return slices.Compact(vals)
}

// withMidpoints adds the midpoint of every gap so paths can run between
// neighbouring obstacles.
func withMidpoints(vals []float64) []float64 {
	out := make([]float64, 0, 2*len(vals))
	for i, v := range vals {
		if i > 0 {
			out = append(out, (vals[i-1]+v)/2)
		}
		out = append(out, v)
	}
	return out
}

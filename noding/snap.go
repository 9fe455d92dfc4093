// Package noding implements Iterated Snap Rounding: given a set of
// possibly-crossing, possibly-overlapping input segments, it produces a set
// of non-crossing segments whose endpoints all lie on a fixed grid.
package noding

import (
	"sort"

	"github.com/rubenv/polygonize/geom"
	"github.com/rubenv/polygonize/rtree"
)

// Noder runs Iterated Snap Rounding over a fixed grid size, giving up after
// MaxIterations rounds without reaching a fixed point.
type Noder struct {
	GridSize      float64
	MaxIterations int
}

// New returns a Noder with the given grid size and iteration cap.
func New(gridSize float64, maxIterations int) *Noder {
	return &Noder{GridSize: gridSize, MaxIterations: maxIterations}
}

// Result is the outcome of a Node call.
type Result struct {
	Segments  []geom.Segment
	Converged bool
}

// Node runs the ISR loop to completion or until MaxIterations is reached.
func (n *Noder) Node(input []geom.Segment) Result {
	lines := make([]geom.Segment, 0, len(input))
	for _, s := range input {
		a, _ := geom.Snap(s.A, n.GridSize)
		b, _ := geom.Snap(s.B, n.GridSize)
		if a.Equal(b) {
			continue
		}
		lines = append(lines, geom.Segment{A: a, B: b})
	}

	lines = normalizeAndDedup(lines)

	converged := false
	for iter := 0; iter < n.MaxIterations; iter++ {
		splits := n.findSplits(lines)
		if len(splits) == 0 {
			converged = true
			break
		}

		newLines := make([]geom.Segment, 0, len(lines)*2)
		for i, line := range lines {
			pts, ok := splits[i]
			if !ok {
				newLines = append(newLines, line)
				continue
			}
			pts = append(pts, line.A, line.B)

			start := line.A
			sort.Slice(pts, func(a, b int) bool {
				return pts[a].DistSq(start) < pts[b].DistSq(start)
			})
			pts = dedupPoints(pts)

			for w := 0; w+1 < len(pts); w++ {
				p0, p1 := pts[w], pts[w+1]
				if !p0.Equal(p1) {
					newLines = append(newLines, geom.Segment{A: p0, B: p1})
				}
			}
		}

		newLines = normalizeAndDedup(newLines)
		lines = newLines
	}

	return Result{Segments: lines, Converged: converged}
}

// findSplits builds an R-tree over the current segments' bounding boxes and
// returns, for each segment index with at least one split, the set of
// grid-snapped split points that lie strictly inside it (excluding points
// equal to an existing endpoint).
func (n *Noder) findSplits(lines []geom.Segment) map[int][]geom.Point {
	splits := make(map[int][]geom.Point)
	if len(lines) == 0 {
		return splits
	}

	var tree rtree.RTree
	for i, l := range lines {
		tree.Insert(boxOf(l), i)
	}

	add := func(idx int, p geom.Point) {
		splits[idx] = append(splits[idx], p)
	}

	for i, l1 := range lines {
		seen := make(map[int]bool)
		_ = tree.RangeSearch(boxOf(l1), func(j int) error {
			if j <= i || seen[j] {
				return nil
			}
			seen[j] = true
			l2 := lines[j]

			res := geom.Intersect(l1, l2)
			switch res.Kind {
			case geom.Cross, geom.Touch:
				snapped, _ := geom.Snap(res.Point, n.GridSize)
				if !snapped.Equal(l1.A) && !snapped.Equal(l1.B) {
					add(i, snapped)
				}
				if !snapped.Equal(l2.A) && !snapped.Equal(l2.B) {
					add(j, snapped)
				}
			case geom.Overlap:
				p1, _ := geom.Snap(res.Overlap.A, n.GridSize)
				p2, _ := geom.Snap(res.Overlap.B, n.GridSize)
				for _, p := range [2]geom.Point{p1, p2} {
					if !p.Equal(l1.A) && !p.Equal(l1.B) {
						add(i, p)
					}
					if !p.Equal(l2.A) && !p.Equal(l2.B) {
						add(j, p)
					}
				}
			}
			return nil
		})
	}

	return splits
}

func boxOf(s geom.Segment) rtree.Box {
	return rtree.NewBox(s.A.X, s.A.Y, s.B.X, s.B.Y)
}

func dedupPoints(pts []geom.Point) []geom.Point {
	out := pts[:0:0]
	for i, p := range pts {
		if i == 0 || !p.Equal(pts[i-1]) {
			out = append(out, p)
		}
	}
	return out
}

// normalizeAndDedup normalizes each segment's endpoint order (lesser point
// first) and sorts/dedups the whole set for deterministic output.
func normalizeAndDedup(lines []geom.Segment) []geom.Segment {
	for i, l := range lines {
		lines[i] = l.Normalized()
	}
	sort.Slice(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if a.A != b.A {
			return a.A.Less(b.A)
		}
		return a.B.Less(b.B)
	})
	out := lines[:0:0]
	for i, l := range lines {
		if i == 0 || l != lines[i-1] {
			out = append(out, l)
		}
	}
	return out
}

package noding

import (
	"testing"

	"github.com/rubenv/polygonize/geom"
)

func TestNodeSplitsCrossingSegments(t *testing.T) {
	n := New(1e-6, 20)
	input := []geom.Segment{
		{A: geom.Point{X: 0, Y: 0}, B: geom.Point{X: 2, Y: 2}},
		{A: geom.Point{X: 0, Y: 2}, B: geom.Point{X: 2, Y: 0}},
	}
	res := n.Node(input)
	if !res.Converged {
		t.Fatalf("expected convergence")
	}

	for i, s := range res.Segments {
		for j, o := range res.Segments {
			if i == j {
				continue
			}
			got := geom.Intersect(s, o)
			if got.Kind == geom.Cross {
				t.Fatalf("segments %v and %v still cross at %v", s, o, got.Point)
			}
		}
	}

	var hasMidpoint bool
	for _, s := range res.Segments {
		if s.A == (geom.Point{X: 1, Y: 1}) || s.B == (geom.Point{X: 1, Y: 1}) {
			hasMidpoint = true
		}
	}
	if !hasMidpoint {
		t.Fatalf("expected a segment endpoint at the crossing point, got %v", res.Segments)
	}
}

func TestNodeDropsZeroLengthSegments(t *testing.T) {
	n := New(1e-6, 20)
	input := []geom.Segment{
		{A: geom.Point{X: 0, Y: 0}, B: geom.Point{X: 1e-9, Y: 1e-9}},
		{A: geom.Point{X: 0, Y: 0}, B: geom.Point{X: 5, Y: 5}},
	}
	res := n.Node(input)
	if len(res.Segments) != 1 {
		t.Fatalf("expected the degenerate segment to be dropped, got %v", res.Segments)
	}
}

func TestNodeDedupsDuplicateSegmentsWithNoSplits(t *testing.T) {
	n := New(1e-6, 20)
	input := []geom.Segment{
		{A: geom.Point{X: 0, Y: 0}, B: geom.Point{X: 1, Y: 0}},
		{A: geom.Point{X: 0, Y: 0}, B: geom.Point{X: 1, Y: 0}},
		{A: geom.Point{X: 1, Y: 0}, B: geom.Point{X: 0, Y: 0}},
	}
	res := n.Node(input)
	if !res.Converged {
		t.Fatalf("expected convergence")
	}
	if len(res.Segments) != 1 {
		t.Fatalf("expected duplicate/reversed-duplicate segments with no crossings to dedup to 1 segment, got %v", res.Segments)
	}
}

func TestNodeIsIdempotentOnAlreadyNodedInput(t *testing.T) {
	n := New(1e-6, 20)
	input := []geom.Segment{
		{A: geom.Point{X: 0, Y: 0}, B: geom.Point{X: 1, Y: 0}},
		{A: geom.Point{X: 1, Y: 0}, B: geom.Point{X: 1, Y: 1}},
	}
	first := n.Node(input)
	second := n.Node(first.Segments)
	if len(first.Segments) != len(second.Segments) {
		t.Fatalf("expected re-noding an already-noded set to be a no-op: %v vs %v", first.Segments, second.Segments)
	}
}

package graph

import (
	"testing"

	"github.com/rubenv/polygonize/geom"
)

func unitSquareSegments() []geom.Segment {
	pts := []geom.Point{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	var segs []geom.Segment
	for i := range pts {
		segs = append(segs, geom.Segment{A: pts[i], B: pts[(i+1)%len(pts)]})
	}
	return segs
}

func TestBulkLoadDedupsSharedEndpoints(t *testing.T) {
	g := New(1e-9)
	g.BulkLoad(unitSquareSegments())

	if g.NumNodes() != 4 {
		t.Fatalf("expected 4 nodes, got %d", g.NumNodes())
	}
	if len(g.Edges) != 4 {
		t.Fatalf("expected 4 edges, got %d", len(g.Edges))
	}
	for _, d := range g.NodeDegree {
		if d != 2 {
			t.Fatalf("expected degree 2 at every corner of the unit square, got %d", d)
		}
	}
}

func TestBulkLoadDedupsDuplicateUndirectedEdges(t *testing.T) {
	g := New(1e-9)
	g.BulkLoad([]geom.Segment{
		{A: geom.Point{0, 0}, B: geom.Point{1, 0}},
		{A: geom.Point{0, 0}, B: geom.Point{1, 0}}, // exact duplicate
		{A: geom.Point{1, 0}, B: geom.Point{0, 0}}, // same edge, reversed
	})

	if g.NumNodes() != 2 {
		t.Fatalf("expected 2 nodes, got %d", g.NumNodes())
	}
	if len(g.Edges) != 1 {
		t.Fatalf("expected duplicate undirected edges to collapse to 1 edge, got %d", len(g.Edges))
	}
	for _, d := range g.NodeDegree {
		if d != 1 {
			t.Fatalf("expected degree 1 at both endpoints after dedup, got %d", d)
		}
	}
}

func TestTwinsAreMutualAndDistinctOrigins(t *testing.T) {
	g := New(1e-9)
	g.BulkLoad(unitSquareSegments())

	for i := range g.DirEdges {
		h := DirEdgeID(i)
		tw := g.DirEdges[h].Twin
		if g.DirEdges[tw].Twin != h {
			t.Fatalf("twin relationship not mutual for half-edge %d", h)
		}
		if g.DirEdges[h].Origin == g.DirEdges[tw].Origin {
			t.Fatalf("half-edge %d and its twin share an origin", h)
		}
		if tw != Twin(h) {
			t.Fatalf("Twin(%d) = %d, want stored twin %d", h, Twin(h), tw)
		}
	}
}

func TestPruneDanglesRemovesTree(t *testing.T) {
	g := New(1e-9)
	g.BulkLoad([]geom.Segment{
		{A: geom.Point{0, 0}, B: geom.Point{1, 0}},
		{A: geom.Point{1, 0}, B: geom.Point{2, 0}},
		{A: geom.Point{1, 0}, B: geom.Point{1, 1}},
	})

	removed := g.PruneDangles()
	if removed != 4 {
		t.Fatalf("expected all 4 nodes of a tree to be pruned as dangles, got %d", removed)
	}
	rings, invalid, predicateFailures := g.ExtractRings()
	if len(rings) != 0 || invalid != 0 || predicateFailures != 0 {
		t.Fatalf("expected no rings from a dangling tree, got %d rings, %d invalid, %d predicate failures", len(rings), invalid, predicateFailures)
	}
}

func TestExtractRingsFindsUnitSquare(t *testing.T) {
	g := New(1e-9)
	g.BulkLoad(unitSquareSegments())
	g.SortEdges()
	g.PruneDangles()

	rings, invalid, predicateFailures := g.ExtractRings()
	if invalid != 0 {
		t.Fatalf("expected no invalid walks, got %d", invalid)
	}
	if predicateFailures != 0 {
		t.Fatalf("expected no predicate failures, got %d", predicateFailures)
	}
	if len(rings) != 2 {
		t.Fatalf("expected 2 rings (inner + outer face) from a single square, got %d", len(rings))
	}

	var sawPositive, sawNegative bool
	for _, r := range rings {
		if r.SignedArea2 > 0 {
			sawPositive = true
		} else if r.SignedArea2 < 0 {
			sawNegative = true
		}
	}
	if !sawPositive || !sawNegative {
		t.Fatalf("expected one CW and one CCW ring for a single square boundary, got rings %+v", rings)
	}
}

func TestExtractRingsEachHalfEdgeInAtMostOneRing(t *testing.T) {
	g := New(1e-9)
	g.BulkLoad(unitSquareSegments())
	g.SortEdges()
	g.PruneDangles()
	rings, _, _ := g.ExtractRings()

	seen := make(map[DirEdgeID]int)
	for ri, r := range rings {
		for _, h := range r.HalfEdges {
			seen[h]++
			if seen[h] > 1 {
				t.Fatalf("half-edge %d appears in more than one ring (ring %d)", h, ri)
			}
		}
	}
}

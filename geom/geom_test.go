package geom

import (
	"math"
	"testing"
)

func TestOrientAntisymmetric(t *testing.T) {
	p := Point{0, 0}
	q := Point{1, 0}
	r := Point{0, 1}
	if Orient(p, q, r) != CounterClockwise {
		t.Fatalf("expected CCW, got %v", Orient(p, q, r))
	}
	if Orient(q, p, r) != Clockwise {
		t.Fatalf("expected orient(p,q,r) = -orient(q,p,r)")
	}
}

func TestOrientCollinear(t *testing.T) {
	p := Point{0, 0}
	q := Point{2, 2}
	r := Point{1, 1}
	if Orient(p, q, r) != Collinear {
		t.Fatalf("expected Collinear, got %v", Orient(p, q, r))
	}
}

func TestIntersectCross(t *testing.T) {
	s := Segment{A: Point{0, 0}, B: Point{2, 2}}
	u := Segment{A: Point{0, 2}, B: Point{2, 0}}
	got := Intersect(s, u)
	if got.Kind != Cross {
		t.Fatalf("expected Cross, got %v", got.Kind)
	}
	want := Point{1, 1}
	if got.Point != want {
		t.Fatalf("expected intersection at %v, got %v", want, got.Point)
	}
}

func TestIntersectDisjoint(t *testing.T) {
	s := Segment{A: Point{0, 0}, B: Point{1, 0}}
	u := Segment{A: Point{0, 1}, B: Point{1, 1}}
	if got := Intersect(s, u); got.Kind != Disjoint {
		t.Fatalf("expected Disjoint, got %v", got.Kind)
	}
}

func TestIntersectTouchAtEndpoint(t *testing.T) {
	s := Segment{A: Point{0, 0}, B: Point{2, 0}}
	u := Segment{A: Point{1, 0}, B: Point{1, 1}}
	got := Intersect(s, u)
	if got.Kind != Touch {
		t.Fatalf("expected Touch, got %v", got.Kind)
	}
	if got.Point != (Point{1, 0}) {
		t.Fatalf("unexpected touch point %v", got.Point)
	}
}

func TestIntersectCollinearOverlap(t *testing.T) {
	s := Segment{A: Point{0, 0}, B: Point{3, 0}}
	u := Segment{A: Point{1, 0}, B: Point{4, 0}}
	got := Intersect(s, u)
	if got.Kind != Overlap {
		t.Fatalf("expected Overlap, got %v", got.Kind)
	}
	if got.Overlap.A.X > got.Overlap.B.X {
		got.Overlap.A, got.Overlap.B = got.Overlap.B, got.Overlap.A
	}
	if got.Overlap.A != (Point{1, 0}) || got.Overlap.B != (Point{3, 0}) {
		t.Fatalf("unexpected overlap span %v", got.Overlap)
	}
}

func TestPointInRingSquare(t *testing.T) {
	ring := []Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	if !PointInRing(Point{2, 2}, ring) {
		t.Fatalf("expected center to be inside")
	}
	if !PointInRing(Point{0, 2}, ring) {
		t.Fatalf("expected boundary point to be considered inside")
	}
	if PointInRing(Point{5, 2}, ring) {
		t.Fatalf("expected point outside the ring to be outside")
	}
}

func TestPointInRingScalarAndUnrolledAgree(t *testing.T) {
	var ring []Point
	const n = 200
	for i := 0; i < n; i++ {
		angle := float64(i) / n * 6.283185307179586
		ring = append(ring, Point{X: 10 * math.Cos(angle), Y: 10 * math.Sin(angle)})
	}
	probe := Point{0, 0}
	if !pointInRingScalar(probe, ring) {
		t.Fatalf("scalar: expected center inside large ring")
	}
	if !pointInRingUnrolled(probe, ring) {
		t.Fatalf("unrolled: expected center inside large ring")
	}
	outside := Point{1000, 1000}
	if pointInRingScalar(outside, ring) != pointInRingUnrolled(outside, ring) {
		t.Fatalf("scalar/unrolled disagree on outside point")
	}
}

func TestSignedArea2Sign(t *testing.T) {
	ccw := []Point{{0, 0}, {4, 0}, {4, 4}, {0, 4}}
	if SignedArea2(ccw) <= 0 {
		t.Fatalf("expected positive signed area for CCW ring")
	}
	cw := []Point{{0, 0}, {0, 4}, {4, 4}, {4, 0}}
	if SignedArea2(cw) >= 0 {
		t.Fatalf("expected negative signed area for CW ring")
	}
}

func TestCentroidFallsBackOnDegenerateRing(t *testing.T) {
	ring := []Point{{1, 1}, {1, 1}, {1, 1}}
	c := Centroid(ring)
	if c != (Point{1, 1}) {
		t.Fatalf("expected fallback to first vertex, got %v", c)
	}
}

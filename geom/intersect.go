package geom

// IntersectionKind discriminates the outcome of intersecting two segments.
type IntersectionKind int

const (
	Disjoint IntersectionKind = iota
	Touch                     // endpoint-only contact
	Cross                     // proper interior crossing
	Overlap                   // collinear overlap
)

// SegmentIntersection is a tagged union over the four possible outcomes of
// intersecting two segments. Callers switch on Kind; there is no interface
// or virtual dispatch involved.
type SegmentIntersection struct {
	Kind IntersectionKind
	// Point is valid for Touch and Cross.
	Point Point
	// Overlap is valid for Overlap: the collinear overlapping sub-segment.
	Overlap Segment
}

// Intersect classifies the intersection of segments s and t.
func Intersect(s, t Segment) SegmentIntersection {
	o1 := Orient(s.A, s.B, t.A)
	o2 := Orient(s.A, s.B, t.B)
	o3 := Orient(t.A, t.B, s.A)
	o4 := Orient(t.A, t.B, s.B)

	if o1 != o2 && o3 != o4 {
		if o1 == Collinear || o2 == Collinear || o3 == Collinear || o4 == Collinear {
			// One endpoint lies exactly on the other segment's line, and
			// the segments still straddle each other: touch at that point.
			switch {
			case o1 == Collinear:
				return SegmentIntersection{Kind: Touch, Point: t.A}
			case o2 == Collinear:
				return SegmentIntersection{Kind: Touch, Point: t.B}
			case o3 == Collinear:
				return SegmentIntersection{Kind: Touch, Point: s.A}
			default:
				return SegmentIntersection{Kind: Touch, Point: s.B}
			}
		}
		return SegmentIntersection{Kind: Cross, Point: lineIntersectionPoint(s, t)}
	}

	if o1 == Collinear && o2 == Collinear {
		// s.A, s.B, t.A, t.B are all collinear: either disjoint, touching
		// at a single shared endpoint, or overlapping along a sub-segment.
		return collinearIntersect(s, t)
	}

	return SegmentIntersection{Kind: Disjoint}
}

// lineIntersectionPoint computes the intersection of the infinite lines
// through s and t, valid only when the segments are known (by the orient
// tests in Intersect) to properly cross.
func lineIntersectionPoint(s, t Segment) Point {
	x1, y1 := s.A.X, s.A.Y
	x2, y2 := s.B.X, s.B.Y
	x3, y3 := t.A.X, t.A.Y
	x4, y4 := t.B.X, t.B.Y

	denom := (x1-x2)*(y3-y4) - (y1-y2)*(x3-x4)
	tNum := (x1-x3)*(y3-y4) - (y1-y3)*(x3-x4)
	tParam := tNum / denom

	return Point{
		X: x1 + tParam*(x2-x1),
		Y: y1 + tParam*(y2-y1),
	}
}

// collinearIntersect handles the case where all four endpoints are
// collinear, distinguishing disjoint, touch, and overlap outcomes.
func collinearIntersect(s, t Segment) SegmentIntersection {
	sOnT := onSegment(t.A, t.B, s.A) || onSegment(t.A, t.B, s.B)
	tOnS := onSegment(s.A, s.B, t.A) || onSegment(s.A, s.B, t.B)
	if !sOnT && !tOnS {
		return SegmentIntersection{Kind: Disjoint}
	}

	// Project onto the dominant axis to order the four points along the
	// shared line, then take the overlapping middle span.
	pts := []Point{s.A, s.B, t.A, t.B}
	dx := s.B.X - s.A.X
	dy := s.B.Y - s.A.Y
	var key func(Point) float64
	if dx*dx >= dy*dy {
		key = func(p Point) float64 { return p.X }
	} else {
		key = func(p Point) float64 { return p.Y }
	}

	lo, hi := key(s.A), key(s.B)
	if lo > hi {
		lo, hi = hi, lo
	}
	tlo, thi := key(t.A), key(t.B)
	if tlo > thi {
		tlo, thi = thi, tlo
	}

	overlapLo := max(lo, tlo)
	overlapHi := min(hi, thi)
	if overlapLo > overlapHi {
		return SegmentIntersection{Kind: Disjoint}
	}

	var a, b Point
	for _, p := range pts {
		if key(p) == overlapLo {
			a = p
		}
		if key(p) == overlapHi {
			b = p
		}
	}
	if a.Equal(b) {
		return SegmentIntersection{Kind: Touch, Point: a}
	}
	return SegmentIntersection{Kind: Overlap, Overlap: Segment{A: a, B: b}}
}

package geom

// Orientation is the sign of the cross product (q-p) x (r-p).
type Orientation int

const (
	Collinear       Orientation = 0
	Clockwise       Orientation = -1
	CounterClockwise Orientation = 1
)

// Orient computes the orientation of the triple (p, q, r). The computation
// order (subtracting p's coordinates before multiplying, rather than
// expanding the determinant directly) keeps the intermediate products
// smaller in magnitude, reducing cancellation error for points close
// together relative to their distance from the origin.
//
// orient(p,q,r) == -orient(q,p,r) holds exactly, since swapping p and q
// negates both cross-product terms.
func Orient(p, q, r Point) Orientation {
	qx, qy := q.X-p.X, q.Y-p.Y
	rx, ry := r.X-p.X, r.Y-p.Y
	cross := qx*ry - qy*rx
	switch {
	case cross > 0:
		return CounterClockwise
	case cross < 0:
		return Clockwise
	default:
		return Collinear
	}
}

// SignedArea2 computes twice the signed area of the polygon described by a
// closed ring (first point need not repeat as the last; the shoelace sum
// wraps around automatically). Positive means counter-clockwise.
func SignedArea2(ring []Point) float64 {
	n := len(ring)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
	}
	return sum
}

// Centroid computes the area-weighted centroid of a closed ring, falling
// back to the ring's first vertex when the signed area is too close to zero
// to divide by (e.g. a self-touching or degenerate ring).
func Centroid(ring []Point) Point {
	n := len(ring)
	if n == 0 {
		return Point{}
	}
	area2 := SignedArea2(ring)
	if area2 == 0 {
		return ring[0]
	}
	var cx, cy float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
		cx += (ring[i].X + ring[j].X) * cross
		cy += (ring[i].Y + ring[j].Y) * cross
	}
	factor := 1 / (3 * area2)
	c := Point{X: cx * factor, Y: cy * factor}
	if !c.Finite() {
		return ring[0]
	}
	return c
}

// onSegment reports whether point r, known to be collinear with segment
// p-q, lies within p and q's bounding box (i.e. actually on the segment).
func onSegment(p, q, r Point) bool {
	return r.X >= min(p.X, q.X) && r.X <= max(p.X, q.X) &&
		r.Y >= min(p.Y, q.Y) && r.Y <= max(p.Y, q.Y)
}

func min(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// Package geom provides the geometric primitives and predicates the
// polygonizer is built on: points, segments, orientation, segment
// intersection, and point-in-ring testing.
package geom

import "math"

// Point is an ordered pair of finite 64-bit floats.
type Point struct {
	X, Y float64
}

// Segment is an ordered pair of distinct points.
type Segment struct {
	A, B Point
}

// Finite reports whether both coordinates of p are finite (not NaN, not
// infinite).
func (p Point) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// Equal compares two points for exact bitwise coordinate equality. This is
// never used for node identity inside the planar graph (which compares
// GridKeys instead); it is useful for tests and for detecting degenerate,
// already-coincident input.
func (p Point) Equal(o Point) bool {
	return p.X == o.X && p.Y == o.Y
}

// Sub returns p - o as a vector.
func (p Point) Sub(o Point) Point {
	return Point{p.X - o.X, p.Y - o.Y}
}

// GridKey is a pair of 64-bit signed integers obtained by rounding a
// coordinate to a fixed-size grid. Node identity inside the planar graph is
// always GridKey equality, never float equality.
type GridKey struct {
	X, Y int64
}

// Snap rounds p to the nearest point on a grid of the given cell size and
// returns both the snapped coordinate and its GridKey.
func Snap(p Point, gridSize float64) (Point, GridKey) {
	kx := int64(math.Round(p.X / gridSize))
	ky := int64(math.Round(p.Y / gridSize))
	return Point{X: float64(kx) * gridSize, Y: float64(ky) * gridSize}, GridKey{X: kx, Y: ky}
}

// SnapKey is Snap without materializing the snapped coordinate, for callers
// that only need identity.
func SnapKey(p Point, gridSize float64) GridKey {
	return GridKey{
		X: int64(math.Round(p.X / gridSize)),
		Y: int64(math.Round(p.Y / gridSize)),
	}
}

// Less orders points lexicographically on (X, Y), used to pick the lesser
// endpoint of a segment for normalization and for deterministic sorting of
// split points.
func (p Point) Less(o Point) bool {
	if p.X != o.X {
		return p.X < o.X
	}
	return p.Y < o.Y
}

// Bearing returns the angle (radians, via math.Atan2) from p to o, used for
// angular ordering of outgoing half-edges around a node.
func (p Point) Bearing(o Point) float64 {
	return math.Atan2(o.Y-p.Y, o.X-p.X)
}

// DistSq returns the squared Euclidean distance between p and o.
func (p Point) DistSq(o Point) float64 {
	dx := p.X - o.X
	dy := p.Y - o.Y
	return dx*dx + dy*dy
}

// Normalized returns the segment with its lesser endpoint (lexicographic on
// (X, Y)) first, used to canonicalize sub-segments before dedup.
func (s Segment) Normalized() Segment {
	if s.B.Less(s.A) {
		return Segment{A: s.B, B: s.A}
	}
	return s
}

// Degenerate reports whether the segment's endpoints are exactly equal.
func (s Segment) Degenerate() bool {
	return s.A.Equal(s.B)
}

// BBox is an axis-aligned bounding box.
type BBox struct {
	MinX, MinY, MaxX, MaxY float64
}

// Union returns the smallest BBox containing both b and o.
func (b BBox) Union(o BBox) BBox {
	return BBox{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// Contains reports whether p lies within b, inclusive of the boundary.
func (b BBox) Contains(p Point) bool {
	return p.X >= b.MinX && p.X <= b.MaxX && p.Y >= b.MinY && p.Y <= b.MaxY
}

// Area returns the box's area (zero for a degenerate box).
func (b BBox) Area() float64 {
	return (b.MaxX - b.MinX) * (b.MaxY - b.MinY)
}

// BBoxOf computes the bounding box of a sequence of points. Panics if pts is
// empty; callers are expected to guard against empty rings upstream.
func BBoxOf(pts []Point) BBox {
	b := BBox{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		b.MinX = math.Min(b.MinX, p.X)
		b.MinY = math.Min(b.MinY, p.Y)
		b.MaxX = math.Max(b.MaxX, p.X)
		b.MaxY = math.Max(b.MaxY, p.Y)
	}
	return b
}

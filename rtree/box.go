package rtree

import "math"

// Box is an axis-aligned bounding box used as the key type for the RTree.
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// NewBox builds a Box from two corner points, normalising min/max order.
func NewBox(x1, y1, x2, y2 float64) Box {
	if x1 > x2 {
		x1, x2 = x2, x1
	}
	if y1 > y2 {
		y1, y2 = y2, y1
	}
	return Box{MinX: x1, MinY: y1, MaxX: x2, MaxY: y2}
}

func combine(a, b Box) Box {
	return Box{
		MinX: math.Min(a.MinX, b.MinX),
		MinY: math.Min(a.MinY, b.MinY),
		MaxX: math.Max(a.MaxX, b.MaxX),
		MaxY: math.Max(a.MaxY, b.MaxY),
	}
}

func overlap(a, b Box) bool {
	return a.MinX <= b.MaxX && b.MinX <= a.MaxX &&
		a.MinY <= b.MaxY && b.MinY <= a.MaxY
}

func area(b Box) float64 {
	return (b.MaxX - b.MinX) * (b.MaxY - b.MinY)
}

// enlargement is the increase in area of base that would result from
// combining it with box.
func enlargement(box, base Box) float64 {
	return area(combine(box, base)) - area(base)
}

func calculateBound(n *node) Box {
	bound := n.entries[0].box
	for i := 1; i < n.numEntries; i++ {
		bound = combine(bound, n.entries[i].box)
	}
	return bound
}

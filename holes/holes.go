// Package holes assigns hole rings to their smallest enclosing shell ring,
// using an R-tree of shell bounding boxes above a size threshold and a
// linear scan below it.
package holes

import (
	"math"

	"github.com/rubenv/polygonize/geom"
	"github.com/rubenv/polygonize/rtree"
)

// Shell is a candidate outer boundary ring.
type Shell struct {
	Points []geom.Point // closed ring, first point repeats as last is not required
	BBox   geom.BBox
}

// Hole is a candidate inner boundary ring.
type Hole struct {
	Points []geom.Point
	BBox   geom.BBox
}

// Assignment is the outcome of assigning holes to shells.
type Assignment struct {
	// ShellHoles[i] holds the point rings of every hole assigned to
	// shells[i].
	ShellHoles [][][]geom.Point
	// Unassigned holes: no shell larger in area than the hole contains its
	// centroid probe.
	Unassigned []Hole
}

// Assign partitions holes among shells, giving each hole to the smallest
// (by unsigned area) shell that contains its centroid probe (a probe on the
// shell's boundary counts as contained) and is
// itself larger in area than the hole. minShellsForIndex controls whether an
// R-tree is built over shell bounding boxes (worthwhile only once there are
// enough shells to amortize the construction cost) or whether every hole is
// matched via a linear scan over shells instead.
func Assign(shells []Shell, holesIn []Hole, minShellsForIndex int) Assignment {
	out := Assignment{ShellHoles: make([][][]geom.Point, len(shells))}

	var tree *rtree.RTree
	if len(shells) >= minShellsForIndex {
		tree = &rtree.RTree{}
		for i, s := range shells {
			tree.Insert(boxOf(s.BBox), i)
		}
	}

	for _, h := range holesIn {
		probe := geom.Centroid(h.Points)

		var candidates []int
		if tree != nil {
			box := boxOf(h.BBox)
			_ = tree.RangeSearch(box, func(idx int) error {
				candidates = append(candidates, idx)
				return nil
			})
		} else {
			candidates = make([]int, len(shells))
			for i := range shells {
				candidates[i] = i
			}
		}

		holeArea := math.Abs(geom.SignedArea2(h.Points)) / 2

		bestIdx := -1
		bestArea := math.MaxFloat64
		for _, idx := range candidates {
			shell := shells[idx]
			if !geom.PointInRing(probe, shell.Points) {
				continue
			}
			area := math.Abs(geom.SignedArea2(shell.Points)) / 2
			if area > holeArea+1e-6 && area < bestArea {
				bestArea = area
				bestIdx = idx
			}
		}

		if bestIdx < 0 {
			out.Unassigned = append(out.Unassigned, h)
			continue
		}
		out.ShellHoles[bestIdx] = append(out.ShellHoles[bestIdx], h.Points)
	}

	return out
}

func boxOf(b geom.BBox) rtree.Box {
	return rtree.Box{MinX: b.MinX, MinY: b.MinY, MaxX: b.MaxX, MaxY: b.MaxY}
}

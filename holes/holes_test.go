package holes

import (
	"testing"

	"github.com/rubenv/polygonize/geom"
)

func square(minX, minY, maxX, maxY float64, ccw bool) []geom.Point {
	if ccw {
		return []geom.Point{{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}}
	}
	return []geom.Point{{minX, minY}, {minX, maxY}, {maxX, maxY}, {maxX, minY}}
}

func TestAssignPicksSmallestEnclosingShell(t *testing.T) {
	outer := Shell{Points: square(0, 0, 10, 10, true), BBox: geom.BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}}
	inner := Shell{Points: square(2, 2, 6, 6, true), BBox: geom.BBox{MinX: 2, MinY: 2, MaxX: 6, MaxY: 6}}
	hole := Hole{Points: square(3, 3, 4, 4, false), BBox: geom.BBox{MinX: 3, MinY: 3, MaxX: 4, MaxY: 4}}

	got := Assign([]Shell{outer, inner}, []Hole{hole}, 50)
	if len(got.Unassigned) != 0 {
		t.Fatalf("expected the hole to be assigned, got unassigned %v", got.Unassigned)
	}
	if len(got.ShellHoles[0]) != 0 {
		t.Fatalf("expected the outer shell to receive no holes, got %v", got.ShellHoles[0])
	}
	if len(got.ShellHoles[1]) != 1 {
		t.Fatalf("expected the inner (smallest enclosing) shell to receive the hole, got %v", got.ShellHoles)
	}
}

func TestAssignLeavesUncontainedHolesUnassigned(t *testing.T) {
	shell := Shell{Points: square(0, 0, 10, 10, true), BBox: geom.BBox{MinX: 0, MinY: 0, MaxX: 10, MaxY: 10}}
	hole := Hole{Points: square(20, 20, 21, 21, false), BBox: geom.BBox{MinX: 20, MinY: 20, MaxX: 21, MaxY: 21}}

	got := Assign([]Shell{shell}, []Hole{hole}, 50)
	if len(got.Unassigned) != 1 {
		t.Fatalf("expected the out-of-bounds hole to be unassigned, got %v", got)
	}
}

func TestAssignUsesRTreePathAboveThreshold(t *testing.T) {
	var shells []Shell
	for i := 0; i < 60; i++ {
		f := float64(i) * 100
		shells = append(shells, Shell{
			Points: square(f, f, f+10, f+10, true),
			BBox:   geom.BBox{MinX: f, MinY: f, MaxX: f + 10, MaxY: f + 10},
		})
	}
	hole := Hole{Points: square(102, 102, 103, 103, false), BBox: geom.BBox{MinX: 102, MinY: 102, MaxX: 103, MaxY: 103}}

	got := Assign(shells, []Hole{hole}, 50)
	if len(got.Unassigned) != 0 {
		t.Fatalf("expected hole to be assigned via the R-tree path, got unassigned")
	}
	if len(got.ShellHoles[1]) != 1 {
		t.Fatalf("expected shell 1 (covering 100..110) to receive the hole")
	}
}

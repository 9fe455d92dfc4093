// Package polygonize reconstructs valid, topologically correct polygons
// from an unstructured collection of input line segments: dirty,
// self-intersecting, partially noded LineStrings in, minimal polygonal
// faces with correctly assigned holes out.
package polygonize

import (
	"math"

	"github.com/rubenv/polygonize/geom"
	"github.com/rubenv/polygonize/graph"
	"github.com/rubenv/polygonize/holes"
	"github.com/rubenv/polygonize/noding"
	"github.com/rubenv/polygonize/simplify"
)

// defaultDegenerateAreaMultiplier gives hole/ring degeneracy a tolerance
// that scales with the configured snap grid, rather than a single fixed
// epsilon.
const defaultDegenerateAreaMultiplier = 4

// Polygonizer accumulates input geometry and reconstructs polygons from it.
// Configuration fields are read directly while Polygonize runs, so they are
// safe to change between runs but must not be mutated concurrently with a
// running Polygonize call.
type Polygonizer struct {
	// NodeInput enables Iterated Snap Rounding preprocessing before graph
	// construction. Dirty, unnoded input needs this; already-noded input
	// (e.g. re-polygonizing a prior result) does not.
	NodeInput bool
	// SnapGridSize is the grid cell size used both by ISR (when enabled)
	// and by node identity in the planar graph.
	SnapGridSize float64
	// MaxIterations bounds ISR's iterate-until-fixed-point loop.
	MaxIterations int
	// MinShellsForIndex is the shell count at or above which hole assignment
	// builds an R-tree instead of scanning shells linearly.
	MinShellsForIndex int

	inputs      []Geometry
	dirty       bool
	diagnostics []Diagnostic
}

// New returns a Polygonizer with the documented defaults.
func New() *Polygonizer {
	return &Polygonizer{
		SnapGridSize:      1e-10,
		MaxIterations:     20,
		MinShellsForIndex: 50,
	}
}

// AddGeometry queues geom for the next Polygonize call. It rejects
// structurally invalid input immediately: LineStrings with fewer than two
// distinct points, and any NaN/infinite coordinate.
func (p *Polygonizer) AddGeometry(g Geometry) error {
	if err := validateGeometry(g); err != nil {
		return err
	}
	p.inputs = append(p.inputs, g)
	p.dirty = true
	return nil
}

func validateGeometry(g Geometry) error {
	switch v := g.(type) {
	case LineString:
		return validateLineString(v)
	case MultiLineString:
		for _, ls := range v {
			if err := validateLineString(ls); err != nil {
				return err
			}
		}
	case Polygon:
		if err := validateRing(v.Shell); err != nil {
			return err
		}
		for _, h := range v.Holes {
			if err := validateRing(h); err != nil {
				return err
			}
		}
	case MultiPolygon:
		for _, poly := range v {
			if err := validateGeometry(poly); err != nil {
				return err
			}
		}
	case GeometryCollection:
		for _, child := range v {
			if err := validateGeometry(child); err != nil {
				return err
			}
		}
	default:
		return newError(InvalidInput, "unsupported geometry type %T", g)
	}
	return nil
}

func validateLineString(ls LineString) error {
	if len(ls) < 2 {
		return newError(InvalidInput, "LineString has fewer than two points")
	}
	if err := validatePoints(ls); err != nil {
		return err
	}
	for _, pt := range ls[1:] {
		if !pt.Equal(ls[0]) {
			return nil
		}
	}
	return newError(InvalidInput, "LineString has fewer than two distinct points")
}

func validateRing(r Ring) error {
	if len(r) < 3 {
		return newError(InvalidInput, "ring has fewer than three points")
	}
	return validatePoints(r)
}

func validatePoints(pts []Point) error {
	for _, pt := range pts {
		if !pt.Finite() {
			return newError(InvalidInput, "coordinate (%v, %v) is NaN or infinite", pt.X, pt.Y)
		}
	}
	return nil
}

// extractLines flattens geom into its constituent LineStrings, decomposing
// polygonal input into its exterior and interior rings, exactly as
// AddGeometry's contract promises: mixed GeoJSON input, including
// already-polygonal data that needs re-noding, is accepted without a
// separate code path.
func extractLines(g Geometry, out *[]LineString) {
	switch v := g.(type) {
	case LineString:
		*out = append(*out, v)
	case MultiLineString:
		*out = append(*out, v...)
	case Polygon:
		*out = append(*out, LineString(v.Shell))
		for _, h := range v.Holes {
			*out = append(*out, LineString(h))
		}
	case MultiPolygon:
		for _, poly := range v {
			extractLines(poly, out)
		}
	case GeometryCollection:
		for _, child := range v {
			extractLines(child, out)
		}
	}
}

func toPointChains(lineStrings []LineString) [][]geom.Point {
	out := make([][]geom.Point, len(lineStrings))
	for i, ls := range lineStrings {
		out[i] = append([]geom.Point(nil), ls...)
	}
	return out
}

func ringToSegments(ls LineString) []geom.Segment {
	segs := make([]geom.Segment, 0, len(ls))
	for i := 0; i+1 < len(ls); i++ {
		if ls[i].Equal(ls[i+1]) {
			continue
		}
		segs = append(segs, geom.Segment{A: ls[i], B: ls[i+1]})
	}
	return segs
}

func (p *Polygonizer) degenerateAreaThreshold() float64 {
	g := p.SnapGridSize
	return defaultDegenerateAreaMultiplier * g * g
}

// Polygonize runs the full pipeline over the accumulated input and returns
// the reconstructed polygons. It consumes the accumulated input (clearing
// it) but leaves configuration intact, so a subsequent AddGeometry +
// Polygonize call produces an independent result.
func (p *Polygonizer) Polygonize() ([]Polygon, error) {
	p.diagnostics = nil

	if !p.dirty && len(p.inputs) == 0 {
		return nil, newError(EmptyInput, "no geometry was added")
	}

	var lineStrings []LineString
	for _, g := range p.inputs {
		extractLines(g, &lineStrings)
	}
	p.inputs = nil
	p.dirty = false

	if len(lineStrings) == 0 {
		return nil, newError(EmptyInput, "no geometry was added")
	}

	merged := simplify.Reduce(toPointChains(lineStrings))

	var segments []geom.Segment
	for _, pts := range merged {
		segments = append(segments, ringToSegments(LineString(pts))...)
	}

	if p.NodeInput {
		noder := noding.New(p.SnapGridSize, p.MaxIterations)
		result := noder.Node(segments)
		segments = result.Segments
		if !result.Converged {
			p.diagnostics = append(p.diagnostics, Diagnostic{
				Kind: SnapNonConvergence,
				Msg:  "iterated snap rounding did not converge within MaxIterations",
			})
		}
	}

	g := graph.New(p.SnapGridSize)
	g.BulkLoad(segments)
	g.SortEdges()
	g.PruneDangles()

	rings, invalidWalks, predicateFailures := g.ExtractRings()
	for i := 0; i < invalidWalks; i++ {
		p.diagnostics = append(p.diagnostics, Diagnostic{
			Kind: DiscardedInvalidWalk,
			Msg:  "ring walk did not close; the underlying half-edges were discarded",
		})
	}
	if predicateFailures > 0 {
		return nil, newError(PredicateFailure, "%d ring walk(s) closed over a repeated undirected edge or a degenerate non-self-loop length-1 ring; dangle pruning should have removed every such edge", predicateFailures)
	}

	degenerateArea2 := 2 * p.degenerateAreaThreshold()

	var shellRings, holeRings []graph.Ring
	for _, r := range rings {
		if math.Abs(r.SignedArea2) < degenerateArea2 {
			p.diagnostics = append(p.diagnostics, Diagnostic{Kind: DiscardedDegenerateRing, Msg: "ring area below threshold"})
			continue
		}
		if r.SignedArea2 > 0 {
			shellRings = append(shellRings, r)
		} else {
			holeRings = append(holeRings, r)
		}
	}

	shellRings = promoteOrphanedHoles(shellRings, holeRings)

	if len(shellRings) == 0 {
		if len(rings) == 0 {
			return nil, nil
		}
		return nil, newError(DegenerateGraph, "rings were extracted but none remained as a shell after classification")
	}

	shells := make([]holes.Shell, len(shellRings))
	for i, r := range shellRings {
		shells[i] = holes.Shell{Points: r.Points[:len(r.Points)-1], BBox: r.BBox}
	}
	holeInputs := make([]holes.Hole, len(holeRings))
	for i, r := range holeRings {
		holeInputs[i] = holes.Hole{Points: r.Points[:len(r.Points)-1], BBox: r.BBox}
	}

	assignment := holes.Assign(shells, holeInputs, p.MinShellsForIndex)
	for range assignment.Unassigned {
		p.diagnostics = append(p.diagnostics, Diagnostic{Kind: DiscardedHole, Msg: "no shell larger than the hole contained its centroid"})
	}

	var result []Polygon
	for i, shell := range shells {
		holeRingsForShell := make([]Ring, len(assignment.ShellHoles[i]))
		for j, hr := range assignment.ShellHoles[i] {
			holeRingsForShell[j] = Ring(hr)
		}

		shellArea := math.Abs(geom.SignedArea2(shell.Points)) / 2
		holeArea := 0.0
		for _, hr := range assignment.ShellHoles[i] {
			holeArea += math.Abs(geom.SignedArea2(hr)) / 2
		}
		if shellArea-holeArea < p.degenerateAreaThreshold() {
			p.diagnostics = append(p.diagnostics, Diagnostic{Kind: DiscardedDegenerateRing, Msg: "shell collapsed after subtracting holes"})
			continue
		}

		result = append(result, Polygon{Shell: Ring(shell.Points), Holes: holeRingsForShell})
	}

	return result, nil
}

// promoteOrphanedHoles promotes a clockwise-wound ring to a shell (with
// reversed winding) when no shell candidate shares its bounding box and
// (within tolerance) its unsigned area. This happens for an isolated
// polygon that is the sole face in its connected component, where the
// angular walk's single ring may come out clockwise depending on its
// starting edge.
func promoteOrphanedHoles(shells, candidateHoles []graph.Ring) []graph.Ring {
	for _, h := range candidateHoles {
		hArea := math.Abs(h.SignedArea2)
		hasTwin := false
		for _, s := range shells {
			if math.Abs(math.Abs(s.SignedArea2)-hArea) < 1e-6*hArea+1e-9 && s.BBox == h.BBox {
				hasTwin = true
				break
			}
		}
		if !hasTwin {
			shells = append(shells, reverseRing(h))
		}
	}
	return shells
}

func reverseRing(r graph.Ring) graph.Ring {
	pts := make([]geom.Point, len(r.Points))
	for i, p := range r.Points {
		pts[len(pts)-1-i] = p
	}
	return graph.Ring{
		HalfEdges:   r.HalfEdges,
		Points:      pts,
		SignedArea2: -r.SignedArea2,
		BBox:        r.BBox,
	}
}

// Diagnostics returns the soft diagnostic events (non-convergence,
// discarded holes, discarded degenerate rings) recorded during the most
// recent Polygonize call.
func (p *Polygonizer) Diagnostics() []Diagnostic {
	return p.diagnostics
}

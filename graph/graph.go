// Package graph implements the polygonizer's planar graph: an arena of
// unique, grid-snapped nodes and directed half-edges, bulk-loaded from noded
// segments, with per-node angular ordering and dangle pruning feeding the
// cycle extractor.
package graph

import (
	"sort"

	"github.com/rubenv/polygonize/geom"
)

// NodeID, EdgeID and DirEdgeID are dense arena indices, never pointers.
type (
	NodeID    int32
	EdgeID    int32
	DirEdgeID int32
)

const noDirEdge DirEdgeID = -1

// DirectedEdge is one direction of an undirected Edge.
type DirectedEdge struct {
	Origin, Dest NodeID
	Edge         EdgeID
	// Twin is the reverse half-edge. Half-edges are allocated in pairs, so
	// Twin(h) always equals h^1; the field exists for clarity at call
	// sites and is kept in sync with that invariant.
	Twin DirEdgeID
	// Angle is the bearing from Origin to Dest, precomputed for angular
	// sorting.
	Angle float64

	Marked  bool
	Visited bool

	// NextInRing is set by the cycle extractor; -1 until then.
	NextInRing DirEdgeID
	// RingID is the index of the ring this half-edge belongs to after
	// extraction, or -1 if it was pruned.
	RingID int
}

// Edge is an undirected edge owning a pair of twin half-edges.
type Edge struct {
	DirEdges [2]DirEdgeID
	Marked   bool
}

// Twin returns the reverse of half-edge h. Half-edges are always allocated
// in twin pairs, so this is a branchless XOR.
func Twin(h DirEdgeID) DirEdgeID {
	return h ^ 1
}

// Graph is the planar graph: nodes stored as parallel coordinate slices
// (structure of arrays), edges and half-edges stored in flat arenas.
type Graph struct {
	NodeX, NodeY []float64
	NodeOutgoing [][]DirEdgeID
	NodeDegree   []int
	NodeMarked   []bool

	Edges    []Edge
	DirEdges []DirectedEdge

	// nodeMap is used only by the incremental AddLineString path; the bulk
	// path never populates or consults it.
	nodeMap map[geom.GridKey]NodeID

	gridSize float64
}

// New returns an empty graph that snaps incoming coordinates to gridSize
// for node identity.
func New(gridSize float64) *Graph {
	return &Graph{gridSize: gridSize}
}

// NumNodes returns the number of nodes in the arena.
func (g *Graph) NumNodes() int { return len(g.NodeX) }

// NodePoint returns the coordinate of node id.
func (g *Graph) NodePoint(id NodeID) geom.Point {
	return geom.Point{X: g.NodeX[id], Y: g.NodeY[id]}
}

func (g *Graph) addNodeSlot(p geom.Point) NodeID {
	id := NodeID(len(g.NodeX))
	g.NodeX = append(g.NodeX, p.X)
	g.NodeY = append(g.NodeY, p.Y)
	g.NodeOutgoing = append(g.NodeOutgoing, nil)
	g.NodeDegree = append(g.NodeDegree, 0)
	g.NodeMarked = append(g.NodeMarked, false)
	return id
}

// AddNode returns the node for p, snapping it to the grid and creating a
// new node if one doesn't already exist at that grid cell. Used only by the
// incremental path (AddLineString); the bulk-load path never calls this.
func (g *Graph) AddNode(p geom.Point) NodeID {
	if g.nodeMap == nil {
		g.nodeMap = make(map[geom.GridKey]NodeID)
	}
	snapped, key := geom.Snap(p, g.gridSize)
	if id, ok := g.nodeMap[key]; ok {
		return id
	}
	id := g.addNodeSlot(snapped)
	g.nodeMap[key] = id
	return id
}

func (g *Graph) addEdge(u, v NodeID) {
	edgeIdx := EdgeID(len(g.Edges))
	deUV := DirEdgeID(len(g.DirEdges))
	deVU := deUV + 1

	pu, pv := g.NodePoint(u), g.NodePoint(v)
	angleUV := pu.Bearing(pv)
	angleVU := pv.Bearing(pu)

	g.DirEdges = append(g.DirEdges,
		DirectedEdge{Origin: u, Dest: v, Edge: edgeIdx, Twin: deVU, Angle: angleUV, NextInRing: noDirEdge, RingID: -1},
		DirectedEdge{Origin: v, Dest: u, Edge: edgeIdx, Twin: deUV, Angle: angleVU, NextInRing: noDirEdge, RingID: -1},
	)
	g.Edges = append(g.Edges, Edge{DirEdges: [2]DirEdgeID{deUV, deVU}})

	g.NodeOutgoing[u] = append(g.NodeOutgoing[u], deUV)
	g.NodeDegree[u]++
	g.NodeOutgoing[v] = append(g.NodeOutgoing[v], deVU)
	g.NodeDegree[v]++
}

// AddLineString incrementally adds every consecutive pair of points as an
// edge, using the hash-map dedup path, for callers that stream geometry one
// LineString at a time; Polygonizer itself always uses BulkLoad.
func (g *Graph) AddLineString(pts []geom.Point) {
	for i := 0; i+1 < len(pts); i++ {
		p0, p1 := pts[i], pts[i+1]
		if geom.SnapKey(p0, g.gridSize) == geom.SnapKey(p1, g.gridSize) {
			continue
		}
		u := g.AddNode(p0)
		v := g.AddNode(p1)
		g.addEdge(u, v)
	}
}

// zOrderEntry pairs a snapped point with its Morton code, used purely to
// sort endpoints into spatially local runs before the identity-assigning
// dedup pass; it plays no part in node identity itself.
type zOrderEntry struct {
	z    uint64
	pt   geom.Point
	key  geom.GridKey
}

// BulkLoad builds the graph from a flat list of noded segments in one pass:
// collect every endpoint, sort by (Z-order, x, y) for locality, dedup by
// exact coordinate equality to assign dense node IDs, then build edges with
// pre-reserved adjacency slices. Segment endpoints are resolved to node IDs
// through a GridKey-to-NodeID map built once from the deduplicated
// endpoints; the incremental path's nodeMap is not used.
func (g *Graph) BulkLoad(segments []geom.Segment) {
	if len(segments) == 0 {
		return
	}

	entries := make([]zOrderEntry, 0, len(segments)*2)
	for _, s := range segments {
		a, ka := geom.Snap(s.A, g.gridSize)
		b, kb := geom.Snap(s.B, g.gridSize)
		entries = append(entries,
			zOrderEntry{z: zOrderIndex(ka), pt: a, key: ka},
			zOrderEntry{z: zOrderIndex(kb), pt: b, key: kb},
		)
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.z != b.z {
			return a.z < b.z
		}
		if a.pt.X != b.pt.X {
			return a.pt.X < b.pt.X
		}
		return a.pt.Y < b.pt.Y
	})

	deduped := entries[:0:0]
	for i, e := range entries {
		if i == 0 || e.pt != entries[i-1].pt {
			deduped = append(deduped, e)
		}
	}
	entries = deduped

	startNode := len(g.NodeX)
	for _, e := range entries {
		g.addNodeSlot(e.pt)
	}

	nodeIDByKey := make(map[geom.GridKey]NodeID, len(entries))
	for i, e := range entries {
		nodeIDByKey[e.key] = NodeID(startNode + i)
	}

	type validEdge struct{ u, v NodeID }
	valid := make([]validEdge, 0, len(segments))
	for _, s := range segments {
		_, ka := geom.Snap(s.A, g.gridSize)
		_, kb := geom.Snap(s.B, g.gridSize)
		if ka == kb {
			continue
		}
		u, uok := nodeIDByKey[ka]
		v, vok := nodeIDByKey[kb]
		if !uok || !vok {
			continue
		}
		valid = append(valid, validEdge{u, v})
	}

	// Duplicate undirected edges (same snapped endpoints in either order)
	// must collapse to a single pair of half-edges: normalize each pair so
	// the lesser node comes first, then sort and dedup, the same idiom
	// noding.normalizeAndDedup uses on segments.
	for i, e := range valid {
		if e.v < e.u {
			valid[i] = validEdge{e.v, e.u}
		}
	}
	sort.Slice(valid, func(i, j int) bool {
		a, b := valid[i], valid[j]
		if a.u != b.u {
			return a.u < b.u
		}
		return a.v < b.v
	})
	deduped2 := valid[:0:0]
	for i, e := range valid {
		if i == 0 || e != valid[i-1] {
			deduped2 = append(deduped2, e)
		}
	}
	valid = deduped2

	degrees := make([]int, len(g.NodeX))
	for _, e := range valid {
		degrees[e.u]++
		degrees[e.v]++
	}

	for i, d := range degrees {
		if d > 0 && cap(g.NodeOutgoing[i]) < d {
			g.NodeOutgoing[i] = make([]DirEdgeID, 0, d)
		}
	}

	g.Edges = append(g.Edges, make([]Edge, 0, len(valid))...)
	g.DirEdges = append(g.DirEdges, make([]DirectedEdge, 0, len(valid)*2)...)
	for _, e := range valid {
		g.addEdge(e.u, e.v)
	}
}

// SortEdges sorts each node's outgoing half-edges by bearing, ascending.
// Distinct destination nodes on a non-degenerate grid never share a
// bearing, so the sort's tie-breaking never actually triggers in practice;
// where it would, the stable sort preserves bulk-load edge order, keeping
// output deterministic.
func (g *Graph) SortEdges() {
	for _, adj := range g.NodeOutgoing {
		sort.SliceStable(adj, func(i, j int) bool {
			return g.DirEdges[adj[i]].Angle < g.DirEdges[adj[j]].Angle
		})
	}
}

// zOrderIndex interleaves the bits of a GridKey's two coordinates (Morton
// code) for a cache-locality sort key; it is never used for node identity.
func zOrderIndex(k geom.GridKey) uint64 {
	return interleave(uint32(k.X)) | (interleave(uint32(k.Y)) << 1)
}

func interleave(v uint32) uint64 {
	x := uint64(v)
	x = (x | (x << 16)) & 0x0000FFFF0000FFFF
	x = (x | (x << 8)) & 0x00FF00FF00FF00FF
	x = (x | (x << 4)) & 0x0F0F0F0F0F0F0F0F
	x = (x | (x << 2)) & 0x3333333333333333
	x = (x | (x << 1)) & 0x5555555555555555
	return x
}

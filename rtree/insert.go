package rtree

import (
	"math"
	"math/bits"
)

// Insert adds a new (box, recordID) pair to the tree, splitting nodes as
// needed to keep entry counts within [minChildren, maxChildren].
func (t *RTree) Insert(box Box, recordID int) {
	if t.root == 0 {
		t.nodes = append(t.nodes, node{isLeaf: true})
		t.root = len(t.nodes)
	}

	level := t.nodeDepth(t.root) - 1
	leafIdx := t.chooseBestNode(box, level)

	t.appendRecord(leafIdx, box, recordID)
	t.adjustBoxesUpwards(leafIdx, box)

	if t.node(leafIdx).numEntries <= maxChildren {
		return
	}

	newNodeIdx := t.splitNode(leafIdx)
	root1, root2 := t.adjustTree(leafIdx, newNodeIdx)
	if root2 != 0 {
		t.joinRoots(root1, root2)
	}
}

func (t *RTree) adjustBoxesUpwards(nodeIdx int, box Box) {
	for nodeIdx != t.root {
		n := t.node(nodeIdx)
		parent := t.node(n.parent)
		for i := 0; i < parent.numEntries; i++ {
			e := &parent.entries[i]
			if e.data == nodeIdx {
				e.box = combine(e.box, box)
			}
		}
		nodeIdx = n.parent
	}
}

func (t *RTree) joinRoots(root1Idx, root2Idx int) {
	t.nodes = append(t.nodes, node{
		entries: [1 + maxChildren]entry{
			{box: calculateBound(t.node(root1Idx)), data: root1Idx},
			{box: calculateBound(t.node(root2Idx)), data: root2Idx},
		},
		numEntries: 2,
		parent:     0,
		isLeaf:     false,
	})
	newRootIdx := len(t.nodes)
	t.node(root1Idx).parent = newRootIdx
	t.node(root2Idx).parent = newRootIdx
	t.root = newRootIdx
}

func (t *RTree) adjustTree(leafIdx, newNodeIdx int) (int, int) {
	for {
		if leafIdx == t.root {
			return leafIdx, newNodeIdx
		}
		leaf := t.node(leafIdx)
		parent := t.node(leaf.parent)
		for i := 0; i < parent.numEntries; i++ {
			if parent.entries[i].data == leafIdx {
				parent.entries[i].box = calculateBound(leaf)
				break
			}
		}

		var splitParentIdx int
		leafParentIdx := leaf.parent
		if newNodeIdx != 0 {
			t.appendChild(leaf.parent, calculateBound(t.node(newNodeIdx)), newNodeIdx)
			if parent.numEntries > maxChildren {
				splitParentIdx = t.splitNode(leaf.parent)
			}
		}

		leafIdx, newNodeIdx = leafParentIdx, splitParentIdx
	}
}

// splitNode splits the node at nodeIdx into two, using exhaustive bitmask
// enumeration to find the partition that minimises combined area. The
// original node keeps the 0-bits of the winning partition; a new node is
// created for the 1-bits, and its index is returned.
func (t *RTree) splitNode(nodeIdx int) int {
	n := t.node(nodeIdx)

	minSplit := uint64(1)
	maxSplit := uint64((1 << (n.numEntries - 1)) - 1)

	bestArea := math.Inf(+1)
	var bestSplit uint64
	for split := minSplit; split <= maxSplit; split++ {
		if ones := bits.OnesCount64(split); ones < minChildren || (n.numEntries-ones) < minChildren {
			continue
		}
		var boxA, boxB Box
		var hasA, hasB bool
		for i := 0; i < n.numEntries; i++ {
			entryBox := n.entries[i].box
			if split&(1<<i) == 0 {
				if hasA {
					boxA = combine(boxA, entryBox)
				} else {
					boxA, hasA = entryBox, true
				}
			} else {
				if hasB {
					boxB = combine(boxB, entryBox)
				} else {
					boxB, hasB = entryBox, true
				}
			}
		}
		combinedArea := area(boxA) + area(boxB)
		if combinedArea < bestArea {
			bestArea = combinedArea
			bestSplit = split
		}
	}

	t.nodes = append(t.nodes, node{isLeaf: n.isLeaf})
	newNodeIdx := len(t.nodes)
	newNode := t.node(newNodeIdx)
	n = t.node(nodeIdx)
	totalEntries := n.numEntries
	n.numEntries = 0
	for i := 0; i < totalEntries; i++ {
		e := n.entries[i]
		if bestSplit&(1<<i) == 0 {
			n.entries[n.numEntries] = e
			n.numEntries++
		} else {
			newNode.entries[newNode.numEntries] = e
			newNode.numEntries++
		}
	}
	for i := n.numEntries; i < len(n.entries); i++ {
		n.entries[i] = entry{}
	}
	if !n.isLeaf {
		for i := 0; i < newNode.numEntries; i++ {
			t.node(newNode.entries[i].data).parent = newNodeIdx
		}
	}
	return newNodeIdx
}

// chooseBestNode picks the node at the given level (root is level 0) under
// which box should be inserted, minimising enlargement and breaking ties by
// area.
func (t *RTree) chooseBestNode(box Box, level int) int {
	currentIdx := t.root
	for {
		if level == 0 {
			return currentIdx
		}
		current := t.node(currentIdx)
		bestDelta := enlargement(box, current.entries[0].box)
		bestEntry := 0
		for i := 1; i < current.numEntries; i++ {
			entryBox := current.entries[i].box
			delta := enlargement(box, entryBox)
			if delta < bestDelta {
				bestDelta = delta
				bestEntry = i
			} else if delta == bestDelta && area(entryBox) < area(current.entries[bestEntry].box) {
				bestEntry = i
			}
		}
		currentIdx = current.entries[bestEntry].data
		level--
	}
}

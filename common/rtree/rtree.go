// Package rtree implements a Guttman R-tree over 2D bounding boxes with the
// quadratic split, and a whole-tree search of every overlapping pair of
// entries.
//
// A tree is built once per batch then queried. It is not safe for
// concurrent use, and must not be mutated while a query runs.
package rtree

import (
	"strconv"

	"github.com/bytearena/hullfilter/common/geometry"
	bettererrors "github.com/xtuc/better-errors"
)

type RTree struct {
	nodes []Node
	root  NodeID

	m int // min number of children
	M int // max number of children

	// holds the node waiting to be attached: the new entry, then the
	// second half of each split
	pending []NodeID

	nextInternalValue int
	spliter           *spliter
	size              int
}

// NewRTree returns an empty tree; m >= 1 and M >= 2m are required.
func NewRTree(m, M int) (*RTree, error) {
	if m < 1 || M < 2*m {
		return nil, bettererrors.
			NewFromString("Invalid R-tree fanout: expected m >= 1 and M >= 2m").
			SetContext("m", strconv.Itoa(m)).
			SetContext("M", strconv.Itoa(M))
	}

	tree := &RTree{
		m:                 m,
		M:                 M,
		nextInternalValue: -1,
	}
	tree.spliter = &spliter{tree: tree}
	tree.root = tree.newInternalNode(true)

	return tree, nil
}

func (tree *RTree) GetFanout() (int, int) {
	return tree.m, tree.M
}

// Len is the number of entries.
func (tree *RTree) Len() int {
	return tree.size
}

func (tree *RTree) Root() NodeID {
	return tree.root
}

// Node returns the node behind a handle. The pointer is only valid until
// the next insertion.
func (tree *RTree) Node(id NodeID) *Node {
	return &tree.nodes[id]
}

// Height is the number of levels of internal nodes, a leaf root counts 1.
func (tree *RTree) Height() int {
	height := 1
	for id := tree.root; !tree.nodes[id].IsLeaf; id = tree.nodes[id].Children[0] {
		height++
	}

	return height
}

func (tree *RTree) newNode(kind NodeKind, value int, bb geometry.BoundingBox, isLeaf bool) NodeID {
	tree.nodes = append(tree.nodes, Node{
		Value:  value,
		Kind:   kind,
		BB:     bb,
		IsLeaf: isLeaf,
		Parent: NoNode,
	})

	return NodeID(len(tree.nodes) - 1)
}

func (tree *RTree) newInternalNode(isLeaf bool) NodeID {
	value := tree.nextInternalValue
	tree.nextInternalValue--

	return tree.newNode(KindInternal, value, geometry.BoundingBox{}, isLeaf)
}

func (tree *RTree) attach(parent, child NodeID) {
	tree.nodes[child].Parent = parent
	tree.nodes[parent].Children = append(tree.nodes[parent].Children, child)
}

// exactUnion folds the boxes of every child of id.
func (tree *RTree) exactUnion(id NodeID) geometry.BoundingBox {
	children := tree.nodes[id].Children
	if len(children) == 0 {
		return tree.nodes[id].BB
	}

	bb := tree.nodes[children[0]].BB
	for _, child := range children[1:] {
		bb = bb.GetUnion(tree.nodes[child].BB)
	}

	return bb
}

// InsertEntry adds the payload value (>= 0) with its bounding box.
func (tree *RTree) InsertEntry(value int, bb geometry.BoundingBox) {
	entry := tree.newNode(KindEntry, value, bb, false)
	tree.pending = append(tree.pending, entry)
	tree.size++

	leaf := tree.chooseLeaf(bb)

	if len(tree.nodes[leaf].Children) < tree.M {
		tree.pending = tree.pending[:0]
		tree.nodes[leaf].BB = tree.nodes[leaf].BB.GetUnion(bb)
		tree.attach(leaf, entry)
	} else {
		tree.spliter.splitNode(tree.m, leaf)
	}

	tree.adjustTree(leaf)

	if len(tree.pending) > 0 {
		tree.growTree()
	}
}

// chooseLeaf descends from the root, following the child whose union with
// bb has the smallest area, until a leaf is reached.
func (tree *RTree) chooseLeaf(bb geometry.BoundingBox) NodeID {
	id := tree.root

	for !tree.nodes[id].IsLeaf {
		children := tree.nodes[id].Children

		best := children[0]
		minArea := tree.nodes[best].BB.GetUnion(bb).GetArea()
		for _, child := range children[1:] {
			area := tree.nodes[child].BB.GetUnion(bb).GetArea()
			if area < minArea {
				best = child
				minArea = area
			}
		}

		id = best
	}

	return id
}

// adjustTree walks from id up to the root, re-deriving each parent box
// from all its children and attaching (or splitting for) the pending node.
func (tree *RTree) adjustTree(id NodeID) {
	for !tree.nodes[id].IsRoot() {
		parent := tree.nodes[id].Parent
		tree.nodes[parent].BB = tree.exactUnion(parent)

		if len(tree.pending) > 0 {
			if len(tree.nodes[parent].Children) < tree.M {
				pending := tree.pending[0]
				tree.pending = tree.pending[:0]
				tree.nodes[parent].BB = tree.nodes[parent].BB.GetUnion(tree.nodes[pending].BB)
				tree.attach(parent, pending)
			} else {
				tree.spliter.splitNode(tree.m, parent)
			}
		}

		id = parent
	}
}

// growTree puts the old root and the pending node under a new root.
func (tree *RTree) growTree() {
	oldRoot := tree.root
	pending := tree.pending[0]
	tree.pending = tree.pending[:0]

	newRoot := tree.newInternalNode(false)
	tree.attach(newRoot, oldRoot)
	tree.attach(newRoot, pending)
	tree.nodes[newRoot].BB = tree.nodes[oldRoot].BB.GetUnion(tree.nodes[pending].BB)

	tree.root = newRoot
}

// SearchIntersect returns the values of the entries whose box intersects bb.
func (tree *RTree) SearchIntersect(bb geometry.BoundingBox) []int {
	res := make([]int, 0)

	var recurse func(id NodeID)
	recurse = func(id NodeID) {
		for _, child := range tree.nodes[id].Children {
			node := &tree.nodes[child]
			if !node.BB.Intersect(bb) {
				continue
			}

			if node.IsEntry() {
				res = append(res, node.Value)
			} else {
				recurse(child)
			}
		}
	}
	recurse(tree.root)

	return res
}

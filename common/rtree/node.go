package rtree

import (
	"github.com/bytearena/hullfilter/common/geometry"
)

// NodeID is the handle of a node in the tree arena.
type NodeID int

// NoNode is the parent of the root.
const NoNode NodeID = -1

type NodeKind int

const (
	// KindInternal nodes are created by the tree; their value is a
	// synthetic, strictly decreasing negative id.
	KindInternal NodeKind = iota
	// KindEntry nodes carry a caller payload id.
	KindEntry
)

// Node is owned by its parent through the Children handles; Parent is only
// used to walk upward.
type Node struct {
	Value    int
	Kind     NodeKind
	BB       geometry.BoundingBox
	IsLeaf   bool
	Parent   NodeID
	Children []NodeID
}

func (n *Node) IsRoot() bool {
	return n.Parent == NoNode
}

func (n *Node) IsEntry() bool {
	return n.Kind == KindEntry
}

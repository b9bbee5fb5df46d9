package rtree

// NodeDump is the nested record of a subtree, bb is [minX, minY, maxX, maxY].
type NodeDump struct {
	Value    int        `json:"value"`
	BB       [4]float64 `json:"bb"`
	Children []NodeDump `json:"children"`
}

func (tree *RTree) Dump() NodeDump {
	return tree.dumpNode(tree.root)
}

func (tree *RTree) dumpNode(id NodeID) NodeDump {
	node := &tree.nodes[id]

	dump := NodeDump{
		Value:    node.Value,
		BB:       node.BB.ToFloatArray(),
		Children: make([]NodeDump, 0, len(node.Children)),
	}

	for _, child := range node.Children {
		dump.Children = append(dump.Children, tree.dumpNode(child))
	}

	return dump
}

// Walk calls fn for id and every node below it, depth first.
func (tree *RTree) Walk(id NodeID, fn func(id NodeID, node *Node, depth int)) {
	var recurse func(id NodeID, depth int)
	recurse = func(id NodeID, depth int) {
		fn(id, &tree.nodes[id], depth)
		for _, child := range tree.nodes[id].Children {
			recurse(child, depth+1)
		}
	}
	recurse(id, 0)
}

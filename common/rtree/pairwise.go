package rtree

// Pair holds two entry values, the smaller one first.
type Pair [2]int

func makePair(a, b int) Pair {
	if b < a {
		a, b = b, a
	}
	return Pair{a, b}
}

type nodePair struct {
	a NodeID
	b NodeID
}

// FindPairwiseIntersections returns every pair of distinct entries whose
// boxes intersect.
//
// The search starts from (root, root). Each node is opened exactly once,
// which yields the pairs of its own children; two different nodes whose
// boxes intersect yield the cross product of their children.
func (tree *RTree) FindPairwiseIntersections() []Pair {
	res := make([]Pair, 0)
	opened := make(map[NodeID]bool)

	toCheck := []nodePair{{tree.root, tree.root}}

	for len(toCheck) > 0 {
		next := make([]nodePair, 0)

		for _, pair := range toCheck {
			a := &tree.nodes[pair.a]
			b := &tree.nodes[pair.b]
			overlap := a.BB.Intersect(b.BB)

			if a.IsEntry() && b.IsEntry() {
				if pair.a != pair.b && overlap {
					res = append(res, makePair(a.Value, b.Value))
				}
				continue
			}

			if !opened[pair.a] {
				next = tree.appendChildPairs(next, pair.a)
				opened[pair.a] = true
			}

			if pair.a == pair.b {
				continue
			}

			if !opened[pair.b] {
				next = tree.appendChildPairs(next, pair.b)
				opened[pair.b] = true
			}

			if overlap {
				for _, childA := range a.Children {
					for _, childB := range b.Children {
						next = append(next, nodePair{childA, childB})
					}
				}
			}
		}

		toCheck = next
	}

	return res
}

// appendChildPairs appends every unordered pair of children of id, each
// child paired with itself included.
func (tree *RTree) appendChildPairs(pairs []nodePair, id NodeID) []nodePair {
	children := tree.nodes[id].Children
	for i := range children {
		for j := i; j < len(children); j++ {
			pairs = append(pairs, nodePair{children[i], children[j]})
		}
	}

	return pairs
}

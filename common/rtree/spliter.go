package rtree

import (
	"math"

	"github.com/bytearena/hullfilter/common/assert"
	"github.com/bytearena/hullfilter/common/utils/number"
)

// spliter implements Guttman's quadratic split.
type spliter struct {
	tree    *RTree
	entries []NodeID
}

// splitNode spreads the children of source plus the pending node over
// source and a new sibling. The sibling becomes the pending node.
func (s *spliter) splitNode(m int, source NodeID) {
	tree := s.tree

	assert.Assert(len(tree.pending) <= 1, "there shouldn't be more than one node to add")

	s.entries = s.entries[:0]
	s.entries = append(s.entries, tree.pending...)
	tree.pending = tree.pending[:0]
	s.entries = append(s.entries, tree.nodes[source].Children...)
	tree.nodes[source].Children = nil

	dest1 := source
	dest2 := tree.newInternalNode(tree.nodes[source].IsLeaf)

	seed1, seed2 := s.pickSeeds()
	tree.nodes[dest1].BB = tree.nodes[s.entries[seed1]].BB
	tree.nodes[dest2].BB = tree.nodes[s.entries[seed2]].BB

	// seed2 > seed1, remove it first so seed1 stays valid
	entry2 := s.takeEntry(seed2)
	entry1 := s.takeEntry(seed1)
	tree.attach(dest1, entry1)
	tree.attach(dest2, entry2)

	for len(s.entries) > 0 {
		size1 := len(tree.nodes[dest1].Children)
		size2 := len(tree.nodes[dest2].Children)

		if size1 < m || size2 < m {
			if size1 < size2 {
				s.moveEntryTo(0, dest1)
			} else {
				s.moveEntryTo(0, dest2)
			}
			continue
		}

		preferenceForDest1, best := s.pickNext(dest1, dest2)
		if preferenceForDest1 >= 0 {
			s.moveEntryTo(best, dest1)
		} else {
			s.moveEntryTo(best, dest2)
		}
	}

	tree.nodes[dest1].BB = tree.exactUnion(dest1)
	tree.nodes[dest2].BB = tree.exactUnion(dest2)

	tree.pending = append(tree.pending, dest2)
}

func (s *spliter) takeEntry(i int) NodeID {
	id := s.entries[i]
	s.entries = append(s.entries[:i], s.entries[i+1:]...)

	return id
}

func (s *spliter) moveEntryTo(i int, dest NodeID) {
	tree := s.tree
	id := s.takeEntry(i)

	tree.nodes[dest].BB = tree.nodes[dest].BB.GetUnion(tree.nodes[id].BB)
	tree.attach(dest, id)
}

// pickSeeds returns the most wasteful pair of entries (i < j).
func (s *spliter) pickSeeds() (int, int) {
	nodes := s.tree.nodes

	mostWastedArea := math.Inf(-1)
	bestI, bestJ := 0, 1

	for i := 0; i < len(s.entries); i++ {
		bbI := nodes[s.entries[i]].BB
		for j := i + 1; j < len(s.entries); j++ {
			bbJ := nodes[s.entries[j]].BB
			wastedArea := bbI.GetUnion(bbJ).GetArea() - bbI.GetArea() - bbJ.GetArea()
			if wastedArea > mostWastedArea {
				mostWastedArea = wastedArea
				bestI, bestJ = i, j
			}
		}
	}

	return bestI, bestJ
}

// pickNext returns the entry with the greatest preference for one group,
// and that preference: positive or zero means dest1.
func (s *spliter) pickNext(dest1, dest2 NodeID) (float64, int) {
	nodes := s.tree.nodes
	bb1 := nodes[dest1].BB
	bb2 := nodes[dest2].BB
	area1 := bb1.GetArea()
	area2 := bb2.GetArea()

	best := 0
	maxDiff := math.Inf(-1)
	preferenceForDest1 := 0.0

	for i, id := range s.entries {
		increase1 := bb1.GetUnion(nodes[id].BB).GetArea() - area1
		increase2 := bb2.GetUnion(nodes[id].BB).GetArea() - area2
		diff := math.Abs(increase1 - increase2)
		if diff > maxDiff {
			maxDiff = diff
			best = i
			preferenceForDest1 = increase2 - increase1
		}
	}

	if number.IsZero(preferenceForDest1) {
		preferenceForDest1 = area2 - area1
	}

	if number.IsZero(preferenceForDest1) {
		preferenceForDest1 = float64(len(nodes[dest2].Children) - len(nodes[dest1].Children))
	}

	return preferenceForDest1, best
}

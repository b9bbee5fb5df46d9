package rtree

import (
	"encoding/json"
	"math/rand"
	"sort"
	"testing"

	"github.com/bytearena/hullfilter/common/geometry"
	"github.com/bytearena/hullfilter/common/utils/vector"
	"github.com/dhconnelly/rtreego"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEntry struct {
	value int
	bb    geometry.BoundingBox
}

func (e testEntry) Bounds() rtreego.Rect {
	rect, _ := rtreego.NewRect(
		rtreego.Point{e.bb.Min.GetX(), e.bb.Min.GetY()},
		[]float64{e.bb.Max.GetX() - e.bb.Min.GetX(), e.bb.Max.GetY() - e.bb.Min.GetY()},
	)
	return rect
}

func makeBox(minx, miny, maxx, maxy float64) geometry.BoundingBox {
	return geometry.MakeBoundingBox(vector.MakeVector2(minx, miny), vector.MakeVector2(maxx, maxy))
}

// generateEntries mimics the original test data: small boxes spread over
// [-100, 100]².
func generateEntries(r *rand.Rand, n int) []testEntry {
	entries := make([]testEntry, n)
	for i := range entries {
		minx := r.Float64()*200 - 100
		miny := r.Float64()*200 - 100
		entries[i] = testEntry{
			value: i,
			bb:    makeBox(minx, miny, minx+1+r.Float64()*15, miny+1+r.Float64()*15),
		}
	}

	return entries
}

func buildTree(t *testing.T, m, M int, entries []testEntry) *RTree {
	tree, err := NewRTree(m, M)
	require.Nil(t, err)

	for _, entry := range entries {
		tree.InsertEntry(entry.value, entry.bb)
	}

	return tree
}

func bruteForcePairs(entries []testEntry) []Pair {
	res := make([]Pair, 0)
	for i := 0; i < len(entries); i++ {
		for j := i + 1; j < len(entries); j++ {
			if entries[i].bb.Intersect(entries[j].bb) {
				res = append(res, makePair(entries[i].value, entries[j].value))
			}
		}
	}

	return sortPairs(res)
}

func sortPairs(pairs []Pair) []Pair {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})

	return pairs
}

// checkInvariants verifies parent links, fanout, balance and that every
// internal box is the exact union of its children.
func checkInvariants(t *testing.T, tree *RTree) {
	m, M := tree.GetFanout()
	entryDepth := -1
	seenInternal := make(map[int]bool)

	tree.Walk(tree.Root(), func(id NodeID, node *Node, depth int) {
		if node.IsEntry() {
			assert.Empty(t, node.Children)
			assert.True(t, node.Value >= 0)
			if entryDepth == -1 {
				entryDepth = depth
			}
			assert.Equal(t, entryDepth, depth, "entries should all be at the same depth")
			return
		}

		assert.True(t, node.Value < 0)
		assert.False(t, seenInternal[node.Value], "internal value %d used twice", node.Value)
		seenInternal[node.Value] = true

		assert.True(t, len(node.Children) <= M)
		if !node.IsRoot() {
			assert.True(t, len(node.Children) >= m, "node %d has %d children", node.Value, len(node.Children))
		}

		for _, child := range node.Children {
			assert.Equal(t, id, tree.Node(child).Parent)
			assert.Equal(t, node.IsLeaf, tree.Node(child).IsEntry())
		}

		if len(node.Children) > 0 {
			expected := tree.Node(node.Children[0]).BB
			for _, child := range node.Children[1:] {
				expected = expected.GetUnion(tree.Node(child).BB)
			}
			assert.Equal(t, expected, node.BB)
		}
	})
}

func TestNewRTreeFanout(t *testing.T) {
	examples := []struct {
		Name  string
		M, MM int
		Valid bool
	}{
		{Name: "Should accept (1, 2)", M: 1, MM: 2, Valid: true},
		{Name: "Should accept (5, 10)", M: 5, MM: 10, Valid: true},
		{Name: "Should reject m = 0", M: 0, MM: 4},
		{Name: "Should reject M < 2m", M: 3, MM: 5},
	}

	for _, example := range examples {
		t.Run(example.Name, func(t *testing.T) {
			tree, err := NewRTree(example.M, example.MM)
			if example.Valid {
				assert.Nil(t, err)
				assert.NotNil(t, tree)
			} else {
				assert.NotNil(t, err)
				assert.Nil(t, tree)
			}
		})
	}
}

func TestEmptyTree(t *testing.T) {
	tree := buildTree(t, 1, 3, nil)

	assert.Equal(t, 0, tree.Len())
	assert.Equal(t, 1, tree.Height())
	assert.Empty(t, tree.FindPairwiseIntersections())
	assert.Empty(t, tree.SearchIntersect(makeBox(-10, -10, 10, 10)))
}

func TestInsertKeepsInvariants(t *testing.T) {
	fanouts := [][2]int{{1, 2}, {1, 3}, {2, 4}, {3, 9}, {5, 10}}

	for _, fanout := range fanouts {
		r := rand.New(rand.NewSource(int64(fanout[0]*100 + fanout[1])))
		entries := generateEntries(r, 150)

		tree, err := NewRTree(fanout[0], fanout[1])
		require.Nil(t, err)

		for _, entry := range entries {
			tree.InsertEntry(entry.value, entry.bb)
			checkInvariants(t, tree)
		}

		assert.Equal(t, len(entries), tree.Len())
	}
}

func TestTreeGrowsTaller(t *testing.T) {
	tree := buildTree(t, 1, 2, []testEntry{
		{0, makeBox(0, 0, 1, 1)},
		{1, makeBox(10, 10, 11, 11)},
	})
	assert.Equal(t, 1, tree.Height())
	rootValue := tree.Node(tree.Root()).Value

	tree.InsertEntry(2, makeBox(20, 20, 21, 21))

	assert.Equal(t, 2, tree.Height())
	assert.True(t, tree.Node(tree.Root()).Value < rootValue)
	assert.Len(t, tree.Node(tree.Root()).Children, 2)
	checkInvariants(t, tree)
}

func TestSplitRespectsMinimumFanout(t *testing.T) {
	for m := 1; m <= 4; m++ {
		M := 2 * m
		r := rand.New(rand.NewSource(int64(m)))
		tree := buildTree(t, m, M, generateEntries(r, M+1))

		root := tree.Node(tree.Root())
		require.Len(t, root.Children, 2)
		for _, child := range root.Children {
			assert.True(t, len(tree.Node(child).Children) >= m)
		}
	}
}

func TestSplitSeparatesDistantGroups(t *testing.T) {
	tree := buildTree(t, 1, 3, []testEntry{
		{0, makeBox(0, 0, 1, 1)},
		{1, makeBox(100, 100, 101, 101)},
		{2, makeBox(0.5, 0.5, 1.5, 1.5)},
		{3, makeBox(100.5, 100.5, 101.5, 101.5)},
	})

	root := tree.Node(tree.Root())
	require.Len(t, root.Children, 2)

	groups := make([][]int, 0)
	for _, child := range root.Children {
		values := make([]int, 0)
		for _, entry := range tree.Node(child).Children {
			values = append(values, tree.Node(entry).Value)
		}
		sort.Ints(values)
		groups = append(groups, values)
	}

	assert.ElementsMatch(t, [][]int{{0, 2}, {1, 3}}, groups)
}

func TestSplitWithManyPendingNodesPanics(t *testing.T) {
	tree := buildTree(t, 1, 2, []testEntry{
		{0, makeBox(0, 0, 1, 1)},
		{1, makeBox(2, 2, 3, 3)},
	})

	tree.pending = append(tree.pending,
		tree.newNode(KindEntry, 2, makeBox(4, 4, 5, 5), false),
		tree.newNode(KindEntry, 3, makeBox(6, 6, 7, 7), false),
	)

	assert.Panics(t, func() {
		tree.spliter.splitNode(1, tree.Root())
	})
}

func TestFindPairwiseIntersections(t *testing.T) {
	tree := buildTree(t, 1, 2, []testEntry{
		{0, makeBox(0, 0, 2, 2)},
		{1, makeBox(1, 1, 3, 3)},
		{2, makeBox(10, 10, 11, 11)},
		{3, makeBox(2, 0.5, 4, 1.5)}, // touches 0, overlaps 1
	})

	assert.Equal(t, []Pair{{0, 1}, {1, 3}}, sortPairs(tree.FindPairwiseIntersections()))
}

func TestFindPairwiseIntersectionsAgainstBruteForce(t *testing.T) {
	fanouts := [][2]int{{1, 2}, {1, 3}, {2, 4}, {3, 9}, {5, 10}}

	for _, fanout := range fanouts {
		for seed := int64(1); seed <= 3; seed++ {
			r := rand.New(rand.NewSource(seed))
			entries := generateEntries(r, 300)
			tree := buildTree(t, fanout[0], fanout[1], entries)

			found := tree.FindPairwiseIntersections()
			expected := bruteForcePairs(entries)

			assert.Equal(t, len(expected), len(found), "duplicates or missed pairs with fanout %v", fanout)
			assert.Equal(t, expected, sortPairs(found))

			// a second call gives the same answer
			assert.Equal(t, expected, sortPairs(tree.FindPairwiseIntersections()))
		}
	}
}

func TestSearchIntersectAgainstRtreego(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	entries := generateEntries(r, 400)
	tree := buildTree(t, 2, 6, entries)

	spatials := make([]rtreego.Spatial, len(entries))
	for i, entry := range entries {
		spatials[i] = entry
	}
	oracle := rtreego.NewTree(2, 25, 50, spatials...)

	for i := 0; i < 50; i++ {
		query := generateEntries(r, 1)[0]

		expected := make([]int, 0)
		for _, spatial := range oracle.SearchIntersect(query.Bounds()) {
			expected = append(expected, spatial.(testEntry).value)
		}

		assert.ElementsMatch(t, expected, tree.SearchIntersect(query.bb))
	}
}

func TestDump(t *testing.T) {
	tree := buildTree(t, 1, 2, []testEntry{
		{7, makeBox(0, 0, 1, 1)},
		{8, makeBox(2, 2, 3, 3)},
	})

	data, err := json.Marshal(tree.Dump())
	require.Nil(t, err)

	assert.JSONEq(t, `{
		"value": -1,
		"bb": [0, 0, 3, 3],
		"children": [
			{"value": 7, "bb": [0, 0, 1, 1], "children": []},
			{"value": 8, "bb": [2, 2, 3, 3], "children": []}
		]
	}`, string(data))
}

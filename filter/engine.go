package filter

import (
	"sort"

	"github.com/bytearena/hullfilter/common/geometry"
	"github.com/bytearena/hullfilter/common/rtree"
	"github.com/dhconnelly/rtreego"
)

type indexedBox struct {
	index int
	bb    geometry.BoundingBox
}

func (e indexedBox) Bounds() rtreego.Rect {
	rect, _ := rtreego.NewRect(
		rtreego.Point{e.bb.Min.GetX(), e.bb.Min.GetY()},
		[]float64{e.bb.Max.GetX() - e.bb.Min.GetX(), e.bb.Max.GetY() - e.bb.Min.GetY()},
	)
	return rect
}

type candidateSearch func(boxes []indexedBox, m, M int) ([]rtree.Pair, error)

func rtreeCandidates(boxes []indexedBox, m, M int) ([]rtree.Pair, error) {
	tree, err := rtree.NewRTree(m, M)
	if err != nil {
		return nil, err
	}

	for _, box := range boxes {
		tree.InsertEntry(box.index, box.bb)
	}

	return tree.FindPairwiseIntersections(), nil
}

// rtreegoCandidates queries every box against an rtreego index. rtreego
// reports touching boxes, those are dropped to keep the strict overlap.
func rtreegoCandidates(boxes []indexedBox, m, M int) ([]rtree.Pair, error) {
	spatials := make([]rtreego.Spatial, len(boxes))
	for i, box := range boxes {
		spatials[i] = box
	}

	tree := rtreego.NewTree(2, m, M, spatials...)

	res := make([]rtree.Pair, 0)
	for _, box := range boxes {
		for _, spatial := range tree.SearchIntersect(box.Bounds()) {
			other := spatial.(indexedBox)

			if other.index <= box.index || !box.bb.Intersect(other.bb) {
				continue
			}

			res = append(res, rtree.Pair{box.index, other.index})
		}
	}

	return res, nil
}

func sortPairs(pairs []rtree.Pair) {
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i][0] != pairs[j][0] {
			return pairs[i][0] < pairs[j][0]
		}
		return pairs[i][1] < pairs[j][1]
	})
}

package indexserver

import (
	"math"

	"github.com/bytearena/hullfilter/common/geometry"
	"github.com/bytearena/hullfilter/common/rtree"
	"github.com/bytearena/hullfilter/common/utils/vector"
	"github.com/pkg/errors"
)

func checkIntersection() (bool, error) {
	a := geometry.MakeConvexHull([]vector.Vector2{
		vector.MakeVector2(0, 0),
		vector.MakeVector2(10, 0),
		vector.MakeVector2(10, 10),
	}, 0)
	b := geometry.MakeConvexHull([]vector.Vector2{
		vector.MakeVector2(0, 11),
		vector.MakeVector2(11, 0),
		vector.MakeVector2(11, 11),
	}, 1)

	found, inter := a.Intersection(b)
	if !found || math.Abs(inter.GetArea()-20.25) > 1e-6 {
		return false, errors.Errorf("unexpected intersection %v", inter.Points)
	}

	return true, nil
}

func checkIndex() (bool, error) {
	tree, err := rtree.NewRTree(1, 2)
	if err != nil {
		return false, err
	}

	boxes := []geometry.BoundingBox{
		geometry.MakeBoundingBox(vector.MakeVector2(0, 0), vector.MakeVector2(2, 2)),
		geometry.MakeBoundingBox(vector.MakeVector2(1, 1), vector.MakeVector2(3, 3)),
		geometry.MakeBoundingBox(vector.MakeVector2(5, 5), vector.MakeVector2(6, 6)),
	}
	for i, bb := range boxes {
		tree.InsertEntry(i, bb)
	}

	pairs := tree.FindPairwiseIntersections()
	if len(pairs) != 1 || pairs[0] != (rtree.Pair{0, 1}) {
		return false, errors.Errorf("unexpected pairs %v", pairs)
	}

	return true, nil
}

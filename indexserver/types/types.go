package types

import (
	"math"

	"github.com/bytearena/box2d"
	"github.com/bytearena/hullfilter/common/geometry"
	"github.com/bytearena/hullfilter/common/rtree"
	"github.com/bytearena/hullfilter/common/utils/vector"
	"github.com/pkg/errors"
)

const (
	ModeTree     = "tree"
	ModePairwise = "pairwise"
)

// Points is a (N, 2) matrix of x, y rows.
type Points [][]float64

type IntersectionRequest struct {
	A Points `json:"a"`
	B Points `json:"b"`
}

type IntersectionResponse struct {
	Found  bool         `json:"found"`
	Points [][2]float64 `json:"points"`
	Area   float64      `json:"area"`
}

type AreaRequest struct {
	Points Points `json:"points"`
}

type AreaResponse struct {
	Area float64 `json:"area"`
}

type BoundingBoxRequest struct {
	Points Points `json:"points"`
}

type BoundingBoxResponse struct {
	BB [4]float64 `json:"bb"`
}

// RTreeRequest holds (id, minX, minY, maxX, maxY) entry rows and, when
// set, (minX, minY, maxX, maxY) query rows.
type RTreeRequest struct {
	MinFanout int         `json:"m"`
	MaxFanout int         `json:"M"`
	Mode      string      `json:"mode"`
	Entries   [][]float64 `json:"entries"`
	Queries   [][]float64 `json:"queries"`
}

type PairwiseResponse struct {
	Pairs []rtree.Pair `json:"pairs"`
}

type QueriesResponse struct {
	Results [][]int `json:"results"`
}

type Entry struct {
	Value int
	BB    geometry.BoundingBox
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (points Points) ToVectors(name string) ([]vector.Vector2, error) {
	if points == nil {
		return nil, errors.Errorf("%s: missing points", name)
	}

	res := make([]vector.Vector2, len(points))
	for i, row := range points {
		if len(row) != 2 {
			return nil, errors.Errorf("%s: row %d is not a (x, y) pair", name, i)
		}

		if !isFinite(row...) {
			return nil, errors.Errorf("%s: row %d is not finite", name, i)
		}

		res[i] = vector.MakeVector2(row[0], row[1])
	}

	return res, nil
}

func ToHull(points Points, name string) (geometry.ConvexHull, error) {
	vectors, err := points.ToVectors(name)
	if err != nil {
		return geometry.ConvexHull{}, err
	}

	return geometry.MakeConvexHull(vectors, 0), nil
}

func FromVectors(points []vector.Vector2) [][2]float64 {
	res := make([][2]float64, len(points))
	for i, p := range points {
		res[i] = [2]float64{p.GetX(), p.GetY()}
	}

	return res
}

func toBox(row []float64) (geometry.BoundingBox, error) {
	aabb := box2d.MakeB2AABB()
	aabb.LowerBound = box2d.MakeB2Vec2(row[0], row[1])
	aabb.UpperBound = box2d.MakeB2Vec2(row[2], row[3])

	if !isFinite(row...) || !aabb.IsValid() {
		return geometry.BoundingBox{}, errors.New("min must not exceed max")
	}

	return geometry.FromB2AABB(aabb), nil
}

// ToEntries checks every row before anything is built. Ids are rounded up
// and must not be negative, boxes must not be degenerate.
func (req RTreeRequest) ToEntries() ([]Entry, error) {
	if req.Entries == nil {
		return nil, errors.New("entries: missing rows")
	}

	res := make([]Entry, len(req.Entries))
	for i, row := range req.Entries {
		if len(row) != 5 {
			return nil, errors.Errorf("entries: row %d is not a (id, minX, minY, maxX, maxY) row", i)
		}

		if !isFinite(row[0]) {
			return nil, errors.Errorf("entries: row %d has an invalid id", i)
		}

		value := math.Ceil(row[0])
		if value < 0 || value > math.MaxInt32 {
			return nil, errors.Errorf("entries: row %d has an id out of range", i)
		}

		bb, err := toBox(row[1:])
		if err != nil {
			return nil, errors.Wrapf(err, "entries: row %d", i)
		}

		if bb.IsDegenerate() {
			return nil, errors.Errorf("entries: row %d has a degenerate box", i)
		}

		res[i] = Entry{Value: int(value), BB: bb}
	}

	return res, nil
}

func (req RTreeRequest) ToQueries() ([]geometry.BoundingBox, error) {
	res := make([]geometry.BoundingBox, len(req.Queries))
	for i, row := range req.Queries {
		if len(row) != 4 {
			return nil, errors.Errorf("queries: row %d is not a (minX, minY, maxX, maxY) row", i)
		}

		bb, err := toBox(row)
		if err != nil {
			return nil, errors.Wrapf(err, "queries: row %d", i)
		}

		res[i] = bb
	}

	return res, nil
}

func isFinite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}

	return true
}

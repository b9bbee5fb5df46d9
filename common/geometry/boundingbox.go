package geometry

import (
	"github.com/bytearena/box2d"
	"github.com/bytearena/hullfilter/common/assert"
	"github.com/bytearena/hullfilter/common/utils/number"
	"github.com/bytearena/hullfilter/common/utils/vector"
)

// BoundingBox is an axis-aligned rectangle. The zero value is the
// degenerate box at the origin.
type BoundingBox struct {
	Min vector.Vector2
	Max vector.Vector2
}

func MakeBoundingBox(min, max vector.Vector2) BoundingBox {
	return BoundingBox{Min: min, Max: max}
}

// GetBoundingBox returns the smallest box containing every point, or the
// degenerate box at the origin for an empty slice.
func GetBoundingBox(points []vector.Vector2) BoundingBox {
	if len(points) == 0 {
		return BoundingBox{}
	}

	bb := BoundingBox{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		bb.Min = bb.Min.Min(p)
		bb.Max = bb.Max.Max(p)
	}

	return bb
}

func (bb BoundingBox) GetArea() float64 {
	return (bb.Max.GetX() - bb.Min.GetX()) * (bb.Max.GetY() - bb.Min.GetY())
}

func (bb BoundingBox) IsDegenerate() bool {
	return bb.GetArea() <= number.EPSILON
}

// Intersect applies the separating axis theorem on both axes. Boxes that
// only touch do not intersect.
func (bb BoundingBox) Intersect(b BoundingBox) bool {
	return bb.Max.GetX() > b.Min.GetX() &&
		bb.Min.GetX() < b.Max.GetX() &&
		bb.Max.GetY() > b.Min.GetY() &&
		bb.Min.GetY() < b.Max.GetY()
}

// GetUnion returns the smallest box containing both boxes. A degenerate
// operand is ignored; two degenerate operands are an invariant violation.
func (bb BoundingBox) GetUnion(b BoundingBox) BoundingBox {
	degenerateA := bb.IsDegenerate()
	degenerateB := b.IsDegenerate()

	assert.Assert(!(degenerateA && degenerateB), "union of two degenerate bounding boxes")

	if degenerateA {
		return b
	}

	if degenerateB {
		return bb
	}

	return BoundingBox{
		Min: bb.Min.Min(b.Min),
		Max: bb.Max.Max(b.Max),
	}
}

// ToFloatArray returns [minX, minY, maxX, maxY].
func (bb BoundingBox) ToFloatArray() [4]float64 {
	return [4]float64{bb.Min.GetX(), bb.Min.GetY(), bb.Max.GetX(), bb.Max.GetY()}
}

func (bb BoundingBox) ToB2AABB() box2d.B2AABB {
	aabb := box2d.MakeB2AABB()
	aabb.LowerBound = bb.Min.ToB2Vec2()
	aabb.UpperBound = bb.Max.ToB2Vec2()

	return aabb
}

func FromB2AABB(aabb box2d.B2AABB) BoundingBox {
	return BoundingBox{
		Min: vector.FromB2Vec2(aabb.LowerBound),
		Max: vector.FromB2Vec2(aabb.UpperBound),
	}
}

func (bb BoundingBox) String() string {
	return "[" + bb.Min.String() + " " + bb.Max.String() + "]"
}

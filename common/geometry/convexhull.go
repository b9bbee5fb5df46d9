package geometry

import (
	"math"

	"github.com/bytearena/hullfilter/common/utils/number"
	"github.com/bytearena/hullfilter/common/utils/vector"
)

type insidePolygon int

const (
	insideUnknown insidePolygon = iota
	insideP
	insideQ
)

// ConvexHull is a convex polygon given by its vertices in a single winding
// order. Convexity is never checked.
type ConvexHull struct {
	ID     int
	Points []vector.Vector2

	// +1 when walking Points leaves the interior on the left, -1 otherwise
	direction int
}

func MakeConvexHull(points []vector.Vector2, id int) ConvexHull {
	hull := ConvexHull{
		ID:        id,
		Points:    points,
		direction: 1,
	}

	if len(points) >= 3 && !vector.MakeEdge(points[0], points[1]).BelongToHalfPlane(points[2]) {
		hull.direction = -1
	}

	return hull
}

func (hull ConvexHull) Len() int {
	return len(hull.Points)
}

// GetCircPoint wraps index around the vertices, negative indexes included.
func (hull ConvexHull) GetCircPoint(index int) vector.Vector2 {
	n := len(hull.Points)
	return hull.Points[((index%n)+n)%n]
}

func (hull ConvexHull) GetBoundingBox() BoundingBox {
	return GetBoundingBox(hull.Points)
}

// GetArea uses the shoelace formula.
func (hull ConvexHull) GetArea() float64 {
	area := 0.0
	for i := 1; i <= len(hull.Points); i++ {
		p := hull.GetCircPoint(i)
		pm := hull.GetCircPoint(i - 1)
		area += (pm.GetX() + p.GetX()) * (pm.GetY() - p.GetY())
	}

	return math.Abs(0.5 * area)
}

// IsPointInside sums the angles under which every edge is seen from pt.
// The sum is 0 outside and ±2π inside.
func (hull ConvexHull) IsPointInside(pt vector.Vector2) bool {
	sumAngles := 0.0
	for i := 1; i <= len(hull.Points); i++ {
		edge := vector.MakeEdge(hull.GetCircPoint(i-1), hull.GetCircPoint(i))
		sumAngles += edge.GetAngle(pt)
	}

	return math.Abs(sumAngles) > number.EPSILON
}

// Intersection computes the intersection of two convex hulls by advancing
// alternately on the edges of both (O(n+m)). The boolean is false when the
// hulls do not overlap, or when one of them has less than 3 vertices, in
// which case the receiver is returned unchanged.
func (hull ConvexHull) Intersection(q ConvexHull) (bool, ConvexHull) {
	nbPointsP := len(hull.Points)
	nbPointsQ := len(q.Points)

	if nbPointsP < 3 || nbPointsQ < 3 {
		return false, hull
	}

	interPoints := make([]vector.Vector2, 0, nbPointsP+nbPointsQ)
	curIdxP := 1
	curIdxQ := 1
	nbInterFound := 0
	var firstInterPt vector.Vector2
	inside := insideUnknown

	for i := 0; i < 2*(nbPointsP+nbPointsQ); i++ {
		p := hull.GetCircPoint(curIdxP)
		pDot := vector.MakeEdge(hull.GetCircPoint(curIdxP-hull.direction), p)
		qDot := vector.MakeEdge(q.GetCircPoint(curIdxQ-q.direction), q.GetCircPoint(curIdxQ))

		if found, interPt := pDot.CheckIntersection(qDot); found {
			// the same crossing can be hit twice in a row on a vertex,
			// closing is only checked once the front has moved on
			if nbInterFound > 1 && firstInterPt.Equals(interPt) {
				return true, MakeConvexHull(interPoints, hull.ID)
			}

			interPoints = append(interPoints, interPt)
			if qDot.BelongToHalfPlane(p) {
				inside = insideP
			} else {
				inside = insideQ
			}

			if nbInterFound == 0 {
				firstInterPt = interPt
			}
			nbInterFound++
		}

		advanced, pointToAdd, addPoint := advance(pDot, qDot, inside)
		if advanced == insideP {
			curIdxP += hull.direction
		} else {
			curIdxQ += q.direction
		}

		if addPoint {
			interPoints = append(interPoints, pointToAdd)
		}
	}

	// no closed front: either disjoint or one hull holds the other
	if hull.IsPointInside(q.GetCircPoint(0)) {
		return true, q
	}

	if q.IsPointInside(hull.GetCircPoint(0)) {
		return true, hull
	}

	return false, MakeConvexHull(interPoints, hull.ID)
}

// advance picks the polygon whose current edge moves forward. The head of
// that edge belongs to the intersection when its polygon is the inner one.
func advance(pDot, qDot vector.Edge, inside insidePolygon) (insidePolygon, vector.Vector2, bool) {
	advanceP := func() (insidePolygon, vector.Vector2, bool) {
		return insideP, pDot.E, inside == insideP
	}

	advanceQ := func() (insidePolygon, vector.Vector2, bool) {
		return insideQ, qDot.E, inside == insideQ
	}

	if qDot.CrossProdZ(pDot) >= 0 {
		if qDot.BelongToHalfPlane(pDot.E) {
			return advanceQ()
		}
		return advanceP()
	}

	if pDot.BelongToHalfPlane(qDot.E) {
		return advanceP()
	}
	return advanceQ()
}

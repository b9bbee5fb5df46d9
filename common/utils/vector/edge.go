package vector

import (
	"math"

	"github.com/bytearena/hullfilter/common/utils/number"
)

// Edge is the directed segment going from Em to E.
type Edge struct {
	Em Vector2
	E  Vector2
}

func MakeEdge(em Vector2, e Vector2) Edge {
	return Edge{Em: em, E: e}
}

// Direction is E - Em.
func (edge Edge) Direction() Vector2 {
	return edge.E.Sub(edge.Em)
}

func (edge Edge) Dot(other Edge) float64 {
	return edge.Direction().Dot(other.Direction())
}

// CrossProdZ is the z component of the cross product of both directions.
func (edge Edge) CrossProdZ(other Edge) float64 {
	return edge.Direction().Cross(other.Direction())
}

// GetAngle returns the signed angle, in (-π, π], under which the edge is seen from pt.
func (edge Edge) GetAngle(pt Vector2) float64 {
	a := MakeEdge(pt, edge.Em)
	b := MakeEdge(pt, edge.E)

	return math.Atan2(a.CrossProdZ(b), a.Dot(b))
}

// CheckIntersection solves
//
//	Em + ke * (E - Em) == other.Em + kq * (other.E - other.Em)
//
// with Cramer's rule. Touching endpoints count as an intersection,
// parallel or collinear edges never intersect.
func (edge Edge) CheckIntersection(other Edge) (bool, Vector2) {
	det := edge.CrossProdZ(other)
	if math.Abs(det) <= number.EPSILON {
		return false, edge.E
	}

	r := edge.Direction()
	s := other.Direction()
	rhs := other.Em.Sub(edge.Em)

	ke := rhs.Cross(s) / det
	kq := rhs.Cross(r) / det

	if ke < 0 || ke > 1 || kq < 0 || kq > 1 {
		return false, edge.E
	}

	return true, edge.Em.Add(r.Scale(ke))
}

// BelongToHalfPlane is true when pt lies on the edge line or on its left.
func (edge Edge) BelongToHalfPlane(pt Vector2) bool {
	return edge.CrossProdZ(MakeEdge(edge.Em, pt)) >= 0
}

package geometry

import (
	"math"

	polyclip "github.com/akavel/polyclip-go"
	"github.com/bytearena/hullfilter/common/utils/vector"
)

func toContour(hull ConvexHull) polyclip.Contour {
	contour := make(polyclip.Contour, len(hull.Points))
	for i, p := range hull.Points {
		contour[i] = polyclip.Point{X: p.GetX(), Y: p.GetY()}
	}

	return contour
}

// ClipIntersection intersects two hulls with the general polygon clipper.
// It is slower than ConvexHull.Intersection and serves as a reference.
func ClipIntersection(a, b ConvexHull) []ConvexHull {
	subject := polyclip.Polygon{toContour(a)}
	clipping := polyclip.Polygon{toContour(b)}

	result := subject.Construct(polyclip.INTERSECTION, clipping)

	res := make([]ConvexHull, 0, len(result))
	for _, contour := range result {
		if len(contour) < 3 {
			continue
		}

		points := make([]vector.Vector2, len(contour))
		for i, p := range contour {
			points[i] = vector.MakeVector2(p.X, p.Y)
		}
		res = append(res, MakeConvexHull(points, a.ID))
	}

	return res
}

// ClipArea is the area of the intersection computed by ClipIntersection.
func ClipArea(a, b ConvexHull) float64 {
	area := 0.0
	for _, part := range ClipIntersection(a, b) {
		area += part.GetArea()
	}

	return math.Abs(area)
}

package handler

import (
	"net/http"

	"github.com/bytearena/hullfilter/common/geometry"
	"github.com/bytearena/hullfilter/indexserver/types"
)

func Intersection() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.IntersectionRequest
		if err := decode(w, r, &req); err != nil {
			writeError(w, err)
			return
		}

		a, err := types.ToHull(req.A, "a")
		if err != nil {
			writeError(w, err)
			return
		}

		b, err := types.ToHull(req.B, "b")
		if err != nil {
			writeError(w, err)
			return
		}

		found, inter := a.Intersection(b)

		writeJSON(w, http.StatusOK, types.IntersectionResponse{
			Found:  found,
			Points: types.FromVectors(inter.Points),
			Area:   inter.GetArea(),
		})
	}
}

func Area() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.AreaRequest
		if err := decode(w, r, &req); err != nil {
			writeError(w, err)
			return
		}

		hull, err := types.ToHull(req.Points, "points")
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, types.AreaResponse{Area: hull.GetArea()})
	}
}

func BoundingBox() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.BoundingBoxRequest
		if err := decode(w, r, &req); err != nil {
			writeError(w, err)
			return
		}

		points, err := req.Points.ToVectors("points")
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, types.BoundingBoxResponse{
			BB: geometry.GetBoundingBox(points).ToFloatArray(),
		})
	}
}

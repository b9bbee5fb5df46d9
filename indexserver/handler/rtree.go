package handler

import (
	"net/http"

	"github.com/bytearena/hullfilter/common/rtree"
	"github.com/bytearena/hullfilter/indexserver/types"
	"github.com/pkg/errors"
)

// RTree builds a tree from the entry rows, then answers with the tree, the
// overlapping pairs or the entries hit by each query box.
func RTree() func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.RTreeRequest
		if err := decode(w, r, &req); err != nil {
			writeError(w, err)
			return
		}

		switch req.Mode {
		case "", types.ModeTree, types.ModePairwise:
		default:
			writeError(w, errors.Errorf("unknown mode %q", req.Mode))
			return
		}

		entries, err := req.ToEntries()
		if err != nil {
			writeError(w, err)
			return
		}

		queries, err := req.ToQueries()
		if err != nil {
			writeError(w, err)
			return
		}

		tree, err := rtree.NewRTree(req.MinFanout, req.MaxFanout)
		if err != nil {
			writeError(w, err)
			return
		}

		for _, entry := range entries {
			tree.InsertEntry(entry.Value, entry.BB)
		}

		if req.Queries != nil {
			results := make([][]int, len(queries))
			for i, query := range queries {
				results[i] = tree.SearchIntersect(query)
			}

			writeJSON(w, http.StatusOK, types.QueriesResponse{Results: results})
			return
		}

		if req.Mode == types.ModePairwise {
			writeJSON(w, http.StatusOK, types.PairwiseResponse{Pairs: tree.FindPairwiseIntersections()})
			return
		}

		writeJSON(w, http.StatusOK, tree.Dump())
	}
}

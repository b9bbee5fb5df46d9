package handler

import (
	"encoding/json"
	"net/http"

	"github.com/bytearena/hullfilter/indexserver/types"
	"github.com/pkg/errors"
)

const maxBodySize = 64 << 20

func decode(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dest); err != nil {
		return errors.Wrap(err, "invalid request body")
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, types.ErrorResponse{Error: err.Error()})
}

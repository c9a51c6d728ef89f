package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MikeSquared-Agency/MacMatch/internal/recommend"
)

var (
	errProfileNotFound    = errors.New("profile not found")
	errCatalogUnavailable = errors.New("catalog unavailable")
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeComposeError maps profile resolution, catalog and composer failures
// to responses.
func writeComposeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errProfileNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, recommend.ErrNoMatches):
		writeError(w, http.StatusNotFound, recommend.ErrNoMatches.Error())
	case errors.Is(err, errCatalogUnavailable):
		writeError(w, http.StatusServiceUnavailable, errCatalogUnavailable.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

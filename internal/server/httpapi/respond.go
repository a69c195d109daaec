// Package httpapi exposes the HTTP/JSON surface of the blog service and
// maps service errors onto status codes. JSON field names are
// lowerCamelCase; error bodies are {"error": msg}.
package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rustblog/rustblog/internal/common"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps a service error onto the status table. Store
// errors are never leaked verbatim.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrorBadRequest):
		writeError(w, http.StatusBadRequest, "Bad request.")
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		writeError(w, http.StatusUnauthorized, "Unauthorized.")
	case errors.Is(err, common.ErrorForbidden):
		writeError(w, http.StatusForbidden, "Forbidden.")
	case errors.Is(err, common.ErrorNotFound):
		writeError(w, http.StatusNotFound, "Not found.")
	default:
		writeError(w, http.StatusInternalServerError, "Something went wrong.")
	}
}

func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

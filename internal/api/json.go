package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/catenary/site/internal/apperr"
)

// apiError is the body of every failed /api response.
type apiError struct {
	Error string `json:"error"`
	Route string `json:"route,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("json encode failed", slog.String("error", err.Error()))
	}
}

// writeAPIError reports err for the page at route, if any. Only lookups
// that miss are exposed; everything else is logged and answered with 500.
func writeAPIError(w http.ResponseWriter, route string, err error) {
	if errors.Is(err, apperr.ErrNotFound) {
		writeJSON(w, http.StatusNotFound, apiError{Error: "not found", Route: route})
		return
	}
	slog.Error("api request failed", slog.String("route", route), slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, apiError{Error: "internal error"})
}

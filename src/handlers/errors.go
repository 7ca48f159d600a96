package handlers

import (
	"errors"
	"net/http"

	"fintrack-server/src/core"
)

// coreError maps the core error taxonomy onto transport status codes.
// Anything outside the taxonomy (store unavailable etc.) stays a generic 500.
func coreError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, core.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
	case errors.Is(err, core.ErrValidationFailed), errors.Is(err, core.ErrInvalidReference):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, core.ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, fallback, http.StatusInternalServerError)
	}
}

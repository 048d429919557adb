package controllers

import (
	"errors"
	"net/http"

	"pingerconf/internal/editor"
	"pingerconf/internal/models"
	"pingerconf/internal/providers"
)

const maxRequestBodySize = 1 << 20 // 1 MB

// writeDomainError maps error kinds to HTTP statuses. The draft is left as
// it was, so the client can correct the input and retry.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrDuplicateKey):
		providers.WriteError(w, http.StatusConflict, "duplicate_key", err.Error())
	case errors.Is(err, models.ErrNotFound):
		providers.WriteError(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, models.ErrValidation):
		providers.WriteError(w, http.StatusUnprocessableEntity, "validation", err.Error())
	case errors.Is(err, editor.ErrSaveInFlight):
		providers.WriteError(w, http.StatusConflict, "conflict", err.Error())
	case errors.Is(err, models.ErrPersistence):
		providers.WriteError(w, http.StatusInternalServerError, "persistence", "failed to access the configuration store")
	default:
		providers.WriteError(w, http.StatusInternalServerError, "internal", "Internal Server Error")
	}
}

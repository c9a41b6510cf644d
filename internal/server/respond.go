package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/luxaudit/luxaudit/internal/common"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeAppError maps pipeline errors onto HTTP status codes.
func writeAppError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, common.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, common.ErrInvalidInput), errors.Is(err, common.ErrValidation),
		errors.Is(err, common.ErrUnknownStandard):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, common.ErrUnsupportedFormat):
		writeError(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, common.ErrMissingAPIKey):
		writeError(w, http.StatusPreconditionFailed, err.Error())
	case errors.Is(err, common.ErrExtractionExhausted):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

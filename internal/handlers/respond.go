// Package handlers implements the HTTP surface of the ledger: the form
// submission contract (login, email, password, name, amount, currency,
// payer, debtors) with JSON responses.
package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"splitledger/internal/auth"
	"splitledger/internal/service"
	"splitledger/internal/storage"
	"splitledger/internal/validate"
)

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

// errorBody ties error messages back to the originating form.
type errorBody struct {
	Errors []string `json:"errors"`
}

func writeErrors(w http.ResponseWriter, status int, msgs ...string) {
	writeJSON(w, status, errorBody{Errors: msgs})
}

// writeServiceErr maps domain errors onto HTTP statuses. Field-level
// validation failures return every accumulated message at once.
func writeServiceErr(w http.ResponseWriter, err error) {
	var fieldErrs validate.FieldErrors
	switch {
	case errors.As(err, &fieldErrs):
		writeErrors(w, http.StatusBadRequest, fieldErrs...)
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, auth.ErrLoginNotFound):
		writeErrors(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden):
		writeErrors(w, http.StatusForbidden, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeErrors(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, storage.ErrConflict):
		writeErrors(w, http.StatusConflict, err.Error())
	default:
		slog.Error("Request failed", "error", err)
		writeErrors(w, http.StatusInternalServerError, "internal error")
	}
}

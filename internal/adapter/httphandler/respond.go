package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/niksmo/storefront/internal/core/domain"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "err", err)
	}
}

// writeError maps core sentinel errors to statuses. Everything the
// core rejects is a recoverable, user-visible condition; only unknown
// errors become 500.
func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, errorStatus(err), errorBody{Error: userMessage(err)})
}

func errorStatus(err error) int {
	switch {
	case errors.Is(err, domain.ErrQuantityTooLow),
		errors.Is(err, domain.ErrEmptyCredentials),
		errors.Is(err, domain.ErrEmptyField),
		errors.Is(err, domain.ErrEmptyCart):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrDuplicateUsername):
		return http.StatusConflict
	case errors.Is(err, domain.ErrItemNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrCatalogUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func userMessage(err error) string {
	for _, sentinel := range []error{
		domain.ErrQuantityTooLow,
		domain.ErrEmptyCredentials,
		domain.ErrEmptyField,
		domain.ErrEmptyCart,
		domain.ErrInvalidCredentials,
		domain.ErrNotAuthenticated,
		domain.ErrDuplicateUsername,
		domain.ErrItemNotFound,
		domain.ErrCatalogUnavailable,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return "internal error"
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/iho/finledger/internal/adapter/http/dto"
	"github.com/iho/finledger/internal/domain"
)

// actorHeader carries the acting user for audit fields. Defaults to "system"
// when the caller does not identify itself.
const actorHeader = "X-Actor"

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, domain.ErrRecurrenceTemplateNotFound),
		errors.Is(err, domain.ErrSystemCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateOperation):
		return http.StatusConflict
	case errors.Is(err, domain.ErrTransactionAlreadyCancelled):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficientBalance),
		errors.Is(err, domain.ErrCreditLimitExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInactiveAccount),
		errors.Is(err, domain.ErrAccountIsNotCreditCard),
		errors.Is(err, domain.ErrInvalidCreditCardConfig),
		errors.Is(err, domain.ErrInvalidTransactionAmount),
		errors.Is(err, domain.ErrInvalidInstallmentCount),
		errors.Is(err, domain.ErrSameAccount),
		errors.Is(err, domain.ErrInvalidCompetenceDate):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// actor extracts the acting user from the request.
func actor(r *http.Request) string {
	if a := r.Header.Get(actorHeader); a != "" {
		return a
	}

	return "system"
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

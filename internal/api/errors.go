package api

import (
	"errors"
	"net/http"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/domain"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking their types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrUnsupportedLanguage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-safe message for err. Validation
// errors keep their field and reason; everything else is generic.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return "Invalid " + verr.Field + ": " + verr.Message
	case errors.Is(err, domain.ErrUnsupportedLanguage):
		return "Unsupported language"
	default:
		return "An unexpected error occurred"
	}
}

// errorField returns the field named by a validation error, or "".
func errorField(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Field
	}
	return ""
}

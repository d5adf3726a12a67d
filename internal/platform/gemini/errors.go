package gemini

import (
	"context"
	"errors"
	"net/http"

	"google.golang.org/genai"
)

// Error definitions for the gemini package.
var (
	// ErrEmptyPrompt is returned when a rendered prompt is empty.
	ErrEmptyPrompt = errors.New("prompt cannot be empty")

	// ErrNilLogger is returned by constructors given a nil logger.
	ErrNilLogger = errors.New("logger cannot be nil")
)

// isTransient reports whether a failed call is worth retrying.
// Rate limits, server errors and transport failures are transient;
// other API errors mean the request itself is wrong.
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests ||
			apiErr.Code == http.StatusRequestTimeout ||
			apiErr.Code >= http.StatusInternalServerError
	}
	return true
}

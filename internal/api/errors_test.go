package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/domain"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantMessage string
		wantField   string
	}{
		{
			name:        "validation",
			err:         domain.NewValidationError("age", "must be between 5 and 65, got 3"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid age: must be between 5 and 65, got 3",
			wantField:   "age",
		},
		{
			name:        "wrapped validation",
			err:         fmt.Errorf("handler: %w", domain.NewValidationError("day", "bad")),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Invalid day: bad",
			wantField:   "day",
		},
		{
			name:        "unsupported language",
			err:         fmt.Errorf("%w: %q", domain.ErrUnsupportedLanguage, "zz"),
			wantStatus:  http.StatusBadRequest,
			wantMessage: "Unsupported language",
		},
		{
			name:        "internal",
			err:         errors.New("redis: connection pool timeout"),
			wantStatus:  http.StatusInternalServerError,
			wantMessage: "An unexpected error occurred",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantStatus, MapErrorToStatusCode(tc.err))
			assert.Equal(t, tc.wantMessage, GetSafeErrorMessage(tc.err))
			assert.Equal(t, tc.wantField, errorField(tc.err))
		})
	}

	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
}

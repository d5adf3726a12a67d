package shared_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/api/shared"
)

type sample struct {
	Name  string `json:"name" validate:"required"`
	Count int    `json:"count" validate:"min=1,max=5"`
	Mode  string `json:"mode" validate:"omitempty,oneof=fast slow"`
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{name: "valid", body: `{"name":"a","count":2}`},
		{name: "unknown field", body: `{"name":"a","extra":1}`, wantErr: true},
		{name: "two objects", body: `{"name":"a"} {"name":"b"}`, wantErr: true},
		{name: "oversized", body: `{"name":"` + strings.Repeat("x", shared.MaxBodyBytes) + `"}`, wantErr: true},
		{name: "empty", body: ``, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tc.body))
			var v sample
			err := shared.DecodeJSON(httptest.NewRecorder(), req, &v)
			if tc.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "a", v.Name)
		})
	}
}

func TestValidationMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   sample
		want string
	}{
		{name: "required", in: sample{Count: 1}, want: "Name: required field"},
		{name: "min", in: sample{Name: "a"}, want: "Count: must be at least 1"},
		{name: "max", in: sample{Name: "a", Count: 9}, want: "Count: must be at most 5"},
		{name: "oneof", in: sample{Name: "a", Count: 1, Mode: "warp"}, want: "Mode: must be one of fast slow"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := shared.ValidateRequest(tc.in)
			require.Error(t, err)
			assert.Equal(t, tc.want, shared.ValidationMessage(err))
		})
	}

	assert.Equal(t, "Validation error", shared.ValidationMessage(errors.New("other")))
	assert.NoError(t, shared.ValidateRequest(sample{Name: "a", Count: 3, Mode: "slow"}))
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	ctx := shared.SetTraceID(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/x", nil).WithContext(ctx)
	rec := httptest.NewRecorder()

	shared.RespondWithErrorAndLog(rec, req, http.StatusInternalServerError, "Something failed",
		errors.New("query failed: postgres://user:hunter2@db:5432/lessons"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "hunter2")

	var body shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Something failed", body.Error)
	assert.Equal(t, shared.GetTraceID(ctx), body.TraceID)
	assert.Zero(t, body.Code)
}

func TestRespondWithFieldError(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	rec := httptest.NewRecorder()
	shared.RespondWithFieldError(rec, req, http.StatusBadRequest, "age", "too young")

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "age", body["field"])
	assert.Equal(t, "too young", body["error"])
	assert.NotContains(t, body, "trace_id")
}

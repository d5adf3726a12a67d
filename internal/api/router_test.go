package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/api"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/api/middleware"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/api/shared"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/budget"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/curriculum"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/domain"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/perf"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/synthesis"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/tone"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEngine(t *testing.T) *synthesis.Engine {
	t.Helper()
	store, err := curriculum.NewStore(curriculum.NewEmbeddedSource(), discardLogger())
	require.NoError(t, err)
	engine, err := synthesis.NewEngine(store,
		synthesis.WithLogger(discardLogger()),
		synthesis.WithSelector(tone.FirstSelector{}))
	require.NoError(t, err)
	return engine
}

func newTestRouter(t *testing.T, limiter *budget.RateLimiter) (http.Handler, *synthesis.Engine) {
	t.Helper()
	engine := newTestEngine(t)
	deps := api.RouterDeps{
		Synthesizer: engine,
		Metrics:     engine.Monitor(),
		Spend:       budget.NewTracker(budget.DefaultConfig(), discardLogger()),
		Logger:      discardLogger(),
	}
	if limiter != nil {
		deps.Limiter = limiter
	}
	return api.NewRouter(deps), engine
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

// stubSynthesizer returns a fixed result or error.
type stubSynthesizer struct {
	result domain.SynthesisResult
	err    error
}

func (s stubSynthesizer) Synthesize(context.Context, domain.SynthesisRequest) (domain.SynthesisResult, error) {
	return s.result, s.err
}

func TestHealth(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t, nil)

	rec := serve(router, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, map[string]string{"status": "ok"}, decode[map[string]string](t, rec))
}

func TestGetLesson(t *testing.T) {
	t.Parallel()
	router, engine := newTestRouter(t, nil)

	rec := serve(router, http.MethodGet, "/api/lessons/1?age=7&tone=nurturing", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	result := decode[domain.SynthesisResult](t, rec)
	assert.Contains(t, result.Title, "The Sun")
	assert.Equal(t, 1, result.Metadata.Day)
	assert.Equal(t, 7, result.Metadata.Age)
	assert.Equal(t, domain.ToneNurturing, result.Metadata.Tone)
	assert.Equal(t, domain.LanguageEnglish, result.Metadata.Language)
	assert.False(t, result.Metadata.FromCache)
	assert.Equal(t, rec.Header().Get(shared.TraceIDHeader), result.Metadata.TraceID)

	again := serve(router, http.MethodGet, "/api/lessons/1?age=7&tone=nurturing", "")
	require.Equal(t, http.StatusOK, again.Code)
	assert.True(t, decode[domain.SynthesisResult](t, again).Metadata.FromCache)
	assert.Equal(t, 1, engine.Stats().CacheHits)
}

func TestCreateLesson(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t, nil)

	rec := serve(router, http.MethodPost, "/api/lessons",
		`{"day": 200, "age": 35, "tone": "Energetic", "language": "es"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	result := decode[domain.SynthesisResult](t, rec)
	assert.Equal(t, 200, result.Metadata.Day)
	assert.Equal(t, domain.ToneEnergetic, result.Metadata.Tone)
	assert.Equal(t, domain.LanguageSpanish, result.Metadata.Language)
}

func TestLessonValidationErrors(t *testing.T) {
	t.Parallel()
	router, engine := newTestRouter(t, nil)

	tests := []struct {
		name   string
		method string
		target string
		body   string
		field  string
	}{
		{name: "day not a number", method: http.MethodGet, target: "/api/lessons/abc?age=7&tone=analytical", field: "day"},
		{name: "day out of range", method: http.MethodGet, target: "/api/lessons/367?age=7&tone=analytical", field: "day"},
		{name: "missing age", method: http.MethodGet, target: "/api/lessons/1?tone=analytical", field: "age"},
		{name: "age not a number", method: http.MethodGet, target: "/api/lessons/1?age=old&tone=analytical", field: "age"},
		{name: "age too young", method: http.MethodGet, target: "/api/lessons/1?age=4&tone=analytical", field: "age"},
		{name: "unknown tone", method: http.MethodGet, target: "/api/lessons/1?age=30&tone=pirate", field: "tone"},
		{name: "unknown language", method: http.MethodGet, target: "/api/lessons/1?age=30&tone=analytical&language=zz", field: "language"},
		{name: "post age too old", method: http.MethodPost, target: "/api/lessons", body: `{"day": 1, "age": 66, "tone": "analytical"}`, field: "age"},
	}

	t.Cleanup(func() {
		assert.Zero(t, engine.Stats().TotalRequests)
	})

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := serve(router, tc.method, tc.target, tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			body := decode[shared.ErrorResponse](t, rec)
			assert.Equal(t, tc.field, body.Field)
			assert.NotEmpty(t, body.Error)
			assert.NotEmpty(t, body.TraceID)
		})
	}
}

func TestCreateLessonRejectsMalformedBodies(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t, nil)

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "invalid json", body: `{"day": `, want: "Invalid request format"},
		{name: "unknown field", body: `{"day": 1, "age": 7, "tone": "analytical", "mood": "happy"}`, want: "Invalid request format"},
		{name: "trailing object", body: `{"day": 1, "age": 7, "tone": "analytical"}{}`, want: "Invalid request format"},
		{name: "missing tone", body: `{"day": 1, "age": 7}`, want: "Tone: required field"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := serve(router, http.MethodPost, "/api/lessons", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.want, decode[shared.ErrorResponse](t, rec).Error)
		})
	}
}

func TestLessonInternalErrorIsNotLeaked(t *testing.T) {
	t.Parallel()
	router := api.NewRouter(api.RouterDeps{
		Synthesizer: stubSynthesizer{err: errors.New("dial tcp 10.0.0.5:5432: connection refused")},
		Metrics:     perf.NewMonitor(discardLogger()),
		Logger:      discardLogger(),
	})

	rec := serve(router, http.MethodGet, "/api/lessons/1?age=7&tone=analytical", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
	assert.Equal(t, "An unexpected error occurred", decode[shared.ErrorResponse](t, rec).Error)
}

func TestCreateLessonReportsOutOfRangeFields(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t, nil)

	tests := []struct {
		name      string
		body      string
		wantField string
		wantError string
	}{
		{
			name:      "missing day",
			body:      `{"age": 7, "tone": "analytical"}`,
			wantField: "day",
			wantError: "Invalid day: must be between 1 and 366, got 0",
		},
		{
			name:      "zero day",
			body:      `{"day": 0, "age": 7, "tone": "analytical"}`,
			wantField: "day",
			wantError: "Invalid day: must be between 1 and 366, got 0",
		},
		{
			name:      "zero age",
			body:      `{"day": 3, "age": 0, "tone": "analytical"}`,
			wantField: "age",
			wantError: "Invalid age: must be between 5 and 65, got 0",
		},
		{
			name:      "missing age",
			body:      `{"day": 3, "tone": "analytical"}`,
			wantField: "age",
			wantError: "Invalid age: must be between 5 and 65, got 0",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			rec := serve(router, http.MethodPost, "/api/lessons", tc.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)
			got := decode[shared.ErrorResponse](t, rec)
			assert.Equal(t, tc.wantField, got.Field)
			assert.Equal(t, tc.wantError, got.Error)
		})
	}
}

func TestRateLimitedLessons(t *testing.T) {
	t.Parallel()
	limiter := budget.NewRateLimiter(budget.Limits{PerMinute: 2, PerHour: 100, PerDay: 1000})
	router, _ := newTestRouter(t, limiter)

	for i := range 2 {
		rec := serve(router, http.MethodGet, "/api/lessons/1?age=7&tone=analytical", "")
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i)
	}

	rec := serve(router, http.MethodGet, "/api/lessons/1?age=7&tone=analytical", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, decode[shared.ErrorResponse](t, rec).Error, budget.ReasonMinuteExceeded)

	// Metrics endpoints are not limited.
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/stats", "").Code)
	assert.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/health", "").Code)
}

func TestRateLimitIgnoresSpoofedIdentityHeaders(t *testing.T) {
	t.Parallel()
	limiter := budget.NewRateLimiter(budget.Limits{PerMinute: 2, PerHour: 100, PerDay: 1000})
	router, _ := newTestRouter(t, limiter)

	codes := make([]int, 0, 6)
	for i := range 6 {
		req := httptest.NewRequest(http.MethodGet, "/api/lessons/1?age=7&tone=analytical", nil)
		req.RemoteAddr = "198.51.100.7:5000"
		req.Header.Set(middleware.ClientIDHeader, fmt.Sprintf("enterprise_%d", i))
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		req.Header.Set("X-Real-IP", fmt.Sprintf("203.0.113.%d", i))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{
		http.StatusOK, http.StatusOK,
		http.StatusTooManyRequests, http.StatusTooManyRequests,
		http.StatusTooManyRequests, http.StatusTooManyRequests,
	}, codes)
}

func TestRateLimitTrustsProxyHeadersWhenEnabled(t *testing.T) {
	t.Parallel()
	engine := newTestEngine(t)
	router := api.NewRouter(api.RouterDeps{
		Synthesizer:       engine,
		Metrics:           engine.Monitor(),
		Limiter:           budget.NewRateLimiter(budget.Limits{PerMinute: 1, PerHour: 100, PerDay: 1000}),
		TrustProxyHeaders: true,
		Logger:            discardLogger(),
	})

	for i := range 3 {
		req := httptest.NewRequest(http.MethodGet, "/api/lessons/1?age=7&tone=analytical", nil)
		req.RemoteAddr = "10.0.0.2:5000"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code, "client %d", i)
	}
}

func TestMetricsEndpoints(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t, nil)

	require.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/lessons/42?age=20&tone=energetic", "").Code)
	require.Equal(t, http.StatusOK, serve(router, http.MethodGet, "/api/lessons/42?age=20&tone=energetic", "").Code)

	stats := decode[perf.Stats](t, serve(router, http.MethodGet, "/api/stats", ""))
	assert.Equal(t, 1, stats.Syntheses)
	assert.Equal(t, 1, stats.CacheHits)
	assert.InDelta(t, 0.5, stats.CacheHitRate, 1e-9)

	budgets := decode[perf.BudgetReport](t, serve(router, http.MethodGet, "/api/budgets", ""))
	assert.NotEmpty(t, budgets.Checks)

	report := decode[perf.Report](t, serve(router, http.MethodGet, "/api/report", ""))
	assert.Equal(t, stats.Syntheses, report.Stats.Syntheses)
}

func TestCosts(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t, nil)

	rec := serve(router, http.MethodGet, "/api/costs?days=3", "")
	require.Equal(t, http.StatusOK, rec.Code)
	report := decode[api.CostReport](t, rec)
	assert.Equal(t, 3, report.Summary.Days)
	assert.Len(t, report.Summary.Breakdown, 3)
	assert.Empty(t, report.Alerts)

	bad := serve(router, http.MethodGet, "/api/costs?days=0", "")
	assert.Equal(t, http.StatusBadRequest, bad.Code)
	assert.Equal(t, "days", decode[shared.ErrorResponse](t, bad).Field)
}

func TestCostsDisabled(t *testing.T) {
	t.Parallel()
	router := api.NewRouter(api.RouterDeps{
		Synthesizer: stubSynthesizer{},
		Metrics:     perf.NewMonitor(discardLogger()),
	})

	assert.Equal(t, http.StatusNotFound, serve(router, http.MethodGet, "/api/costs", "").Code)
}

func TestTraceIDHeader(t *testing.T) {
	t.Parallel()
	router, _ := newTestRouter(t, nil)

	rec := serve(router, http.MethodGet, "/api/lessons/1?age=7&tone=pirate", "")
	id := rec.Header().Get(shared.TraceIDHeader)
	assert.Len(t, id, 32)
	assert.Equal(t, id, decode[shared.ErrorResponse](t, rec).TraceID)
}


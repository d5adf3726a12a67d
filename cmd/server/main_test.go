package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/config"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/domain"
)

func init() {
	color.NoColor = true
}

// isolateEnv clears the variables that would point tests at real services.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LESSON_DATABASE_URL",
		"LESSON_REDIS_URL",
		"LESSON_LLM_GEMINI_API_KEY",
		"LESSON_TELEMETRY_OTLP_ENDPOINT",
		"OTEL_EXPORTER_OTLP_ENDPOINT",
		"LESSON_CURRICULUM_SOURCE",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("LESSON_SYNTHESIS_SELECTOR", config.SelectorFirst)
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(append([]string{"--env-file", ""}, args...))
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func testApplication(t *testing.T) *application {
	t.Helper()
	isolateEnv(t)
	cfg, err := config.Load()
	require.NoError(t, err)
	cfg.Server.Port = 0

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	app, err := newApplication(context.Background(), cfg, logger)
	require.NoError(t, err)
	t.Cleanup(func() { app.cleanup(context.Background()) })
	return app
}

func TestSynthesizeCommandJSON(t *testing.T) {
	isolateEnv(t)

	out, err := execute(t, "synthesize", "--day", "1", "--age", "7", "--tone", "nurturing", "--json")
	require.NoError(t, err)

	var result domain.SynthesisResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Contains(t, result.Title, "The Sun")
	assert.Equal(t, 1, result.Metadata.Day)
	assert.Equal(t, 7, result.Metadata.Age)
	assert.Equal(t, domain.ToneNurturing, result.Metadata.Tone)
	assert.False(t, result.Metadata.IsFallback)
}

func TestSynthesizeCommandText(t *testing.T) {
	isolateEnv(t)

	out, err := execute(t, "synthesize", "--day", "366", "--age", "60", "--tone", "analytical", "--language", "fr")
	require.NoError(t, err)

	for _, section := range []string{"Introduction", "Concept", "Examples", "Reflection"} {
		assert.Contains(t, out, section)
	}
	assert.Contains(t, out, "10 minutes")
	assert.NotContains(t, out, "fallback content served")
}

func TestSynthesizeCommandValidation(t *testing.T) {
	isolateEnv(t)

	tests := []struct {
		name string
		args []string
	}{
		{name: "age too young", args: []string{"--day", "1", "--age", "3"}},
		{name: "day out of range", args: []string{"--day", "400", "--age", "30"}},
		{name: "unknown tone", args: []string{"--day", "1", "--age", "30", "--tone", "sarcastic"}},
		{name: "missing day", args: []string{"--age", "30"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := execute(t, append([]string{"synthesize"}, tc.args...)...)
			assert.Error(t, err)
		})
	}
}

func TestBudgetsCommand(t *testing.T) {
	isolateEnv(t)

	out, err := execute(t, "budgets", "--rounds", "2")
	require.NoError(t, err)

	assert.Contains(t, out, "Performance budgets")
	assert.Contains(t, out, "Statistics")
	assert.Contains(t, out, "Generation spend")
	grid := len(sampleDays) * len(sampleAges) * len(domain.Tones)
	assert.Contains(t, out, "cache hits "+strconv.Itoa(grid))
}

func TestBudgetsCommandRejectsZeroRounds(t *testing.T) {
	isolateEnv(t)
	_, err := execute(t, "budgets", "--rounds", "0")
	assert.Error(t, err)
}

func TestMigrateRequiresDatabase(t *testing.T) {
	isolateEnv(t)

	_, err := execute(t, "migrate", "status")
	assert.ErrorIs(t, err, errDatabaseNotConfigured)

	_, err = execute(t, "migrate", "sideways")
	assert.Error(t, err)

	_, err = execute(t, "curriculum", "seed")
	assert.ErrorIs(t, err, errDatabaseNotConfigured)
}

func TestCurriculumCheck(t *testing.T) {
	isolateEnv(t)

	out, err := execute(t, "curriculum", "check")
	require.NoError(t, err)
	assert.Contains(t, out, "12 of 12 shards loaded from embedded source")
}

func TestPostgresSourceRequiresDatabase(t *testing.T) {
	isolateEnv(t)
	t.Setenv("LESSON_CURRICULUM_SOURCE", config.SourcePostgres)

	_, err := execute(t, "synthesize", "--day", "1", "--age", "7")
	assert.ErrorIs(t, err, errDatabaseNotConfigured)
}

func TestApplicationRouter(t *testing.T) {
	app := testApplication(t)
	require.NotNil(t, app.limiter)

	srv := httptest.NewServer(app.router())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/lessons/100?age=25&tone=energetic")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result domain.SynthesisResult
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	assert.Equal(t, 100, result.Metadata.Day)
	assert.Equal(t, domain.LanguageEnglish, result.Metadata.Language)
	assert.NotEmpty(t, resp.Header.Get("X-RateLimit-Remaining"))
}

func TestStartHTTPServerShutsDownOnCancel(t *testing.T) {
	app := testApplication(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.startHTTPServer(ctx, app.router()) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestSelectorFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, selectorFor(config.SynthesisConfig{Selector: config.SelectorFirst}).Pick(5))

	a := selectorFor(config.SynthesisConfig{Selector: config.SelectorSeeded, Seed: 42})
	b := selectorFor(config.SynthesisConfig{Selector: config.SelectorSeeded, Seed: 42})
	for range 10 {
		assert.Equal(t, a.Pick(7), b.Pick(7))
	}

	r := selectorFor(config.SynthesisConfig{Selector: config.SelectorRandom})
	for range 10 {
		n := r.Pick(3)
		assert.True(t, n >= 0 && n < 3)
	}
}

package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"strings"
	"time"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/config"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/generation"
	"google.golang.org/genai"
)

const (
	defaultMaxRetries        = 3
	defaultBaseDelaySeconds  = 2
	defaultResponseMIMEType  = "application/json"
	maxLoggedResponsePreview = 200
)

// contentGenerator is the subset of genai.Models used by the generator.
type contentGenerator interface {
	GenerateContent(
		ctx context.Context,
		model string,
		contents []*genai.Content,
		config *genai.GenerateContentConfig,
	) (*genai.GenerateContentResponse, error)
}

// Generator implements the generation.Generator interface using
// Google's Gemini API to write lessons.
type Generator struct {
	// logger is used for structured logging
	logger *slog.Logger

	// config contains LLM-specific configuration
	config config.LLMConfig

	// models makes the API calls
	models contentGenerator

	// sleep waits between retries; replaced in tests
	sleep func(ctx context.Context, d time.Duration) error

	// jitter returns a factor in [0.5, 1.0)
	jitter func() float64
}

var _ generation.Generator = (*Generator)(nil)

// NewGenerator creates a Generator backed by a Gemini API client.
//
// Parameters:
//   - ctx: Context for client initialization
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing API key, model name and retry settings
//
// Returns:
//   - A properly initialized Generator or an error if initialization fails
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, ErrNilLogger
	}
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v",
			generation.ErrInvalidConfig, err)
	}

	logger.InfoContext(ctx, "Initialized Gemini generator", "model", cfg.ModelName)
	return newGenerator(logger, cfg, client.Models), nil
}

func newGenerator(logger *slog.Logger, cfg config.LLMConfig, models contentGenerator) *Generator {
	return &Generator{
		logger: logger.With("component", "gemini_generator"),
		config: cfg,
		models: models,
		sleep:  sleepContext,
		jitter: func() float64 { return 0.5 + rand.Float64()*0.5 },
	}
}

func validateConfig(cfg config.LLMConfig) error {
	if cfg.GeminiAPIKey == "" {
		return fmt.Errorf("%w: gemini API key cannot be empty", generation.ErrInvalidConfig)
	}
	if cfg.ModelName == "" {
		return fmt.Errorf("%w: model name cannot be empty", generation.ErrInvalidConfig)
	}
	return nil
}

// Generate writes a lesson for req.
func (g *Generator) Generate(ctx context.Context, req generation.Request) (*generation.Response, error) {
	prompt, err := generation.BuildPrompt(req)
	if err != nil {
		return nil, err
	}
	g.logger.DebugContext(ctx, "Prompt generated successfully",
		"day", req.Day,
		"age", req.Age,
		"prompt_length", len(prompt))

	resp, err := g.callWithRetry(ctx, prompt)
	if err != nil {
		return nil, err
	}
	return g.parseResponse(ctx, resp)
}

// callWithRetry calls the Gemini API with exponential backoff.
//
// Transient errors are retried up to config.MaxRetries times with a delay of
// baseDelay * 2^attempt * jitter. Permanent errors (safety blocks, empty
// candidates, rejected requests) are returned immediately.
func (g *Generator) callWithRetry(ctx context.Context, prompt string) (*genai.GenerateContentResponse, error) {
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	maxRetries := g.config.MaxRetries
	if maxRetries < 0 {
		g.logger.WarnContext(ctx, "Invalid max retries value, using default",
			"max_retries", defaultMaxRetries)
		maxRetries = defaultMaxRetries
	}
	baseDelaySeconds := g.config.RetryDelaySeconds
	if baseDelaySeconds < 1 {
		g.logger.WarnContext(ctx, "Invalid retry delay value, using default",
			"base_delay_seconds", defaultBaseDelaySeconds)
		baseDelaySeconds = defaultBaseDelaySeconds
	}

	contents := genai.Text(prompt)
	genConfig := &genai.GenerateContentConfig{
		ResponseMIMEType: defaultResponseMIMEType,
		ResponseSchema:   lessonSchema(),
	}

	for attempt := 0; ; attempt++ {
		attemptNum := attempt + 1
		g.logger.InfoContext(ctx, "Making Gemini API call",
			"attempt", attemptNum,
			"max_attempts", maxRetries+1)

		resp, err := g.models.GenerateContent(ctx, g.config.ModelName, contents, genConfig)
		if err == nil {
			err = checkResponse(resp)
			if err == nil {
				g.logger.InfoContext(ctx, "Gemini API call successful", "attempt", attemptNum)
				return resp, nil
			}
		} else if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, ctxErr)
		} else if !isTransient(err) {
			err = fmt.Errorf("%w: %v", generation.ErrGenerationFailed, err)
		} else {
			err = fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
		}

		g.logger.ErrorContext(ctx, "Gemini API call failed",
			"attempt", attemptNum,
			"error", err)

		if !errors.Is(err, generation.ErrTransientFailure) {
			g.logger.WarnContext(ctx, "Permanent error occurred, not retrying")
			return nil, err
		}
		if attempt >= maxRetries {
			g.logger.WarnContext(ctx, "Maximum retry attempts reached", "max_retries", maxRetries)
			return nil, fmt.Errorf("%w: exceeded maximum retry attempts (%d): %v",
				generation.ErrTransientFailure, maxRetries, err)
		}

		backoff := float64(baseDelaySeconds) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * g.jitter() * float64(time.Second))
		g.logger.InfoContext(ctx, "Retrying after delay",
			"attempt", attemptNum,
			"delay", delay)

		if err := g.sleep(ctx, delay); err != nil {
			g.logger.WarnContext(ctx, "API call cancelled during retry delay",
				"attempt", attemptNum,
				"ctx_err", err)
			return nil, fmt.Errorf("%w: %v", generation.ErrTransientFailure, err)
		}
	}
}

// checkResponse classifies a response that came back without a transport error.
func checkResponse(resp *genai.GenerateContentResponse) error {
	switch {
	case resp == nil:
		return fmt.Errorf("%w: nil response", generation.ErrInvalidResponse)
	case resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "":
		return fmt.Errorf("%w: prompt blocked (%s)", generation.ErrContentBlocked, resp.PromptFeedback.BlockReason)
	case len(resp.Candidates) == 0:
		return fmt.Errorf("%w: no content generated", generation.ErrInvalidResponse)
	}

	switch resp.Candidates[0].FinishReason {
	case genai.FinishReasonSafety, genai.FinishReasonBlocklist, genai.FinishReasonProhibitedContent:
		return fmt.Errorf("%w: finish reason %s", generation.ErrContentBlocked, resp.Candidates[0].FinishReason)
	}
	if resp.Candidates[0].Content == nil {
		return fmt.Errorf("%w: empty content in response", generation.ErrInvalidResponse)
	}
	return nil
}

// parseResponse converts the JSON body into lesson sections.
func (g *Generator) parseResponse(ctx context.Context, resp *genai.GenerateContentResponse) (*generation.Response, error) {
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return nil, fmt.Errorf("%w: empty text in response", generation.ErrInvalidResponse)
	}

	var sections generation.Sections
	if err := json.Unmarshal([]byte(text), &sections); err != nil {
		g.logger.WarnContext(ctx, "Failed to parse Gemini JSON response",
			"error", err,
			"preview", preview(text))
		return nil, fmt.Errorf("%w: failed to parse JSON response: %v", generation.ErrInvalidResponse, err)
	}
	if !sections.Complete() {
		return nil, fmt.Errorf("%w: response is missing lesson sections", generation.ErrInvalidResponse)
	}

	tokens := 0
	if resp.UsageMetadata != nil {
		tokens = int(resp.UsageMetadata.CandidatesTokenCount)
	}

	g.logger.InfoContext(ctx, "Successfully parsed API response",
		"examples", len(sections.Examples),
		"tokens_used", tokens)

	return &generation.Response{
		Text:       text,
		TokensUsed: tokens,
		Sections:   &sections,
	}, nil
}

func preview(s string) string {
	if len(s) <= maxLoggedResponsePreview {
		return s
	}
	return s[:maxLoggedResponsePreview] + "..."
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

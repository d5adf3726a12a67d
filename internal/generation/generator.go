package generation

import (
	"context"
	"fmt"
)

// Request carries everything a provider needs to write one lesson.
type Request struct {
	Day             int
	Age             int
	AgeGroup        string
	Tone            string
	ToneDescription string
	Topic           string
}

// Validate checks that the request can be turned into a prompt.
func (r Request) Validate() error {
	if r.Day <= 0 {
		return fmt.Errorf("%w: day must be positive", ErrInvalidRequest)
	}
	if r.Age <= 0 {
		return fmt.Errorf("%w: age must be positive", ErrInvalidRequest)
	}
	if r.Topic == "" {
		return fmt.Errorf("%w: topic is required", ErrInvalidRequest)
	}
	return nil
}

// Sections is a lesson body split into the fields the pipeline assembles.
type Sections struct {
	Introduction string   `json:"introduction"`
	Concept      string   `json:"concept"`
	Examples     []string `json:"examples"`
	Reflection   string   `json:"reflection"`
}

// Complete reports whether every section has content.
func (s *Sections) Complete() bool {
	return s != nil && s.Introduction != "" && s.Concept != "" &&
		len(s.Examples) > 0 && s.Reflection != ""
}

// Response is the result of a successful generation call.
type Response struct {
	// Text is the raw text returned by the provider.
	Text string
	// TokensUsed is the number of output tokens billed, when the provider reports it.
	TokensUsed int
	// Sections is set when the provider returned a structured lesson.
	Sections *Sections
}

// Generator defines the interface for generating lesson bodies from a topic.
// This interface serves as a boundary between the application core and
// external AI/LLM services, following the hexagonal architecture pattern.
type Generator interface {
	// Generate writes a lesson for the request.
	//
	// Parameters:
	//   - ctx: Context for the operation; callers bound it with a timeout
	//   - req: The day, age, tone and topic to write about
	//
	// Returns:
	//   - The generated lesson text, optionally split into sections
	//   - An error if generation fails for any reason (see errors.go for specific types)
	Generate(ctx context.Context, req Request) (*Response, error)
}

package mocks

import (
	"context"
	"sync"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/generation"
)

// MockGenerator implements generation.Generator for testing
type MockGenerator struct {
	// GenerateFn allows test cases to mock the Generate behavior
	GenerateFn func(ctx context.Context, req generation.Request) (*generation.Response, error)

	// Default response values
	Response *generation.Response
	Err      error

	// Call tracking for verification
	GenerateCalls struct {
		// mu protects the call tracking state for concurrent test cases
		mu sync.Mutex

		// Count tracks how many times Generate was called
		Count int

		// Requests contains all requests passed to Generate calls
		Requests []generation.Request
	}
}

var _ generation.Generator = (*MockGenerator)(nil)

// Generate implements the generation.Generator interface
func (m *MockGenerator) Generate(ctx context.Context, req generation.Request) (*generation.Response, error) {
	m.GenerateCalls.mu.Lock()
	m.GenerateCalls.Count++
	m.GenerateCalls.Requests = append(m.GenerateCalls.Requests, req)
	m.GenerateCalls.mu.Unlock()

	if m.GenerateFn != nil {
		return m.GenerateFn(ctx, req)
	}
	return m.Response, m.Err
}

// Calls returns the number of Generate calls so far.
func (m *MockGenerator) Calls() int {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	return m.GenerateCalls.Count
}

// LastRequest returns the most recent request, if any.
func (m *MockGenerator) LastRequest() (generation.Request, bool) {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()
	if len(m.GenerateCalls.Requests) == 0 {
		return generation.Request{}, false
	}
	return m.GenerateCalls.Requests[len(m.GenerateCalls.Requests)-1], true
}

// NewMockGeneratorWithSections creates a MockGenerator that returns a structured lesson
func NewMockGeneratorWithSections(sections generation.Sections, tokens int) *MockGenerator {
	return &MockGenerator{
		Response: &generation.Response{
			Text:       sections.Concept,
			TokensUsed: tokens,
			Sections:   &sections,
		},
	}
}

// NewMockGeneratorWithText creates a MockGenerator that returns unstructured text
func NewMockGeneratorWithText(text string, tokens int) *MockGenerator {
	return &MockGenerator{
		Response: &generation.Response{Text: text, TokensUsed: tokens},
	}
}

// NewMockGeneratorWithDefaultSections creates a MockGenerator with a sample lesson
func NewMockGeneratorWithDefaultSections() *MockGenerator {
	return NewMockGeneratorWithSections(generation.Sections{
		Introduction: "Every morning the sun rises and fills the sky with light.",
		Concept:      "The sun is a star that gives Earth light and warmth.",
		Examples: []string{
			"Plants turn sunlight into food.",
			"Solar panels turn sunlight into electricity.",
		},
		Reflection: "How does the sun change your day?",
	}, 400)
}

// NewMockGeneratorWithError creates a MockGenerator that returns the specified error
func NewMockGeneratorWithError(err error) *MockGenerator {
	return &MockGenerator{
		Err: err,
	}
}

// MockGeneratorThatFails creates a MockGenerator that simulates a generation failure
func MockGeneratorThatFails() *MockGenerator {
	return NewMockGeneratorWithError(generation.ErrGenerationFailed)
}

// MockGeneratorWithContentBlocked creates a MockGenerator that simulates content being blocked
func MockGeneratorWithContentBlocked() *MockGenerator {
	return NewMockGeneratorWithError(generation.ErrContentBlocked)
}

// MockGeneratorThatHangs creates a MockGenerator that blocks until its context ends
func MockGeneratorThatHangs() *MockGenerator {
	return &MockGenerator{
		GenerateFn: func(ctx context.Context, _ generation.Request) (*generation.Response, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}
}

// Reset resets the call tracking state
func (m *MockGenerator) Reset() {
	m.GenerateCalls.mu.Lock()
	defer m.GenerateCalls.mu.Unlock()

	m.GenerateCalls.Count = 0
	m.GenerateCalls.Requests = nil
}

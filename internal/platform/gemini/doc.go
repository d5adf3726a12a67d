// Package gemini provides an implementation of the generation.Generator interface
// that uses Google's Gemini API to write lesson bodies.
//
// This package is an infrastructure adapter: it connects the synthesis engine
// to the external Gemini service without exposing the details of that service
// to the core application.
//
// Key components:
//
// 1. Generator:
//   - Implements the generation.Generator interface
//   - Renders the lesson prompt with generation.BuildPrompt
//   - Requests JSON output constrained by a response schema
//
// 2. Response Processing:
//   - Parses the introduction, concept, examples and reflection sections
//   - Reports output token usage for budget tracking
//
// 3. Error Handling:
//   - Retries transient failures with exponential backoff and jitter
//   - Maps safety blocks to generation.ErrContentBlocked
//   - Maps malformed output to generation.ErrInvalidResponse
package gemini

// Package generation defines the contract between the synthesis pipeline and
// external LLM services that can write a lesson body. It abstracts the
// details of any specific provider (Gemini lives in internal/platform/gemini)
// so the pipeline can treat generation as an optional, fallible step.
package generation

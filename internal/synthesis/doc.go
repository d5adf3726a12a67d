// Package synthesis orchestrates the lesson pipeline.
//
// An Engine turns a validated (day, age, tone, language) request into a
// SynthesisResult: it checks the cache, loads the curriculum record, adapts
// it for the learner's age and the narrator's tone, optionally asks an
// external generator for the lesson body, and assembles the final lesson
// with its metadata. Every failure after validation degrades to a fallback
// lesson instead of an error.
package synthesis

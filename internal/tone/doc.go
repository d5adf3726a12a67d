// Package tone applies a narrator personality to age-adapted lesson text.
//
// Each tone profile carries greetings, transitions, conclusions, vocabulary
// tables and a punctuation policy. Phrases are chosen through a Selector so
// that production can vary them while tests stay reproducible.
package tone

package curriculum

import "github.com/iLearnHow/mynextlesson-synthesis/internal/domain"

// Fallback record content.
const (
	FallbackTitle      = "Learning - The Journey Never Ends"
	FallbackConcept    = "The sun is the center of our solar system and provides energy for life on Earth."
	FallbackReflection = "How does the sun affect your daily life?"
)

var fallbackExamples = []string{
	"Plants use sunlight to make food through photosynthesis.",
	"Solar panels convert sunlight into electricity.",
	"The sun's gravity keeps planets in orbit.",
}

// FallbackRecord returns the record served when day cannot be loaded.
func FallbackRecord(day int) domain.CurriculumRecord {
	return domain.CurriculumRecord{
		Day:        day,
		Title:      FallbackTitle,
		Concept:    FallbackConcept,
		Examples:   append([]string(nil), fallbackExamples...),
		Reflection: FallbackReflection,
		IsFallback: true,
	}
}

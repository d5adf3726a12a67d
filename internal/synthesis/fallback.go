package synthesis

import (
	"time"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/domain"
)

// Fallback lesson content.
const (
	FallbackTitle        = "Learning Content"
	FallbackIntroduction = "Welcome to today's lesson. We're here to learn together."
	FallbackConcept      = "Today we'll explore an important concept that will help you grow."
	FallbackExample      = "Think about how this applies to your daily life."
	FallbackReflection   = "What did you learn today?"
	FallbackDuration     = "5 minutes"
)

// FallbackAvatar presents fallback lessons.
var FallbackAvatar = domain.Avatar{Name: "Teacher", Personality: "Supportive"}

// FallbackResult is the generic lesson served when synthesis fails after
// validation. msg is recorded in the metadata.
func FallbackResult(req domain.SynthesisRequest, msg string, now time.Time) domain.SynthesisResult {
	return domain.SynthesisResult{
		Title:        FallbackTitle,
		Introduction: FallbackIntroduction,
		Concept:      FallbackConcept,
		Examples:     []string{FallbackExample},
		Reflection:   FallbackReflection,
		Metadata: domain.Metadata{
			Day:                req.Day,
			Age:                req.Age,
			Tone:               req.Tone,
			Language:           req.Language,
			DurationLabel:      FallbackDuration,
			ComplexityLabel:    ComplexityModerate,
			Avatar:             FallbackAvatar,
			GeneratedAtEpochMs: now.UnixMilli(),
			IsFallback:         true,
			Source:             domain.SourceFallback,
			Error:              msg,
		},
	}
}

package synthesis

import (
	"fmt"
	"math"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/age"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/domain"
)

// Complexity labels, least to most demanding.
const (
	ComplexityVerySimple = "very_simple"
	ComplexitySimple     = "simple"
	ComplexityModerate   = "moderate"
	ComplexityAdvanced   = "advanced"
	ComplexityExpert     = "expert"
)

var complexityScale = []string{
	ComplexityVerySimple,
	ComplexitySimple,
	ComplexityModerate,
	ComplexityAdvanced,
	ComplexityExpert,
}

var complexityRank = map[string]int{
	age.ComplexitySimple:   0,
	age.ComplexityModerate: 1,
	age.ComplexityComplex:  2,
	age.ComplexityAdvanced: 3,
	age.ComplexityExpert:   4,
	age.ComplexityRefined:  4,
}

// Duration bounds in minutes.
const (
	minDurationMinutes = 3
	maxDurationMinutes = 10
)

// DurationLabel returns half the attention span, clamped to [3, 10] minutes.
func DurationLabel(attentionSpanMinutes int) string {
	minutes := math.Round(float64(attentionSpanMinutes) / 2)
	minutes = math.Max(minDurationMinutes, math.Min(maxDurationMinutes, minutes))
	return fmt.Sprintf("%d minutes", int(minutes))
}

// ComplexityLabel maps a profile's complexity level to a label. The
// analytical tone presents material one step harder.
func ComplexityLabel(level string, t domain.Tone) string {
	rank, ok := complexityRank[level]
	if !ok {
		return ComplexityModerate
	}
	if t == domain.ToneAnalytical {
		rank++
	}
	if rank >= len(complexityScale) {
		rank = len(complexityScale) - 1
	}
	return complexityScale[rank]
}

package age

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/domain"
)

// maxAttentionFactor caps how far age can stretch a profile's base attention span.
const maxAttentionFactor = 1.2

// Context is a curriculum record adapted for one age.
type Context struct {
	Profile              Profile
	Age                  int
	BaseTitle            string
	IntroTemplate        string
	ConceptTemplate      string
	Examples             []string
	ReflectionTemplate   string
	AttentionSpanMinutes int
	IsFallback           bool
}

// Contextualizer adapts curriculum records to a learner's age.
type Contextualizer struct {
	logger *slog.Logger
}

// NewContextualizer creates a Contextualizer. A nil logger uses slog.Default().
func NewContextualizer(logger *slog.Logger) *Contextualizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Contextualizer{logger: logger.With("component", "age_contextualizer")}
}

// Contextualize adapts rec for age. It never panics; an internal fault
// yields FallbackContext. A fallback record yields a context flagged as
// fallback as well.
func (c *Contextualizer) Contextualize(age int, rec domain.CurriculumRecord) (out Context) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("age contextualization failed",
				"age", age,
				"day", rec.Day,
				"panic", fmt.Sprint(r))
			out = FallbackContext(age, rec)
		}
	}()

	profile := ProfileFor(age)
	title := rec.Title
	if title == "" {
		title = defaultTitle
	}
	concept := rec.Concept
	if concept == "" {
		concept = defaultConcept
	}

	return Context{
		Profile:              profile,
		Age:                  age,
		BaseTitle:            adaptTitle(title, profile.Bucket),
		IntroTemplate:        adaptIntro(concept, profile.Bucket),
		ConceptTemplate:      adaptConcept(concept, profile.Bucket),
		Examples:             adaptExamples(rec.Examples, profile.Bucket),
		ReflectionTemplate:   adaptReflection(rec.Reflection, profile.Bucket),
		AttentionSpanMinutes: AttentionSpan(age),
		IsFallback:           rec.IsFallback,
	}
}

// AttentionSpan returns round(base × min(age/10, 1.2)) for the profile of age.
func AttentionSpan(age int) int {
	age = Clamp(age)
	factor := math.Min(float64(age)/10, maxAttentionFactor)
	return int(math.Round(float64(ProfileFor(age).AttentionSpanMinutes) * factor))
}

// FallbackContext returns an unadapted adulthood context for rec.
func FallbackContext(age int, rec domain.CurriculumRecord) Context {
	title := rec.Title
	if title == "" {
		title = defaultTitle
	}
	concept := rec.Concept
	if concept == "" {
		concept = defaultConcept
	}
	examples := append([]string(nil), rec.Examples...)
	if len(examples) == 0 {
		examples = []string{defaultExample}
	}
	reflection := rec.Reflection
	if reflection == "" {
		reflection = defaultReflection
	}
	profile := profileByBucket(Adulthood)
	return Context{
		Profile:              profile,
		Age:                  age,
		BaseTitle:            title,
		IntroTemplate:        concept,
		ConceptTemplate:      concept,
		Examples:             examples,
		ReflectionTemplate:   reflection,
		AttentionSpanMinutes: profile.AttentionSpanMinutes,
		IsFallback:           true,
	}
}

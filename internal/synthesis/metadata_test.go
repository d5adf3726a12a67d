package synthesis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/age"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/domain"
)

func TestDurationLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		attention int
		want      string
	}{
		{0, "3 minutes"},
		{4, "3 minutes"},
		{7, "4 minutes"},
		{11, "6 minutes"},
		{20, "10 minutes"},
		{42, "10 minutes"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DurationLabel(tt.attention), "attention %d", tt.attention)
	}
}

func TestComplexityLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		tone  domain.Tone
		want  string
	}{
		{age.ComplexitySimple, domain.ToneNurturing, ComplexityVerySimple},
		{age.ComplexityModerate, domain.ToneEnergetic, ComplexitySimple},
		{age.ComplexityComplex, domain.ToneNurturing, ComplexityModerate},
		{age.ComplexityAdvanced, domain.ToneNurturing, ComplexityAdvanced},
		{age.ComplexityExpert, domain.ToneNurturing, ComplexityExpert},
		{age.ComplexityRefined, domain.ToneEnergetic, ComplexityExpert},
		{age.ComplexitySimple, domain.ToneAnalytical, ComplexitySimple},
		{age.ComplexityAdvanced, domain.ToneAnalytical, ComplexityExpert},
		{age.ComplexityRefined, domain.ToneAnalytical, ComplexityExpert},
		{"unknown", domain.ToneAnalytical, ComplexityModerate},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ComplexityLabel(tt.level, tt.tone), "%s/%s", tt.level, tt.tone)
	}
}

func TestLocalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hola. Welcome.", localizeIntro(domain.LanguageSpanish, "Welcome."))
	assert.Equal(t, "Maintenant, the sun shines.", localizeConcept(domain.LanguageFrench, "the sun shines."))
	assert.Equal(t, "En conclusión, what did you see?", localizeReflection(domain.LanguageSpanish, "what did you see?"))
	assert.Equal(t, "Welcome.", localizeIntro(domain.LanguageEnglish, "Welcome."))
	assert.Empty(t, localizeConcept(domain.LanguageFrench, ""))
}

package synthesis

import (
	"github.com/iLearnHow/mynextlesson-synthesis/internal/domain"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/textutil"
)

// languagePattern holds the connective phrases of one output language.
type languagePattern struct {
	Greeting   string
	Transition string
	Conclusion string
}

var languagePatterns = map[domain.Language]languagePattern{
	domain.LanguageEnglish: {Greeting: "Hello", Transition: "Now", Conclusion: "In conclusion"},
	domain.LanguageSpanish: {Greeting: "Hola", Transition: "Ahora", Conclusion: "En conclusión"},
	domain.LanguageFrench:  {Greeting: "Bonjour", Transition: "Maintenant", Conclusion: "En conclusion"},
}

func patternFor(lang domain.Language) languagePattern {
	if p, ok := languagePatterns[lang]; ok {
		return p
	}
	return languagePatterns[domain.LanguageEnglish]
}

// The template text is English; other languages get their connectives on
// the introduction, concept and reflection.
func localizeIntro(lang domain.Language, s string) string {
	if lang == domain.LanguageEnglish || s == "" {
		return s
	}
	return textutil.JoinLead(patternFor(lang).Greeting, ". ", s)
}

func localizeConcept(lang domain.Language, s string) string {
	if lang == domain.LanguageEnglish || s == "" {
		return s
	}
	return textutil.JoinLead(patternFor(lang).Transition, ", ", s)
}

func localizeReflection(lang domain.Language, s string) string {
	if lang == domain.LanguageEnglish || s == "" {
		return s
	}
	return textutil.JoinLead(patternFor(lang).Conclusion, ", ", s)
}

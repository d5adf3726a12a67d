package domain

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Age limits accepted at the synthesis boundary.
const (
	MinAge = 5
	MaxAge = 65
)

// Tone identifies a narrator personality.
type Tone string

// Supported tones.
const (
	ToneNurturing  Tone = "nurturing"
	ToneEnergetic  Tone = "energetic"
	ToneAnalytical Tone = "analytical"
)

// Tones lists every supported tone in a stable order.
var Tones = []Tone{ToneNurturing, ToneEnergetic, ToneAnalytical}

// Valid reports whether t is a supported tone.
func (t Tone) Valid() bool {
	switch t {
	case ToneNurturing, ToneEnergetic, ToneAnalytical:
		return true
	}
	return false
}

// Language identifies the output language of a lesson.
type Language string

// Supported languages.
const (
	LanguageEnglish Language = "english"
	LanguageSpanish Language = "spanish"
	LanguageFrench  Language = "french"
)

// Languages lists every supported language in a stable order.
var Languages = []Language{LanguageEnglish, LanguageSpanish, LanguageFrench}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	switch l {
	case LanguageEnglish, LanguageSpanish, LanguageFrench:
		return true
	}
	return false
}

var (
	languageTags    = []language.Tag{language.English, language.Spanish, language.French}
	languageMatcher = language.NewMatcher(languageTags)
	languageByBase  = map[language.Base]Language{}
)

func init() {
	for i, tag := range languageTags {
		base, _ := tag.Base()
		languageByBase[base] = Languages[i]
	}
}

// ParseLanguage accepts a canonical language name ("spanish") or a BCP 47
// tag ("es", "fr-CA") and returns the matching supported Language.
func ParseLanguage(s string) (Language, error) {
	normalized := Language(strings.ToLower(strings.TrimSpace(s)))
	if normalized == "" {
		return "", fmt.Errorf("%w: empty", ErrUnsupportedLanguage)
	}
	if normalized.Valid() {
		return normalized, nil
	}

	tag, err := language.Parse(string(normalized))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}

	_, idx, confidence := languageMatcher.Match(tag)
	if confidence < language.High {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}

	base, _ := languageTags[idx].Base()
	return languageByBase[base], nil
}

// SynthesisRequest asks for one personalized lesson.
type SynthesisRequest struct {
	Day      int      `json:"day"`
	Age      int      `json:"age"`
	Tone     Tone     `json:"tone"`
	Language Language `json:"language"`
}

// NewSynthesisRequest normalizes tone and language strings and validates
// the resulting request.
func NewSynthesisRequest(day, age int, tone, lang string) (SynthesisRequest, error) {
	req := SynthesisRequest{
		Day:  day,
		Age:  age,
		Tone: Tone(strings.ToLower(strings.TrimSpace(tone))),
	}

	if lang == "" {
		req.Language = LanguageEnglish
	} else if parsed, err := ParseLanguage(lang); err == nil {
		req.Language = parsed
	} else {
		req.Language = Language(lang)
	}

	if err := req.Validate(); err != nil {
		return SynthesisRequest{}, err
	}
	return req, nil
}

// Validate checks the request fields in order and reports the first invalid one.
func (r SynthesisRequest) Validate() error {
	if r.Day < FirstDay || r.Day > LastDay {
		return NewValidationError("day", "must be between %d and %d, got %d", FirstDay, LastDay, r.Day)
	}
	if r.Age < MinAge || r.Age > MaxAge {
		return NewValidationError("age", "must be between %d and %d, got %d", MinAge, MaxAge, r.Age)
	}
	if !r.Tone.Valid() {
		return NewValidationError("tone", "must be one of %v, got %q", Tones, r.Tone)
	}
	if !r.Language.Valid() {
		return NewValidationError("language", "must be one of %v, got %q", Languages, r.Language)
	}
	return nil
}

// CacheKey returns the composite key "day-age-tone-language".
func (r SynthesisRequest) CacheKey() string {
	return fmt.Sprintf("%d-%d-%s-%s", r.Day, r.Age, r.Tone, r.Language)
}

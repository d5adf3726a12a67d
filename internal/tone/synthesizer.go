package tone

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/age"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/domain"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/textutil"
)

// Context is age-adapted content rewritten in a tone's voice.
type Context struct {
	Profile      Profile
	Age          age.Context
	Title        string
	Introduction string
	Concept      string
	Examples     []string
	Reflection   string
	Transitions  []string
	Affirmations []string
	Conclusions  []string
	IsFallback   bool
}

// Synthesizer rewrites age-adapted content for a tone.
type Synthesizer struct {
	selector Selector
	logger   *slog.Logger
}

// NewSynthesizer creates a Synthesizer. A nil selector picks randomly and a
// nil logger uses slog.Default().
func NewSynthesizer(selector Selector, logger *slog.Logger) *Synthesizer {
	if selector == nil {
		selector = RandomSelector{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{
		selector: selector,
		logger:   logger.With("component", "tone_synthesizer"),
	}
}

// Synthesize applies tone t to actx. Unrecognized tones use the neutral
// profile and the result is flagged as fallback; so is any result built
// from a fallback age context.
func (s *Synthesizer) Synthesize(t domain.Tone, actx age.Context) (out Context) {
	profile, known := ProfileFor(t)
	if !known {
		s.logger.Warn("unknown tone, using neutral profile", "tone", t)
	}

	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("tone synthesis failed",
				"tone", t,
				"panic", fmt.Sprint(r))
			out = s.plain(neutral, actx)
			out.IsFallback = true
		}
	}()

	out = s.apply(profile, actx)
	out.IsFallback = !known || actx.IsFallback
	return out
}

func (s *Synthesizer) apply(p Profile, actx age.Context) Context {
	examples := make([]string, len(actx.Examples))
	for i, ex := range actx.Examples {
		examples[i] = s.example(p, ex)
	}
	return Context{
		Profile:      p,
		Age:          actx,
		Title:        title(p, actx.BaseTitle),
		Introduction: s.intro(p, actx.IntroTemplate),
		Concept:      concept(p, actx.ConceptTemplate),
		Examples:     examples,
		Reflection:   s.reflection(p, actx.ReflectionTemplate),
		Transitions:  append([]string(nil), p.Transitions...),
		Affirmations: append([]string(nil), p.Affirmations...),
		Conclusions:  append([]string(nil), p.Conclusions...),
	}
}

// plain copies the age-adapted text with only the punctuation policy applied.
func (s *Synthesizer) plain(p Profile, actx age.Context) Context {
	examples := make([]string, len(actx.Examples))
	for i, ex := range actx.Examples {
		examples[i] = textutil.Calm(ex)
	}
	return Context{
		Profile:      p,
		Age:          actx,
		Title:        textutil.Calm(actx.BaseTitle),
		Introduction: textutil.Calm(actx.IntroTemplate),
		Concept:      textutil.Calm(actx.ConceptTemplate),
		Examples:     examples,
		Reflection:   textutil.Calm(actx.ReflectionTemplate),
	}
}

func title(p Profile, base string) string {
	t := strings.TrimSpace(p.TitleModifier + base)
	if p.punctuation == punctuationPlain {
		t = textutil.Calm(t)
	}
	return t
}

func (s *Synthesizer) intro(p Profile, tmpl string) string {
	if tmpl == "" {
		return ""
	}
	intro := textutil.JoinLead(pick(s.selector, p.Greetings), "! ", tmpl)
	intro = p.vocabulary.Replace(intro)
	intro = p.introVocabulary.Replace(intro)
	switch p.punctuation {
	case punctuationGentle:
		intro = textutil.ReplaceSentenceEnds(intro, ", dear.")
	case punctuationExcited:
		intro = textutil.Excite(intro)
	case punctuationPlain:
		intro = textutil.Calm(intro)
	}
	return intro
}

func concept(p Profile, tmpl string) string {
	if tmpl == "" {
		return ""
	}
	c := p.vocabulary.Replace(tmpl)
	switch p.punctuation {
	case punctuationGentle:
		c = textutil.ReplaceSentenceEnds(c, ", you see.")
	case punctuationExcited:
		c = textutil.Excite(c)
	case punctuationPlain:
		c = textutil.Calm(c)
	}
	return c
}

func (s *Synthesizer) example(p Profile, ex string) string {
	lead := strings.TrimRight(pick(s.selector, p.Transitions), "!")
	out := textutil.JoinLead(lead, ", ", ex)
	out = p.vocabulary.Replace(out)
	switch p.punctuation {
	case punctuationGentle:
		out = textutil.ReplaceSentenceEnds(out, ", dear.")
	case punctuationExcited:
		out = textutil.Excite(out)
	case punctuationPlain:
		out = textutil.Calm(out)
	}
	return out
}

func (s *Synthesizer) reflection(p Profile, tmpl string) string {
	if tmpl == "" {
		return ""
	}
	conclusion := pick(s.selector, p.Conclusions)
	if conclusion != "" && !strings.ContainsAny(conclusion[len(conclusion)-1:], ".!?") {
		conclusion += "."
	}
	r := strings.TrimSpace(tmpl + " " + conclusion)
	r = p.reflectionVocabulary.Replace(r)
	switch p.punctuation {
	case punctuationGentle:
		r = textutil.ReplaceQuestionEnds(r, ", dear?")
	case punctuationPlain:
		r = textutil.Calm(r)
	}
	return r
}

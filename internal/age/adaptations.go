package age

import (
	"fmt"

	"github.com/iLearnHow/mynextlesson-synthesis/internal/textutil"
)

type titleStyle struct {
	prefix   string
	suffix   string
	simplify bool
}

var titleStyles = map[Bucket]titleStyle{
	EarlyChildhood:  {prefix: "Let's Learn About: ", suffix: " (Fun!)", simplify: true},
	MiddleChildhood: {prefix: "Discover: ", simplify: true},
	Adolescence:     {prefix: "Exploring: "},
	YoungAdult:      {prefix: "Understanding: "},
	Adulthood:       {},
	MatureAdult:     {prefix: "Wisdom of: "},
}

var titleSimplifier = textutil.NewReplacer(
	textutil.Substitution{From: "magnificent", To: "amazing"},
	textutil.Substitution{From: "extraordinary", To: "special"},
	textutil.Substitution{From: "phenomenon", To: "thing"},
	textutil.Substitution{From: "fundamental", To: "important"},
	textutil.Substitution{From: "comprehensive", To: "complete"},
	textutil.Substitution{From: "sophisticated", To: "smart"},
)

// introTemplates wrap the base concept; %s is replaced with it.
var introTemplates = map[Bucket]string{
	EarlyChildhood:  "Hello little friend! %s This is going to be so much fun!",
	MiddleChildhood: "Hey there! %s Ready to discover something cool?",
	Adolescence:     "Welcome! %s Let's dive into this fascinating topic.",
	YoungAdult:      "Greetings! %s We'll explore this in depth today.",
	Adulthood:       "%s Let's examine this important concept.",
	MatureAdult:     "Welcome to our exploration. %s Let's reflect on this together.",
}

var conceptAdapters = map[Bucket]*textutil.Replacer{
	EarlyChildhood: textutil.NewReplacer(
		textutil.Substitution{From: "solar system", To: "space around the sun"},
		textutil.Substitution{From: "nuclear fusion", To: "how the sun makes light"},
		textutil.Substitution{From: "photosynthesis", To: "how plants make food"},
		textutil.Substitution{From: "gravity", To: "what keeps things on the ground"},
		textutil.Substitution{From: "energy", To: "power that makes things work"},
	),
	MiddleChildhood: textutil.NewReplacer(
		textutil.Substitution{From: "nuclear fusion", To: "the sun's power source"},
		textutil.Substitution{From: "photosynthesis", To: "how plants use sunlight"},
		textutil.Substitution{From: "gravity", To: "the force that pulls things together"},
		textutil.Substitution{From: "energy", To: "the ability to do work"},
	),
	YoungAdult: textutil.NewReplacer(
		textutil.Substitution{From: "sun", To: "our nearest star, the sun"},
		textutil.Substitution{From: "energy", To: "energy in its various forms"},
		textutil.Substitution{From: "light", To: "electromagnetic radiation"},
	),
	Adulthood: textutil.NewReplacer(
		textutil.Substitution{From: "sun", To: "our G-type main-sequence star"},
		textutil.Substitution{From: "energy", To: "energy across multiple domains"},
		textutil.Substitution{From: "light", To: "electromagnetic radiation across the spectrum"},
	),
	MatureAdult: textutil.NewReplacer(
		textutil.Substitution{From: "sun", To: "the celestial body that sustains all life"},
		textutil.Substitution{From: "energy", To: "the fundamental force that drives existence"},
		textutil.Substitution{From: "light", To: "the electromagnetic manifestation of energy"},
	),
}

var examplePrefixes = map[Bucket]string{
	EarlyChildhood:  "Think about: ",
	MiddleChildhood: "For example: ",
	Adolescence:     "Consider this: ",
	YoungAdult:      "An illustration: ",
	Adulthood:       "A practical example: ",
	MatureAdult:     "Reflect on this: ",
}

var reflectionQuestions = map[Bucket]string{
	EarlyChildhood:  "What was your favorite part? Can you tell me about it?",
	MiddleChildhood: "What did you find most interesting? Why?",
	Adolescence:     "How does this connect to what you already know?",
	YoungAdult:      "What implications does this have for your understanding?",
	Adulthood:       "How might you apply this knowledge in practice?",
	MatureAdult:     "What deeper insights does this reveal about the nature of things?",
}

// Defaults used when a record leaves a field empty.
const (
	defaultConcept    = "This is an important concept to understand."
	defaultExample    = "This concept applies to many things in life."
	defaultReflection = "What did you learn today?"
	defaultTitle      = "Learning Content"
)

func adaptTitle(title string, b Bucket) string {
	style := titleStyles[b]
	if style.simplify {
		title = titleSimplifier.Replace(title)
	}
	return style.prefix + title + style.suffix
}

func adaptIntro(concept string, b Bucket) string {
	tmpl, ok := introTemplates[b]
	if !ok {
		tmpl = introTemplates[Adulthood]
	}
	return fmt.Sprintf(tmpl, concept)
}

// adaptConcept simplifies for younger stages, enriches for older ones and
// leaves adolescence untouched.
func adaptConcept(concept string, b Bucket) string {
	return conceptAdapters[b].Replace(concept)
}

func adaptExamples(examples []string, b Bucket) []string {
	if len(examples) == 0 {
		examples = []string{defaultExample}
	}
	prefix := examplePrefixes[b]
	out := make([]string, len(examples))
	for i, ex := range examples {
		out[i] = prefix + ex
	}
	return out
}

func adaptReflection(reflection string, b Bucket) string {
	question, ok := reflectionQuestions[b]
	if !ok {
		if reflection == "" {
			return defaultReflection
		}
		return reflection
	}
	if reflection == "" {
		return question
	}
	return reflection + " " + question
}

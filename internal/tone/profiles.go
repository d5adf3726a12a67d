package tone

import (
	"github.com/iLearnHow/mynextlesson-synthesis/internal/domain"
	"github.com/iLearnHow/mynextlesson-synthesis/internal/textutil"
)

// NeutralName is the profile name reported for unrecognized tones.
const NeutralName = "neutral"

type punctuation int

const (
	punctuationGentle punctuation = iota
	punctuationExcited
	punctuationPlain
)

// Profile is the personality applied by one tone.
type Profile struct {
	Name            string
	Avatar          domain.Avatar
	Description     string
	TitleModifier   string
	IntroStyle      string
	ConceptStyle    string
	ExampleStyle    string
	ReflectionStyle string
	Greetings       []string
	Transitions     []string
	Affirmations    []string
	Conclusions     []string

	vocabulary           *textutil.Replacer
	introVocabulary      *textutil.Replacer
	reflectionVocabulary *textutil.Replacer
	punctuation          punctuation
}

func sub(from, to string) textutil.Substitution {
	return textutil.Substitution{From: from, To: to}
}

var nurturing = Profile{
	Name:            string(domain.ToneNurturing),
	Avatar:          domain.Avatar{Name: "Grace", Personality: "Warm and nurturing"},
	Description:     "warm, nurturing, and patient with gentle explanations and encouraging words",
	TitleModifier:   "Warm ",
	IntroStyle:      "gentle and caring",
	ConceptStyle:    "patient and nurturing",
	ExampleStyle:    "relatable and comforting",
	ReflectionStyle: "thoughtful and encouraging",
	Greetings:       []string{"Hello dear", "Welcome sweetheart", "Come here", "Let's sit together"},
	Transitions:     []string{"Now, dear", "You see", "Remember", "Just like"},
	Affirmations:    []string{"That's wonderful", "You're doing great", "I'm so proud"},
	Conclusions:     []string{"There you go", "See how that works", "Isn't that nice", "You've got it"},
	vocabulary: textutil.NewReplacer(
		sub("important", "precious"),
		sub("big", "wonderful"),
		sub("good", "lovely"),
		sub("help", "guide"),
		sub("learn", "discover"),
	),
	introVocabulary: textutil.NewReplacer(
		sub("amazing", "wonderful"),
		sub("cool", "wonderful"),
		sub("awesome", "wonderful"),
	),
	reflectionVocabulary: textutil.NewReplacer(
		sub("think", "wonder"),
		sub("consider", "wonder"),
	),
	punctuation: punctuationGentle,
}

var energetic = Profile{
	Name:            string(domain.ToneEnergetic),
	Avatar:          domain.Avatar{Name: "Ken", Personality: "Energetic and playful"},
	Description:     "energetic, exciting, and engaging with lots of enthusiasm and interactive elements",
	TitleModifier:   "Amazing ",
	IntroStyle:      "exciting and energetic",
	ConceptStyle:    "dynamic and engaging",
	ExampleStyle:    "cool and fascinating",
	ReflectionStyle: "creative and inspiring",
	Greetings:       []string{"Hey there!", "What's up!", "Ready to rock?", "Let's do this!"},
	Transitions:     []string{"Check this out!", "Here's the cool part", "Get ready", "Boom!"},
	Affirmations:    []string{"Awesome!", "You've got this!", "That's incredible!"},
	Conclusions:     []string{"And that's how it's done!", "Pretty cool, right?", "You nailed it!", "Mission accomplished!"},
	vocabulary: textutil.NewReplacer(
		sub("important", "awesome"),
		sub("big", "massive"),
		sub("good", "incredible"),
		sub("help", "power up"),
		sub("learn", "unlock"),
	),
	introVocabulary: textutil.NewReplacer(
		sub("wonderful", "awesome"),
		sub("nice", "awesome"),
		sub("good", "awesome"),
	),
	reflectionVocabulary: textutil.NewReplacer(
		sub("wonder", "think about"),
		sub("ponder", "think about"),
	),
	punctuation: punctuationExcited,
}

var analytical = Profile{
	Name:            string(domain.ToneAnalytical),
	Avatar:          domain.Avatar{Name: "Dr. Smith", Personality: "Clear and educational"},
	Description:     "clear, educational, and balanced with straightforward explanations",
	IntroStyle:      "clear and educational",
	ConceptStyle:    "precise and informative",
	ExampleStyle:    "practical and relevant",
	ReflectionStyle: "analytical and objective",
	Greetings:       []string{"Welcome", "Good day", "Let's begin", "Today we'll examine"},
	Transitions:     []string{"Furthermore", "Additionally", "Moreover", "Consequently"},
	Affirmations:    []string{"Correct", "Accurate", "Precise", "Well-observed"},
	Conclusions:     []string{"In conclusion", "Therefore", "Thus", "Consequently"},
	vocabulary: textutil.NewReplacer(
		sub("precious", "important"),
		sub("wonderful", "significant"),
		sub("lovely", "beneficial"),
		sub("guide", "assist"),
		sub("discover", "learn"),
	),
	introVocabulary: textutil.NewReplacer(
		sub("awesome", "significant"),
		sub("amazing", "significant"),
		sub("wonderful", "significant"),
	),
	reflectionVocabulary: textutil.NewReplacer(
		sub("think about", "consider"),
		sub("wonder", "consider"),
	),
	punctuation: punctuationPlain,
}

var profiles = map[domain.Tone]Profile{
	domain.ToneNurturing:  nurturing,
	domain.ToneEnergetic:  energetic,
	domain.ToneAnalytical: analytical,
}

// neutral is served for unrecognized tones.
var neutral = func() Profile {
	p := analytical
	p.Name = NeutralName
	return p
}()

// ProfileFor returns the profile for t and whether t is recognized.
func ProfileFor(t domain.Tone) (Profile, bool) {
	p, ok := profiles[t]
	if !ok {
		return neutral, false
	}
	return p, true
}

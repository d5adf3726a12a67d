package age

// Bucket names a cognitive stage.
type Bucket string

// Cognitive stages, youngest first.
const (
	EarlyChildhood  Bucket = "early_childhood"
	MiddleChildhood Bucket = "middle_childhood"
	Adolescence     Bucket = "adolescence"
	YoungAdult      Bucket = "young_adult"
	Adulthood       Bucket = "adulthood"
	MatureAdult     Bucket = "mature_adult"
)

// Complexity levels attached to profiles.
const (
	ComplexitySimple   = "simple"
	ComplexityModerate = "moderate"
	ComplexityComplex  = "complex"
	ComplexityAdvanced = "advanced"
	ComplexityExpert   = "expert"
	ComplexityRefined  = "refined"
)

// Profile describes how to pitch content for one stage.
type Profile struct {
	Bucket               Bucket   `json:"bucket"`
	MinAge               int      `json:"min_age"`
	MaxAge               int      `json:"max_age"`
	AttentionSpanMinutes int      `json:"attention_span_base_minutes"`
	VocabularyLevel      string   `json:"vocabulary_level"`
	AbstractionLevel     string   `json:"abstraction_level"`
	ExampleStyles        []string `json:"example_styles"`
	ComplexityLevel      string   `json:"complexity_level"`
}

// Contains reports whether age falls within the profile's range.
func (p Profile) Contains(age int) bool {
	return age >= p.MinAge && age <= p.MaxAge
}

var profiles = []Profile{
	{
		Bucket: EarlyChildhood, MinAge: 5, MaxAge: 8,
		AttentionSpanMinutes: 15, VocabularyLevel: "basic", AbstractionLevel: "concrete",
		ExampleStyles:   []string{"visual", "hands-on", "story-based"},
		ComplexityLevel: ComplexitySimple,
	},
	{
		Bucket: MiddleChildhood, MinAge: 9, MaxAge: 12,
		AttentionSpanMinutes: 25, VocabularyLevel: "intermediate", AbstractionLevel: "developing",
		ExampleStyles:   []string{"real-world", "comparative", "experiential"},
		ComplexityLevel: ComplexityModerate,
	},
	{
		Bucket: Adolescence, MinAge: 13, MaxAge: 18,
		AttentionSpanMinutes: 35, VocabularyLevel: "advanced", AbstractionLevel: "abstract",
		ExampleStyles:   []string{"scientific", "hypothetical", "critical"},
		ComplexityLevel: ComplexityComplex,
	},
	{
		Bucket: YoungAdult, MinAge: 19, MaxAge: 30,
		AttentionSpanMinutes: 45, VocabularyLevel: "specialized", AbstractionLevel: "sophisticated",
		ExampleStyles:   []string{"professional", "theoretical", "practical"},
		ComplexityLevel: ComplexityAdvanced,
	},
	{
		Bucket: Adulthood, MinAge: 31, MaxAge: 50,
		AttentionSpanMinutes: 40, VocabularyLevel: "expert", AbstractionLevel: "nuanced",
		ExampleStyles:   []string{"efficient", "practical", "strategic"},
		ComplexityLevel: ComplexityExpert,
	},
	{
		Bucket: MatureAdult, MinAge: 51, MaxAge: 65,
		AttentionSpanMinutes: 35, VocabularyLevel: "refined", AbstractionLevel: "wisdom-based",
		ExampleStyles:   []string{"philosophical", "life-experience", "synthesis"},
		ComplexityLevel: ComplexityRefined,
	},
}

// Lowest and highest ages covered by a profile.
const (
	MinAge = 5
	MaxAge = 65
)

// Profiles returns a copy of every profile, youngest first.
func Profiles() []Profile {
	out := make([]Profile, len(profiles))
	for i, p := range profiles {
		out[i] = p.clone()
	}
	return out
}

// ProfileFor returns the profile for age after clamping it to [MinAge, MaxAge].
// It falls back to the adulthood profile if no range matches.
func ProfileFor(age int) Profile {
	age = Clamp(age)
	for _, p := range profiles {
		if p.Contains(age) {
			return p.clone()
		}
	}
	return profileByBucket(Adulthood)
}

// Clamp limits age to the covered span.
func Clamp(age int) int {
	if age < MinAge {
		return MinAge
	}
	if age > MaxAge {
		return MaxAge
	}
	return age
}

func profileByBucket(b Bucket) Profile {
	for _, p := range profiles {
		if p.Bucket == b {
			return p.clone()
		}
	}
	return profiles[len(profiles)-2].clone()
}

func (p Profile) clone() Profile {
	p.ExampleStyles = append([]string(nil), p.ExampleStyles...)
	return p
}

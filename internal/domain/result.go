package domain

// Source records which path produced a lesson body.
type Source string

// Lesson body sources.
const (
	SourceTemplate Source = "template"
	SourceExternal Source = "external"
	SourceFallback Source = "fallback"
)

// Avatar describes the narrator presenting a lesson.
type Avatar struct {
	Name        string `json:"name"`
	Personality string `json:"personality"`
}

// Metadata is the envelope attached to every synthesized lesson.
type Metadata struct {
	Day                int      `json:"day"`
	Age                int      `json:"age"`
	Tone               Tone     `json:"tone"`
	Language           Language `json:"language"`
	DurationLabel      string   `json:"duration"`
	ComplexityLabel    string   `json:"complexity"`
	Avatar             Avatar   `json:"avatar"`
	GeneratedAtEpochMs int64    `json:"generated_at_ms"`
	SynthesisTimeMs    float64  `json:"synthesis_time_ms"`
	FromCache          bool     `json:"from_cache"`
	IsFallback         bool     `json:"is_fallback"`
	Source             Source   `json:"source"`
	Error              string   `json:"error,omitempty"`
	TraceID            string   `json:"trace_id,omitempty"`
}

// SynthesisResult is a personalized lesson. It is treated as a value:
// producers hand out copies and never mutate a result after creation.
type SynthesisResult struct {
	Title        string   `json:"title"`
	Introduction string   `json:"introduction"`
	Concept      string   `json:"concept"`
	Examples     []string `json:"examples"`
	Reflection   string   `json:"reflection"`
	Metadata     Metadata `json:"metadata"`
}

// Clone returns a deep copy of r.
func (r SynthesisResult) Clone() SynthesisResult {
	out := r
	out.Examples = append([]string(nil), r.Examples...)
	return out
}

// SameContent reports whether two results carry identical lesson text,
// ignoring metadata.
func (r SynthesisResult) SameContent(other SynthesisResult) bool {
	if r.Title != other.Title || r.Introduction != other.Introduction ||
		r.Concept != other.Concept || r.Reflection != other.Reflection ||
		len(r.Examples) != len(other.Examples) {
		return false
	}
	for i := range r.Examples {
		if r.Examples[i] != other.Examples[i] {
			return false
		}
	}
	return true
}

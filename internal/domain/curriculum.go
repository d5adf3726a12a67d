package domain

// FirstDay and LastDay bound the curriculum year.
const (
	FirstDay = 1
	LastDay  = 366
)

// CurriculumRecord is the base lesson for one day of the year.
// Records are immutable once loaded.
type CurriculumRecord struct {
	Day        int      `json:"day"`
	Title      string   `json:"title"`
	Concept    string   `json:"concept"`
	Examples   []string `json:"examples"`
	Reflection string   `json:"reflection"`

	// IsFallback marks a record substituted for a missing or unreadable one.
	IsFallback bool `json:"-"`
}

// Clone returns a copy whose Examples slice does not alias r.
func (r CurriculumRecord) Clone() CurriculumRecord {
	out := r
	out.Examples = append([]string(nil), r.Examples...)
	return out
}

package textutil

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Substitution replaces one word or phrase with another.
type Substitution struct {
	From string
	To   string
}

// Replacer applies a fixed set of whole-word, case-insensitive substitutions.
// Longer phrases are tried first so "nuclear fusion" wins over "fusion".
// A Replacer is immutable and safe for concurrent use.
type Replacer struct {
	re      *regexp.Regexp
	targets map[string]string
}

// NewReplacer compiles subs into a Replacer.
func NewReplacer(subs ...Substitution) *Replacer {
	if len(subs) == 0 {
		return &Replacer{}
	}
	ordered := append([]Substitution(nil), subs...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].From) > len(ordered[j].From)
	})

	targets := make(map[string]string, len(ordered))
	alternatives := make([]string, 0, len(ordered))
	for _, s := range ordered {
		key := strings.ToLower(s.From)
		if _, dup := targets[key]; dup {
			continue
		}
		targets[key] = s.To
		alternatives = append(alternatives, regexp.QuoteMeta(key))
	}
	pattern := `(?i)\b(?:` + strings.Join(alternatives, "|") + `)\b`
	return &Replacer{re: regexp.MustCompile(pattern), targets: targets}
}

// Replace returns s with every substitution applied in a single pass.
// A match starting with an upper-case letter yields a capitalized replacement.
func (r *Replacer) Replace(s string) string {
	if r == nil || r.re == nil || s == "" {
		return s
	}
	return r.re.ReplaceAllStringFunc(s, func(match string) string {
		to := r.targets[strings.ToLower(match)]
		first, _ := utf8.DecodeRuneInString(match)
		if unicode.IsUpper(first) {
			return Capitalize(to)
		}
		return to
	})
}

// Capitalize upper-cases the first rune of s.
func Capitalize(s string) string {
	first, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(first)) + s[size:]
}

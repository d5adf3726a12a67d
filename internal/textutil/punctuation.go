package textutil

import (
	"regexp"
	"strings"
)

// sentenceEnd matches a period that ends a sentence: followed by
// whitespace or the end of the text, and not part of an ellipsis.
var sentenceEnd = regexp.MustCompile(`([^.])\.(\s|$)`)

// ReplaceSentenceEnds rewrites every sentence-ending period as replacement.
// Periods inside tokens such as "3.5" are left alone.
func ReplaceSentenceEnds(s, replacement string) string {
	return sentenceEnd.ReplaceAllString(s, "${1}"+replacement+"${2}")
}

// ReplaceQuestionEnds rewrites every question mark as replacement.
func ReplaceQuestionEnds(s, replacement string) string {
	return strings.ReplaceAll(s, "?", replacement)
}

// Calm replaces every exclamation mark with a period and collapses the
// doubled periods that can produce.
func Calm(s string) string {
	s = strings.ReplaceAll(s, "!", ".")
	for strings.Contains(s, "..") {
		s = strings.ReplaceAll(s, "..", ".")
	}
	return s
}

// Excite turns sentence-ending periods into exclamation marks.
func Excite(s string) string {
	return sentenceEnd.ReplaceAllString(s, "${1}!${2}")
}

// JoinLead prefixes text with lead, separated by sep unless lead already ends
// in punctuation, in which case a single space is used.
func JoinLead(lead, sep, text string) string {
	lead = strings.TrimSpace(lead)
	if lead == "" {
		return text
	}
	switch lead[len(lead)-1] {
	case '!', '?', '.', ',', ':':
		return lead + " " + text
	}
	return lead + sep + text
}

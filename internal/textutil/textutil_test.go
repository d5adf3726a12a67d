package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReplacer(t *testing.T) {
	t.Parallel()

	r := NewReplacer(
		Substitution{"energy", "power that makes things work"},
		Substitution{"nuclear fusion", "how the sun makes light"},
		Substitution{"fusion", "joining"},
		Substitution{"sun", "our nearest star, the sun"},
	)

	tests := []struct {
		in, want string
	}{
		{"Energy flows.", "Power that makes things work flows."},
		{"nuclear fusion powers stars", "how the sun makes light powers stars"},
		{"cold fusion", "cold joining"},
		{"sunlight and the sun", "sunlight and the our nearest star, the sun"},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, r.Replace(tc.in), tc.in)
	}
}

func TestReplacerSinglePass(t *testing.T) {
	t.Parallel()

	r := NewReplacer(Substitution{"sun", "the sun star"})
	assert.Equal(t, "the sun star", r.Replace("sun"), "replacements are not re-expanded")
}

func TestNilReplacer(t *testing.T) {
	t.Parallel()

	var r *Replacer
	assert.Equal(t, "same", r.Replace("same"))
	assert.Equal(t, "same", NewReplacer().Replace("same"))
}

func TestPunctuation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "One, dear. Two, dear.", ReplaceSentenceEnds("One. Two.", ", dear."))
	assert.Equal(t, "Pi is 3.14!", Excite("Pi is 3.14."))
	assert.Equal(t, "Wow. Great.", Calm("Wow! Great!"))
	assert.Equal(t, "Done.", Calm("Done.!"))
	assert.Equal(t, "Why, dear?", ReplaceQuestionEnds("Why?", ", dear?"))
}

func TestJoinLead(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Hello dear! Text", JoinLead("Hello dear", "! ", "Text"))
	assert.Equal(t, "Hey there! Text", JoinLead("Hey there!", "! ", "Text"))
	assert.Equal(t, "Text", JoinLead("  ", "! ", "Text"))
	assert.Equal(t, "Furthermore, text", JoinLead("Furthermore", ", ", "text"))
}

func TestCapitalize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Élan", Capitalize("élan"))
	assert.Equal(t, "", Capitalize(""))
}

package generation

import (
	"bytes"
	"fmt"
	"text/template"
)

const lessonPromptText = `Create an educational lesson about "{{.Topic}}" for day {{.Day}} of a 366-day learning journey.

TARGET AUDIENCE:
- Age: {{.Age}} years old ({{.AgeGroup}})
- Tone: {{.ToneDescription}}

LESSON REQUIREMENTS:
1. INTRODUCTION (2-3 sentences)
   - Hook the learner's interest
   - Connect to their daily life
   - Set clear learning expectations

2. CORE CONCEPT EXPLANATION (4-6 sentences)
   - Explain the main idea clearly
   - Use age-appropriate language
   - Include key vocabulary

3. REAL-WORLD EXAMPLES (2-3 examples)
   - Show how this concept appears in everyday life
   - Use concrete, familiar situations

4. INTERACTIVE ELEMENTS
   - Include a reflection question
   - Encourage critical thinking

5. KEY TAKEAWAYS
   - Summarize the main learning points inside the concept section

FORMAT GUIDELINES:
- Use the exact tone specified: {{.ToneDescription}}
- Keep language appropriate for {{.Age}}-year-olds
- Respond with JSON containing "introduction", "concept", "examples" (array of strings) and "reflection".
`

var lessonPrompt = template.Must(template.New("lesson").Parse(lessonPromptText))

// BuildPrompt renders the lesson prompt for req.
func BuildPrompt(req Request) (string, error) {
	if err := req.Validate(); err != nil {
		return "", err
	}
	if req.AgeGroup == "" {
		req.AgeGroup = AgeGroup(req.Age)
	}
	if req.ToneDescription == "" {
		req.ToneDescription = req.Tone
	}

	var buf bytes.Buffer
	if err := lessonPrompt.Execute(&buf, req); err != nil {
		return "", fmt.Errorf("%w: render prompt: %w", ErrGenerationFailed, err)
	}
	return buf.String(), nil
}

// AgeGroup describes an age in the coarse bands used in prompts.
func AgeGroup(age int) string {
	switch {
	case age < 6:
		return "early childhood (3-5 years)"
	case age < 12:
		return "middle childhood (6-11 years)"
	case age < 18:
		return "adolescence (12-17 years)"
	default:
		return "adulthood (18+ years)"
	}
}

package gemini

import "google.golang.org/genai"

// lessonSchema constrains the model output to the JSON form of generation.Sections.
func lessonSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"introduction": {Type: genai.TypeString},
			"concept":      {Type: genai.TypeString},
			"examples": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"reflection": {Type: genai.TypeString},
		},
		Required: []string{"introduction", "concept", "examples", "reflection"},
	}
}

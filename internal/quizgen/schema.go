package quizgen

import "github.com/weihanlin/gsatbot/internal/llm"

// questionSchema is the JSON Schema every parsed question must satisfy.
// The choice object must carry exactly the labels A-D and the answer must
// be one of them, so a question that passes cannot name a correct label
// outside its own choices.
var questionSchema = &llm.Schema{
	Name:        "quiz-question",
	Description: "A single four-choice GSAT practice question with answer and explanation",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "The question stem shown to the user",
			},
			"choices": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"A": map[string]any{"type": "string", "minLength": 1},
					"B": map[string]any{"type": "string", "minLength": 1},
					"C": map[string]any{"type": "string", "minLength": 1},
					"D": map[string]any{"type": "string", "minLength": 1},
				},
				"required":             []any{"A", "B", "C", "D"},
				"additionalProperties": false,
				"description":          "Exactly four choices keyed by label",
			},
			"answer": map[string]any{
				"type":        "string",
				"enum":        []any{"A", "B", "C", "D"},
				"description": "The single correct label",
			},
			"explanation": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "詳解 in Traditional Chinese",
			},
		},
		"required":             []any{"question", "choices", "answer", "explanation"},
		"additionalProperties": false,
	},
}

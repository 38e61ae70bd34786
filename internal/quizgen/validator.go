package quizgen

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/weihanlin/gsatbot/internal/llm"
)

// ShapeError describes why a parsed question failed validation. Any shape
// failure is terminal for the whole set; a malformed question never
// reaches a session.
type ShapeError struct {
	Index   int // zero-based position in the returned set
	Message string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("question %d: %s", e.Index+1, e.Message)
}

// validateQuestion checks one parsed question against the JSON schema plus
// the constraints a schema can't express (distinct choice texts).
func validateQuestion(q *Question, index int) error {
	compiled, err := llm.CompileSchema(questionSchema)
	if err != nil {
		return fmt.Errorf("compile question schema: %w", err)
	}

	// The jsonschema library validates parsed JSON values, so round-trip
	// the struct through encoding/json.
	raw, err := json.Marshal(q)
	if err != nil {
		return &ShapeError{Index: index, Message: err.Error()}
	}
	var parsed any
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return &ShapeError{Index: index, Message: err.Error()}
	}
	if err := compiled.Validate(parsed); err != nil {
		return &ShapeError{Index: index, Message: err.Error()}
	}

	// The schema guarantees labels are exactly A-D and the answer is one of
	// them; distinctness of the choice texts is checked here.
	seen := make(map[string]string, len(q.Choices))
	for _, label := range q.Labels() {
		text := strings.TrimSpace(q.Choices[label])
		if text == "" {
			return &ShapeError{Index: index, Message: fmt.Sprintf("choice %s is blank", label)}
		}
		if prev, dup := seen[text]; dup {
			return &ShapeError{
				Index:   index,
				Message: fmt.Sprintf("choices %s and %s have the same text %q", prev, label, text),
			}
		}
		seen[text] = label
	}

	return nil
}

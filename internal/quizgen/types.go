// Package quizgen turns selected topics into multiple-choice questions via
// the LLM provider, and validates what comes back before it reaches a quiz
// session.
package quizgen

import (
	"sort"

	"github.com/weihanlin/gsatbot/internal/topic"
)

// ChoiceLabels is the fixed label alphabet for every question.
var ChoiceLabels = []string{"A", "B", "C", "D"}

// Question is one validated multiple-choice item.
type Question struct {
	// Text is the question stem shown to the user. Vocabulary questions are
	// English sentences with a "______" blank; social-studies questions are
	// Traditional Chinese.
	Text string `json:"question"`

	// Choices maps label → choice text. After validation the keys are
	// exactly A-D with distinct, non-empty texts.
	Choices map[string]string `json:"choices"`

	// Answer is the single correct label. After validation it is always a
	// key of Choices.
	Answer string `json:"answer"`

	// Explanation is the worked解析 shown after answering, in Traditional
	// Chinese.
	Explanation string `json:"explanation"`
}

// Labels returns the question's choice labels in display order.
func (q *Question) Labels() []string {
	labels := make([]string, 0, len(q.Choices))
	for l := range q.Choices {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// IsCorrect reports whether the chosen label matches the answer.
// Exact, case-sensitive match.
func (q *Question) IsCorrect(label string) bool {
	return label == q.Answer
}

// Kind selects the prompt template.
type Kind string

const (
	KindVocabulary Kind = "vocabulary"
	KindSocial     Kind = "social"
)

// GenerateInput holds everything needed to generate one question set.
type GenerateInput struct {
	Kind Kind

	// Words is the target word list for KindVocabulary (one question each).
	Words []string

	// Subject and Topics drive KindSocial (one question per topic).
	Subject topic.Subject
	Topics  []string
}

// TopicCount returns the number of questions the input asks for.
func (in GenerateInput) TopicCount() int {
	if in.Kind == KindVocabulary {
		return len(in.Words)
	}
	return len(in.Topics)
}

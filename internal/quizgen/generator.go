package quizgen

import "context"

// Generator produces question sets using an LLM provider.
type Generator interface {
	// GenerateSet produces one question per topic in the input. Every
	// returned question has passed shape validation. Any remote, parse, or
	// shape failure is an error; callers treat it as terminal for the start
	// attempt and must not retry.
	GenerateSet(ctx context.Context, input GenerateInput) ([]Question, error)
}

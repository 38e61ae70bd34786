package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/weihanlin/gsatbot/internal/llm"
)

// LLMGenerator implements Generator using the LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{provider: provider, config: cfg}
}

// GenerateSet produces a validated question set for the given input.
func (g *LLMGenerator) GenerateSet(ctx context.Context, input GenerateInput) ([]Question, error) {
	if input.TopicCount() == 0 {
		return nil, fmt.Errorf("no topics to generate questions for")
	}

	ctx = llm.WithPurpose(ctx, "question-gen")

	// The prompt demands bare JSON rather than using provider-side
	// structured output: the response may be a single object or an array,
	// and some models fence their JSON anyway. Shape enforcement happens
	// after parsing instead.
	req := llm.Request{
		System: systemPromptFor(input.Kind),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(input)},
		},
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	questions, err := ParseQuestionSet(resp.Content)
	if err != nil {
		return nil, err
	}

	for i := range questions {
		if err := validateQuestion(&questions[i], i); err != nil {
			return nil, err
		}
	}

	return questions, nil
}

// ParseQuestionSet parses raw LLM output into questions. The content may be
// wrapped in a code fence and may be either a single object or an array of
// objects.
func ParseQuestionSet(raw json.RawMessage) ([]Question, error) {
	content := StripCodeFence(string(raw))

	var questions []Question
	if err := json.Unmarshal([]byte(content), &questions); err != nil {
		var single Question
		if err2 := json.Unmarshal([]byte(content), &single); err2 != nil {
			return nil, fmt.Errorf("parse question set: %w", err)
		}
		questions = []Question{single}
	}

	if len(questions) == 0 {
		return nil, fmt.Errorf("question set is empty")
	}
	return questions, nil
}

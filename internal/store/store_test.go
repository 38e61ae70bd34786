package store

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestLLMEventRoundTrip(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider:     "gemini",
		Model:        "gemini-2.5-flash-lite",
		Purpose:      "question-gen",
		InputTokens:  120,
		OutputTokens: 900,
		LatencyMs:    1500,
		Success:      true,
		RequestBody:  "[user]\nhello",
		ResponseBody: `[{"question":"..."}]`,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 10})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Purpose != "question-gen" || e.InputTokens != 120 || !e.Success {
		t.Errorf("unexpected event: %+v", e)
	}

	full, err := repo.GetLLMEvent(ctx, e.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if full == nil || full.ResponseBody == "" {
		t.Error("expected full event with response body")
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing event")
	}
}

func TestLLMUsageByPurpose(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for range 3 {
		if err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider: "mock", Model: "mock", Purpose: "question-gen",
			InputTokens: 100, OutputTokens: 50, LatencyMs: 10, Success: true,
		}); err != nil {
			t.Fatal(err)
		}
	}

	usage, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(usage) != 1 {
		t.Fatalf("expected 1 purpose, got %d", len(usage))
	}
	if usage[0].Calls != 3 || usage[0].InputTokens != 300 {
		t.Errorf("unexpected usage: %+v", usage[0])
	}
}

func TestQuizStatsBySubject(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	appends := []QuizEventData{
		{SessionID: "s1", UserID: "42", Action: QuizStarted, Subject: "vocabulary", Level: 3, QuestionsTotal: 5},
		{SessionID: "s1", UserID: "42", Action: QuizCompleted, Subject: "vocabulary", Level: 3, QuestionsTotal: 5, Correct: 4, DurationSecs: 90},
		{SessionID: "s2", UserID: "7", Action: QuizExpired, Subject: "history", QuestionsTotal: 10, Correct: 2},
	}
	for _, d := range appends {
		if err := repo.AppendQuizEvent(ctx, d); err != nil {
			t.Fatal(err)
		}
	}

	stats, err := repo.QuizStatsBySubject(ctx)
	if err != nil {
		t.Fatal(err)
	}
	// Only completed quizzes count.
	if len(stats) != 1 {
		t.Fatalf("expected 1 subject, got %d", len(stats))
	}
	if stats[0].Subject != "vocabulary" || stats[0].Quizzes != 1 || stats[0].Correct != 4 {
		t.Errorf("unexpected stats: %+v", stats[0])
	}
}

func TestSequenceMonotonic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	prev := int64(-1)
	for range 5 {
		seq, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatal(err)
		}
		if seq <= prev {
			t.Fatalf("sequence not increasing: %d after %d", seq, prev)
		}
		prev = seq
	}
}

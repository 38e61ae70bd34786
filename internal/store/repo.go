package store

import (
	"context"
	"database/sql"
	"time"
)

// QueryOpts configures event queries.
type QueryOpts struct {
	Limit int // max results (0 = unlimited)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// LLMUsage aggregates LLM request events per purpose.
type LLMUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// Quiz event actions.
const (
	QuizStarted   = "started"
	QuizCompleted = "completed"
	QuizStopped   = "stopped"
	QuizExpired   = "expired"
	QuizFailed    = "failed" // generation failure tore down the session
)

// QuizEventData captures one quiz lifecycle event.
type QuizEventData struct {
	SessionID      string
	UserID         string
	Action         string
	Subject        string // "vocabulary", "history", "geography", "civics"
	Level          int    // vocabulary level filter, 0 = all
	QuestionsTotal int
	Correct        int
	DurationSecs   int
}

// QuizEvent is a stored quiz lifecycle event.
type QuizEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	QuizEventData
}

// QuizStats aggregates completed quizzes per subject.
type QuizStats struct {
	Subject        string
	Quizzes        int
	QuestionsTotal int
	Correct        int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns recent LLM events, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns one event by ID, or nil if absent.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	// LLMUsageByPurpose aggregates token usage per purpose label.
	LLMUsageByPurpose(ctx context.Context) ([]LLMUsage, error)

	// AppendQuizEvent records a quiz lifecycle event.
	AppendQuizEvent(ctx context.Context, data QuizEventData) error

	// QuizStatsBySubject aggregates completed quizzes per subject.
	QuizStatsBySubject(ctx context.Context) ([]QuizStats, error)
}

// eventRepo implements EventRepo on raw SQL.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

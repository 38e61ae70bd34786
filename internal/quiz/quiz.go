// Package quiz holds the per-user session registry and the question-by-
// question state machine. It knows nothing about Discord; the bot layer
// renders what these types return.
package quiz

import (
	"errors"
	"time"

	"github.com/weihanlin/gsatbot/internal/quizgen"
	"github.com/weihanlin/gsatbot/internal/topic"
)

// DefaultTimeout is how long a user has to press a button before the
// session expires.
const DefaultTimeout = 3 * time.Minute

var (
	// ErrAlreadyActive means the owner already has a running session.
	ErrAlreadyActive = errors.New("a quiz is already active for this user")

	// ErrNotOwner means someone other than the session owner tried to
	// interact. The session state is untouched.
	ErrNotOwner = errors.New("interaction from a non-owner")

	// ErrNotAwaitingAnswer means Submit was called outside the answering
	// phase, typically a double-click on an answer button.
	ErrNotAwaitingAnswer = errors.New("session is not awaiting an answer")

	// ErrNotAwaitingNext means Next was called outside the result phase.
	ErrNotAwaitingNext = errors.New("session is not awaiting next")

	// ErrFinished means the session has already reached a terminal state.
	ErrFinished = errors.New("session is finished")

	// ErrEmptyQuestionSet means Begin was called with no questions.
	ErrEmptyQuestionSet = errors.New("question set is empty")
)

// Phase is the session's position in its lifecycle.
type Phase int

const (
	// PhaseGenerating covers the window between TryCreate and Begin, while
	// the question set is being generated. No buttons exist yet.
	PhaseGenerating Phase = iota

	// PhaseAwaitingAnswer means a question is displayed and the owner may
	// press an answer button or stop.
	PhaseAwaitingAnswer

	// PhaseAwaitingNext means a result is displayed and the owner may press
	// next or stop.
	PhaseAwaitingNext

	// PhaseFinished is terminal: completed, stopped, expired, or torn down
	// after a generation failure.
	PhaseFinished
)

// Meta describes what kind of quiz a session runs. Fixed at creation and
// carried into the event log.
type Meta struct {
	Kind    quizgen.Kind
	Subject topic.Subject // social quizzes only
	Level   int           // vocabulary quizzes only, 0 = all levels
}

// AnswerResult is what Submit returns for rendering.
type AnswerResult struct {
	Question quizgen.Question
	Chosen   string
	Correct  bool
	Score    int
	Index    int // zero-based index of the question just answered
	Total    int
	Finished bool // true when this was the last question
}

// NextResult is what Next returns for rendering.
type NextResult struct {
	Question quizgen.Question
	Index    int // zero-based index of the question now displayed
	Total    int
}

// StopResult is what Stop returns for rendering.
type StopResult struct {
	Score    int
	Answered int
	Total    int
}

package quiz

import (
	"sync"
	"time"

	"github.com/weihanlin/gsatbot/internal/quizgen"
)

// Session is one user's quiz run. All mutation happens under the session
// mutex, which serializes double-clicks and timer fires. Lock order is
// session then registry; never the reverse while holding the registry lock.
type Session struct {
	id        string
	owner     string
	meta      Meta
	createdAt time.Time
	timeout   time.Duration
	registry  *Registry
	onExpire  func(*Session)

	mu        sync.Mutex
	questions []quizgen.Question
	index     int
	score     int
	answered  int
	phase     Phase
	timer     *time.Timer
	timerGen  int
}

// ID returns the session's UUID, used in the event log.
func (s *Session) ID() string { return s.id }

// Owner returns the owning user's ID. Immutable.
func (s *Session) Owner() string { return s.owner }

// Meta returns the quiz kind/subject/level fixed at creation.
func (s *Session) Meta() Meta { return s.meta }

// CreatedAt returns when the session was created.
func (s *Session) CreatedAt() time.Time { return s.createdAt }

// Elapsed returns how long the session has been running.
func (s *Session) Elapsed() time.Duration { return time.Since(s.createdAt) }

// Score returns the current number of correct answers.
func (s *Session) Score() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Total returns the number of questions in the set. Zero before Begin.
func (s *Session) Total() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.questions)
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Answered returns how many questions have been answered so far. Counted
// per Submit rather than inferred from the phase, so a timeout on an open
// question does not count it.
func (s *Session) Answered() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.answered
}

// Begin attaches the generated question set, shows question 0, and arms
// the answer timer. Valid only once, while the session is generating.
func (s *Session) Begin(questions []quizgen.Question) (*NextResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != PhaseGenerating {
		return nil, ErrFinished
	}
	if len(questions) == 0 {
		return nil, ErrEmptyQuestionSet
	}

	s.questions = questions
	s.index = 0
	s.phase = PhaseAwaitingAnswer
	s.armTimerLocked()

	return &NextResult{Question: s.questions[0], Index: 0, Total: len(s.questions)}, nil
}

// Submit records the owner's answer to the current question. On the last
// question the session finishes and leaves the registry; otherwise the
// result display gets its own fresh timeout window.
func (s *Session) Submit(actor, label string) (*AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if actor != s.owner {
		return nil, ErrNotOwner
	}
	if s.phase == PhaseFinished {
		return nil, ErrFinished
	}
	if s.phase != PhaseAwaitingAnswer {
		return nil, ErrNotAwaitingAnswer
	}

	q := s.questions[s.index]
	correct := q.IsCorrect(label)
	if correct {
		s.score++
	}
	s.answered++

	finished := s.index == len(s.questions)-1
	if finished {
		s.phase = PhaseFinished
		s.cancelTimerLocked()
		s.registry.removeSession(s)
	} else {
		s.phase = PhaseAwaitingNext
		s.armTimerLocked()
	}

	return &AnswerResult{
		Question: q,
		Chosen:   label,
		Correct:  correct,
		Score:    s.score,
		Index:    s.index,
		Total:    len(s.questions),
		Finished: finished,
	}, nil
}

// Next advances to the following question and re-arms the timer.
func (s *Session) Next(actor string) (*NextResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if actor != s.owner {
		return nil, ErrNotOwner
	}
	if s.phase == PhaseFinished {
		return nil, ErrFinished
	}
	if s.phase != PhaseAwaitingNext {
		return nil, ErrNotAwaitingNext
	}

	s.index++
	s.phase = PhaseAwaitingAnswer
	s.armTimerLocked()

	return &NextResult{
		Question: s.questions[s.index],
		Index:    s.index,
		Total:    len(s.questions),
	}, nil
}

// Stop ends the session early at the owner's request.
func (s *Session) Stop(actor string) (*StopResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if actor != s.owner {
		return nil, ErrNotOwner
	}
	if s.phase == PhaseFinished {
		return nil, ErrFinished
	}

	answered := s.answered
	s.phase = PhaseFinished
	s.cancelTimerLocked()
	s.registry.removeSession(s)

	return &StopResult{
		Score:    s.score,
		Answered: answered,
		Total:    len(s.questions),
	}, nil
}

// terminate finishes the session without rendering anything. The registry
// entry is assumed to be gone already.
func (s *Session) terminate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseFinished {
		return
	}
	s.phase = PhaseFinished
	s.cancelTimerLocked()
}

// armTimerLocked starts a fresh timeout window. The generation counter
// makes a fire from a previous window a no-op.
func (s *Session) armTimerLocked() {
	s.timerGen++
	gen := s.timerGen
	if s.timer != nil {
		s.timer.Stop()
	}
	s.timer = time.AfterFunc(s.timeout, func() { s.expire(gen) })
}

func (s *Session) cancelTimerLocked() {
	s.timerGen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// expire runs on the timer goroutine when a timeout window elapses.
func (s *Session) expire(gen int) {
	s.mu.Lock()
	if gen != s.timerGen || s.phase == PhaseFinished {
		s.mu.Unlock()
		return
	}
	s.phase = PhaseFinished
	s.timer = nil
	s.registry.removeSession(s)
	cb := s.onExpire
	s.mu.Unlock()

	if cb != nil {
		cb(s)
	}
}

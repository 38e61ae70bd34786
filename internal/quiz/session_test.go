package quiz

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionFullRun(t *testing.T) {
	r := NewRegistry(0)
	s, err := r.TryCreate("user1", Meta{})
	require.NoError(t, err)

	first, err := s.Begin(makeQuestions(3))
	require.NoError(t, err)
	assert.Equal(t, 0, first.Index)
	assert.Equal(t, 3, first.Total)
	assert.Equal(t, "question 1", first.Question.Text)
	assert.Equal(t, PhaseAwaitingAnswer, s.Phase())

	// Q1 correct.
	res, err := s.Submit("user1", "A")
	require.NoError(t, err)
	assert.True(t, res.Correct)
	assert.Equal(t, 1, res.Score)
	assert.Equal(t, 0, res.Index)
	assert.False(t, res.Finished)
	assert.Equal(t, PhaseAwaitingNext, s.Phase())

	next, err := s.Next("user1")
	require.NoError(t, err)
	assert.Equal(t, 1, next.Index)

	// Q2 wrong; score unchanged.
	res, err = s.Submit("user1", "B")
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, 1, res.Score)

	_, err = s.Next("user1")
	require.NoError(t, err)

	// Q3 correct and final: session leaves the registry before the caller
	// renders the result.
	res, err = s.Submit("user1", "A")
	require.NoError(t, err)
	assert.True(t, res.Finished)
	assert.Equal(t, 2, res.Score)
	assert.Equal(t, PhaseFinished, s.Phase())
	_, ok := r.Get("user1")
	assert.False(t, ok)
}

func TestSubmitCaseSensitive(t *testing.T) {
	r := NewRegistry(0)
	s, _ := r.TryCreate("user1", Meta{})
	_, err := s.Begin(makeQuestions(2))
	require.NoError(t, err)

	res, err := s.Submit("user1", "a")
	require.NoError(t, err)
	assert.False(t, res.Correct)
	assert.Equal(t, 0, res.Score)
}

func TestNonOwnerNeverMutates(t *testing.T) {
	r := NewRegistry(0)
	s, _ := r.TryCreate("user1", Meta{})
	_, err := s.Begin(makeQuestions(2))
	require.NoError(t, err)

	_, err = s.Submit("intruder", "A")
	assert.ErrorIs(t, err, ErrNotOwner)
	_, err = s.Next("intruder")
	assert.ErrorIs(t, err, ErrNotOwner)
	_, err = s.Stop("intruder")
	assert.ErrorIs(t, err, ErrNotOwner)

	assert.Equal(t, PhaseAwaitingAnswer, s.Phase())
	assert.Equal(t, 0, s.Score())
	_, ok := r.Get("user1")
	assert.True(t, ok)
}

func TestSubmitDoubleClick(t *testing.T) {
	r := NewRegistry(0)
	s, _ := r.TryCreate("user1", Meta{})
	_, err := s.Begin(makeQuestions(2))
	require.NoError(t, err)

	_, err = s.Submit("user1", "A")
	require.NoError(t, err)

	// Second click lands in the result phase and changes nothing.
	_, err = s.Submit("user1", "B")
	assert.ErrorIs(t, err, ErrNotAwaitingAnswer)
	assert.Equal(t, 1, s.Score())
}

func TestNextOutsideResultPhase(t *testing.T) {
	r := NewRegistry(0)
	s, _ := r.TryCreate("user1", Meta{})
	_, err := s.Begin(makeQuestions(2))
	require.NoError(t, err)

	_, err = s.Next("user1")
	assert.ErrorIs(t, err, ErrNotAwaitingNext)
}

func TestStopMidQuiz(t *testing.T) {
	r := NewRegistry(0)
	s, _ := r.TryCreate("user1", Meta{})
	_, err := s.Begin(makeQuestions(5))
	require.NoError(t, err)

	_, err = s.Submit("user1", "A")
	require.NoError(t, err)
	_, err = s.Next("user1")
	require.NoError(t, err)

	stop, err := s.Stop("user1")
	require.NoError(t, err)
	assert.Equal(t, 1, stop.Score)
	assert.Equal(t, 1, stop.Answered)
	assert.Equal(t, 5, stop.Total)
	assert.Equal(t, PhaseFinished, s.Phase())
	_, ok := r.Get("user1")
	assert.False(t, ok)

	// Any further interaction reports the session as finished.
	_, err = s.Submit("user1", "A")
	assert.ErrorIs(t, err, ErrFinished)
	_, err = s.Stop("user1")
	assert.ErrorIs(t, err, ErrFinished)
}

func TestBeginRejectsEmptySet(t *testing.T) {
	r := NewRegistry(0)
	s, _ := r.TryCreate("user1", Meta{})
	_, err := s.Begin(nil)
	assert.ErrorIs(t, err, ErrEmptyQuestionSet)
}

func TestBeginTwice(t *testing.T) {
	r := NewRegistry(0)
	s, _ := r.TryCreate("user1", Meta{})
	_, err := s.Begin(makeQuestions(1))
	require.NoError(t, err)
	_, err = s.Begin(makeQuestions(1))
	assert.ErrorIs(t, err, ErrFinished)
}

func TestExpiry(t *testing.T) {
	r := NewRegistry(20 * time.Millisecond)
	var fired atomic.Int32
	expired := make(chan *Session, 1)
	r.OnExpire(func(s *Session) {
		fired.Add(1)
		expired <- s
	})

	s, _ := r.TryCreate("user1", Meta{})
	_, err := s.Begin(makeQuestions(2))
	require.NoError(t, err)

	select {
	case got := <-expired:
		assert.Same(t, s, got)
	case <-time.After(time.Second):
		t.Fatal("expiry callback never fired")
	}

	assert.Equal(t, PhaseFinished, s.Phase())
	_, ok := r.Get("user1")
	assert.False(t, ok)

	// The owner can start a new quiz after expiry.
	_, err = r.TryCreate("user1", Meta{})
	assert.NoError(t, err)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), fired.Load())
}

func TestExpiryOnOpenQuestionCountsNothing(t *testing.T) {
	r := NewRegistry(20 * time.Millisecond)
	expired := make(chan *Session, 1)
	r.OnExpire(func(s *Session) { expired <- s })

	s, _ := r.TryCreate("user1", Meta{})
	_, err := s.Begin(makeQuestions(3))
	require.NoError(t, err)

	select {
	case <-expired:
	case <-time.After(time.Second):
		t.Fatal("expiry callback never fired")
	}

	// The first question was displayed but never answered.
	assert.Equal(t, 0, s.Answered())
	assert.Equal(t, 0, s.Score())
}

func TestExpiryOnResultViewKeepsAnsweredCount(t *testing.T) {
	r := NewRegistry(40 * time.Millisecond)
	expired := make(chan *Session, 1)
	r.OnExpire(func(s *Session) { expired <- s })

	s, _ := r.TryCreate("user1", Meta{})
	_, err := s.Begin(makeQuestions(3))
	require.NoError(t, err)

	_, err = s.Submit("user1", "A")
	require.NoError(t, err)

	select {
	case <-expired:
	case <-time.After(time.Second):
		t.Fatal("expiry callback never fired")
	}

	assert.Equal(t, 1, s.Answered())
	assert.Equal(t, 1, s.Score())
}

func TestAnswerReArmsTimer(t *testing.T) {
	r := NewRegistry(60 * time.Millisecond)
	var fired atomic.Int32
	r.OnExpire(func(*Session) { fired.Add(1) })

	s, _ := r.TryCreate("user1", Meta{})
	_, err := s.Begin(makeQuestions(2))
	require.NoError(t, err)

	// Answer inside the first window; the result display gets a fresh one.
	time.Sleep(30 * time.Millisecond)
	_, err = s.Submit("user1", "A")
	require.NoError(t, err)

	// Past the original deadline but inside the re-armed window.
	time.Sleep(45 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
	assert.Equal(t, PhaseAwaitingNext, s.Phase())

	_, err = s.Stop("user1")
	require.NoError(t, err)
}

func TestNoExpiryAfterCompletion(t *testing.T) {
	r := NewRegistry(30 * time.Millisecond)
	var fired atomic.Int32
	r.OnExpire(func(*Session) { fired.Add(1) })

	s, _ := r.TryCreate("user1", Meta{})
	_, err := s.Begin(makeQuestions(1))
	require.NoError(t, err)

	res, err := s.Submit("user1", "A")
	require.NoError(t, err)
	require.True(t, res.Finished)

	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, int32(0), fired.Load())
}

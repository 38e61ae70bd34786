package quiz

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry tracks at most one live session per owner. All methods are safe
// for concurrent use.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	timeout  time.Duration
	onExpire func(*Session)
}

// NewRegistry creates a registry whose sessions expire after the given
// per-question timeout. Zero means DefaultTimeout.
func NewRegistry(timeout time.Duration) *Registry {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Registry{
		sessions: make(map[string]*Session),
		timeout:  timeout,
	}
}

// OnExpire sets the callback invoked when a session's timer fires. Set it
// before any session is created; the callback runs outside the session
// lock on the timer goroutine.
func (r *Registry) OnExpire(fn func(*Session)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.onExpire = fn
}

// TryCreate atomically checks for an existing session and inserts a new one
// in PhaseGenerating. Returns ErrAlreadyActive if the owner has a live
// session.
func (r *Registry) TryCreate(owner string, meta Meta) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[owner]; ok {
		return nil, ErrAlreadyActive
	}

	s := &Session{
		id:        uuid.NewString(),
		owner:     owner,
		meta:      meta,
		createdAt: time.Now(),
		phase:     PhaseGenerating,
		timeout:   r.timeout,
		registry:  r,
		onExpire:  r.onExpire,
	}
	r.sessions[owner] = s
	return s, nil
}

// Get returns the owner's live session, if any.
func (r *Registry) Get(owner string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[owner]
	return s, ok
}

// Remove tears down the owner's session regardless of phase. Used when
// generation fails before the first question is shown.
func (r *Registry) Remove(owner string) {
	r.mu.Lock()
	s, ok := r.sessions[owner]
	if ok {
		delete(r.sessions, owner)
	}
	r.mu.Unlock()

	if ok {
		s.terminate()
	}
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// removeSession drops s from the map only if it is still the owner's
// current session, so a stale timer can never evict a successor session.
func (r *Registry) removeSession(s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.sessions[s.owner] == s {
		delete(r.sessions, s.owner)
	}
}

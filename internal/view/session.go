package view

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
)

// ErrStaleResult is returned for a load that a newer load replaced.
var ErrStaleResult = errors.New("stale view result")

// Session serializes the loads of one navigation context. Beginning a load
// cancels the one before it.
type Session struct {
	mu      sync.Mutex
	current uuid.UUID
	cancel  context.CancelFunc
}

// NewSession creates an empty session.
func NewSession() *Session {
	return &Session{}
}

// Begin starts a load and returns its context and token. The previous load's
// context is cancelled.
func (s *Session) Begin(ctx context.Context) (context.Context, uuid.UUID) {
	loadCtx, cancel := context.WithCancel(ctx)
	token := uuid.New()

	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.current = token
	s.cancel = cancel
	s.mu.Unlock()

	return loadCtx, token
}

// Finish ends the load identified by token. It returns ErrStaleResult if a
// newer load has begun since.
func (s *Session) Finish(token uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token != s.current {
		return ErrStaleResult
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	return nil
}

// Current returns the token of the latest load.
func (s *Session) Current() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Close cancels any in-flight load. Its result will be stale.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.current = uuid.Nil
}

// Sessions holds one Session per client key while the key has requests in
// flight. A key's session is dropped when its last request releases it.
type Sessions struct {
	mu       sync.Mutex
	sessions map[string]*sessionRef
}

type sessionRef struct {
	session *Session
	refs    int
}

// NewSessions creates an empty registry.
func NewSessions() *Sessions {
	return &Sessions{sessions: make(map[string]*sessionRef)}
}

// Acquire returns the session for key, creating it if needed. Every Acquire
// must be paired with a Release of the returned session.
func (r *Sessions) Acquire(key string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	ref, ok := r.sessions[key]
	if !ok {
		ref = &sessionRef{session: NewSession()}
		r.sessions[key] = ref
	}
	ref.refs++
	return ref.session
}

// Release drops one reference to s under key and forgets the key once no
// request holds it. Releasing a session that CloseAll already removed is a
// no-op.
func (r *Sessions) Release(key string, s *Session) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ref, ok := r.sessions[key]
	if !ok || ref.session != s {
		return
	}
	ref.refs--
	if ref.refs <= 0 {
		delete(r.sessions, key)
	}
}

// CloseAll cancels every in-flight load and empties the registry.
func (r *Sessions) CloseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for key, ref := range r.sessions {
		ref.session.Close()
		delete(r.sessions, key)
	}
}

// Len returns the number of sessions.
func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// load runs fetch under a new token of s and reduces its outcome into a
// state. A nil session runs a one-off load. failure maps a fetch error to its
// user-facing message.
func load[T any](ctx context.Context, s *Session, fetch func(context.Context) (T, error), failure func(error) string) (State[T], error) {
	if s == nil {
		s = NewSession()
	}

	loadCtx, token := s.Begin(ctx)
	state := Reduce(State[T]{}, Start[T](token))

	data, err := fetch(loadCtx)

	if finishErr := s.Finish(token); finishErr != nil {
		return state, finishErr
	}
	if err != nil {
		return Reduce(state, Fail[T](token, failure(err), err)), nil
	}
	return Reduce(state, Succeed(token, data)), nil
}

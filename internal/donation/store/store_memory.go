// Package store persists donation form sessions.
//
// Error contract: every implementation returns sentinel.ErrNotFound (wrapped) when the
// session does not exist or has expired, sentinel.ErrConflict when Create hits an
// existing id, and the callback's error unchanged when an Update callback fails.
package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mealshare/internal/donation/workflow"
	"mealshare/pkg/platform/sentinel"
)

type entry struct {
	session   workflow.Session
	expiresAt time.Time
}

// InMemoryStore keeps sessions in process memory. Expiry is sliding and checked on read.
type InMemoryStore struct {
	mu       sync.Mutex
	sessions map[string]entry
	ttl      time.Duration
	now      func() time.Time
}

type MemoryOption func(*InMemoryStore)

// WithClock overrides the expiry clock.
func WithClock(now func() time.Time) MemoryOption {
	return func(s *InMemoryStore) {
		s.now = now
	}
}

// NewInMemory constructs an empty store whose sessions live for ttl after their last write.
func NewInMemory(ttl time.Duration, opts ...MemoryOption) *InMemoryStore {
	s := &InMemoryStore{
		sessions: make(map[string]entry),
		ttl:      ttl,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *InMemoryStore) Create(_ context.Context, session *workflow.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.live(session.ID); ok {
		return fmt.Errorf("session %s already exists: %w", session.ID, sentinel.ErrConflict)
	}
	s.sessions[session.ID] = entry{session: *session, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *InMemoryStore) Get(_ context.Context, id string) (*workflow.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.live(id)
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, sentinel.ErrNotFound)
	}
	session := e.session
	return &session, nil
}

// Update runs fn on a copy under the store lock and keeps the copy only when fn succeeds.
func (s *InMemoryStore) Update(_ context.Context, id string, fn func(*workflow.Session) error) (*workflow.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.live(id)
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, sentinel.ErrNotFound)
	}
	session := e.session
	if err := fn(&session); err != nil {
		return nil, err
	}
	s.sessions[id] = entry{session: session, expiresAt: s.now().Add(s.ttl)}
	out := session
	return &out, nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

// PurgeExpired drops expired sessions and reports how many were removed.
func (s *InMemoryStore) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	removed := 0
	for id, e := range s.sessions {
		if !now.Before(e.expiresAt) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// live must be called with mu held.
func (s *InMemoryStore) live(id string) (entry, bool) {
	e, ok := s.sessions[id]
	if !ok {
		return entry{}, false
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.sessions, id)
		return entry{}, false
	}
	return e, true
}

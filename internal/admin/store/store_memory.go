// Package store keeps revoked admin session ids until their tokens expire.
package store

import (
	"context"
	"sync"
	"time"
)

// InMemoryRevocations is a process-local revocation list.
type InMemoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

type Option func(*InMemoryRevocations)

func WithClock(now func() time.Time) Option {
	return func(s *InMemoryRevocations) {
		s.now = now
	}
}

func NewInMemory(opts ...Option) *InMemoryRevocations {
	s := &InMemoryRevocations{revoked: make(map[string]time.Time), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Revoke records id until ttl elapses. A non-positive ttl is ignored since the token
// has already expired.
func (s *InMemoryRevocations) Revoke(_ context.Context, id string, ttl time.Duration) error {
	if id == "" || ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[id] = s.now().Add(ttl)
	return nil
}

func (s *InMemoryRevocations) IsRevoked(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	until, ok := s.revoked[id]
	if !ok {
		return false, nil
	}
	if !s.now().Before(until) {
		delete(s.revoked, id)
		return false, nil
	}
	return true, nil
}

// PurgeExpired drops entries whose tokens can no longer be presented.
func (s *InMemoryRevocations) PurgeExpired() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	n := 0
	for id, until := range s.revoked {
		if !now.Before(until) {
			delete(s.revoked, id)
			n++
		}
	}
	return n
}

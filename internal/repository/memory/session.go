package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sessiond/sessiond/internal/model"
)

var _ model.SessionStore = (*SessionStore)(nil)

// SessionStore is an in-memory model.SessionStore. All operations on a
// session run under one mutex, which makes them trivially linearizable.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]model.Session
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]model.Session),
	}
}

func (s *SessionStore) Create(_ context.Context, session model.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[session.ID] = session
	return nil
}

func (s *SessionStore) Resolve(_ context.Context, id string, now time.Time) (model.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return model.Session{}, model.ErrNotFound
	}
	if session.Expired(now) {
		delete(s.sessions, id)
		return model.Session{}, model.ErrSessionExpired
	}
	return session, nil
}

func (s *SessionStore) Extend(_ context.Context, id string, expiresAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil
	}
	session.ExpiresAt = expiresAt
	s.sessions[id] = session
	return nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, id)
	return nil
}

// DeleteExpired purges sessions expired at the given instant. Candidates
// are collected under the read lock, then removed one at a time so the
// write lock is never held across the whole scan.
func (s *SessionStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.RLock()
	expired := make([]string, 0)
	for id, session := range s.sessions {
		if session.Expired(now) {
			expired = append(expired, id)
		}
	}
	s.mu.RUnlock()

	var removed int64
	for _, id := range expired {
		s.mu.Lock()
		if session, ok := s.sessions[id]; ok && session.Expired(now) {
			delete(s.sessions, id)
			removed++
		}
		s.mu.Unlock()
	}

	return removed, nil
}

// Len reports the number of live records; used by tests.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

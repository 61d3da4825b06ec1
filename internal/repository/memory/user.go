// Package memory provides in-process store implementations guarded by
// mutexes. They back the server when no database DSN is configured and
// the transport tests.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/sessiond/sessiond/internal/model"
)

var _ model.UserStore = (*UserStore)(nil)

// UserStore is an in-memory model.UserStore. The username-uniqueness
// check and the insert happen under one lock, so concurrent
// registrations of the same username admit exactly one winner.
type UserStore struct {
	mu         sync.RWMutex
	byID       map[uuid.UUID]model.User
	byUsername map[string]uuid.UUID
}

func NewUserStore() *UserStore {
	return &UserStore{
		byID:       make(map[uuid.UUID]model.User),
		byUsername: make(map[string]uuid.UUID),
	}
}

func (s *UserStore) Create(_ context.Context, user model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byUsername[user.Username]; exists {
		return model.User{}, model.ErrUsernameTaken
	}

	s.byID[user.ID] = user
	s.byUsername[user.Username] = user.ID

	return user, nil
}

func (s *UserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return s.byID[id], nil
}

func (s *UserStore) GetByID(_ context.Context, id uuid.UUID) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byID[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return user, nil
}

// Ping always succeeds; the store lives in the server's own memory.
func (s *UserStore) Ping(_ context.Context) error {
	return nil
}

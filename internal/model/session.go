package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SessionStore persists server-side sessions keyed by an opaque
// identifier. Operations on the same session ID are linearizable.
type SessionStore interface {
	Create(ctx context.Context, session Session) error
	// Resolve returns the session if it is live at the given instant.
	// An expired session is evicted as a side effect and reported as
	// ErrSessionExpired exactly once; later calls see ErrNotFound.
	Resolve(ctx context.Context, id string, now time.Time) (Session, error)
	// Extend moves the expiry of a live session. Extending an absent
	// session is a no-op.
	Extend(ctx context.Context, id string, expiresAt time.Time) error
	// Delete destroys a session. Deleting an absent session is not an
	// error.
	Delete(ctx context.Context, id string) error
	// DeleteExpired purges every session expired at the given instant
	// and returns how many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Session represents a server-side session record. UserID is a
// non-owning back-reference to the user it authenticates.
type Session struct {
	ID        string
	UserID    uuid.UUID
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the session is past its expiry at the given
// instant.
func (s Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

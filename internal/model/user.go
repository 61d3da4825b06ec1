package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserStore defines persistence operations for users.
type UserStore interface {
	// Create inserts a new user. The username-uniqueness check and the
	// insert are one atomic unit; a collision yields ErrUsernameTaken
	// and leaves the existing record untouched.
	Create(ctx context.Context, user User) (User, error)
	// GetByUsername looks a user up by exact, case-sensitive username.
	// A miss is reported as ErrNotFound, not as a fault.
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
}

// User represents a stored user with authentication material.
// PasswordHash is write-only from the outside: it never appears in
// logs or client responses.
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

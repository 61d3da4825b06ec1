package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/sessiond/sessiond/internal/model"
)

var _ model.SessionStore = (*SessionRepository)(nil)

type SessionRepository struct {
	db DB
}

func NewSessionRepository(db DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, session model.Session) error {
	const query = `
        INSERT INTO sessions (id, user_id, created_at, expires_at)
        VALUES ($1, $2, $3, $4)
    `

	_, err := r.db.Exec(ctx, query,
		session.ID, session.UserID, session.CreatedAt, session.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// Resolve loads the session inside a transaction with a row lock, so a
// concurrent resolve or destroy of the same ID serializes against it.
// An expired row is deleted before the transaction commits; the caller
// sees model.ErrSessionExpired once and model.ErrNotFound afterwards.
func (r *SessionRepository) Resolve(ctx context.Context, id string, now time.Time) (model.Session, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.Session{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const query = `
        SELECT id, user_id, created_at, expires_at
        FROM sessions WHERE id = $1 FOR UPDATE
    `
	var session model.Session
	err = tx.QueryRow(ctx, query, id).Scan(
		&session.ID, &session.UserID, &session.CreatedAt, &session.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Session{}, model.ErrNotFound
		}
		return model.Session{}, fmt.Errorf("failed to get session: %w", err)
	}

	if session.Expired(now) {
		if _, err := tx.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
			return model.Session{}, fmt.Errorf("failed to evict expired session: %w", err)
		}
		if err := tx.Commit(ctx); err != nil {
			return model.Session{}, fmt.Errorf("failed to commit eviction: %w", err)
		}
		return model.Session{}, model.ErrSessionExpired
	}

	if err := tx.Commit(ctx); err != nil {
		return model.Session{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return session, nil
}

func (r *SessionRepository) Extend(ctx context.Context, id string, expiresAt time.Time) error {
	const query = `UPDATE sessions SET expires_at = $2 WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id, expiresAt); err != nil {
		return fmt.Errorf("failed to extend session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM sessions WHERE id = $1`

	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM sessions WHERE expires_at <= $1`

	tag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

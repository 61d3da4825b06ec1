package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sessiond/sessiond/internal/logger"
	"github.com/sessiond/sessiond/internal/model"
)

// sessionIDLen is the raw token size in bytes. 32 bytes gives 256 bits
// of entropy, well above the 128-bit floor required for session IDs.
const sessionIDLen = 32

// SessionManager issues, resolves, and destroys server-side sessions.
// Sessions are opaque state rather than self-describing tokens so that
// Destroy revokes access immediately.
type SessionManager struct {
	store   model.SessionStore
	logger  *logger.Logger
	ttl     time.Duration
	sliding bool
}

// NewSessionManager creates a SessionManager with the given TTL.
// With sliding enabled, every successful Resolve pushes the expiry out
// by the TTL again.
func NewSessionManager(store model.SessionStore, logger *logger.Logger, ttl time.Duration, sliding bool) *SessionManager {
	return &SessionManager{
		store:   store,
		logger:  logger,
		ttl:     ttl,
		sliding: sliding,
	}
}

// Create mints a session for the user and returns its opaque ID.
func (m *SessionManager) Create(ctx context.Context, userID uuid.UUID) (string, error) {
	id, err := newSessionID()
	if err != nil {
		return "", fmt.Errorf("failed to generate session id: %w", err)
	}

	now := time.Now()
	session := model.Session{
		ID:        id,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	if err := m.store.Create(ctx, session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	m.logger.Debug("Session manager: session created",
		"user_id", userID,
		"expires_at", session.ExpiresAt)

	return id, nil
}

// Resolve returns the session behind the given ID. An expired session
// is evicted lazily: the first post-expiry call fails with
// model.ErrSessionExpired, later calls with model.ErrNotFound.
func (m *SessionManager) Resolve(ctx context.Context, sessionID string) (model.Session, error) {
	if sessionID == "" {
		return model.Session{}, model.ErrNotFound
	}

	session, err := m.store.Resolve(ctx, sessionID, time.Now())
	if err != nil {
		return model.Session{}, err
	}

	if m.sliding {
		expiresAt := time.Now().Add(m.ttl)
		if err := m.store.Extend(ctx, sessionID, expiresAt); err != nil {
			// The session stays valid until its current expiry; only
			// the extension is lost.
			m.logger.Error("Session manager: failed to extend session",
				"error", err.Error())
		} else {
			session.ExpiresAt = expiresAt
		}
	}

	return session, nil
}

// Destroy revokes a session. Destroying an absent session is not an
// error.
func (m *SessionManager) Destroy(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := m.store.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// RunSweeper purges expired sessions on the given interval until the
// context is cancelled. Resolve already enforces expiry; the sweep only
// bounds memory held by sessions nobody presents again.
func (m *SessionManager) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := m.store.DeleteExpired(ctx, time.Now())
			if err != nil {
				m.logger.Error("Session manager: sweep failed", "error", err.Error())
				continue
			}
			if n > 0 {
				m.logger.Debug("Session manager: expired sessions purged", "count", n)
			}
		}
	}
}

func newSessionID() (string, error) {
	buf := make([]byte, sessionIDLen)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

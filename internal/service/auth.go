package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sessiond/sessiond/internal/logger"
	"github.com/sessiond/sessiond/internal/model"
)

// dummyPasswordHash is verified against when the username is unknown so
// that login takes the same time whether or not the user exists. It is
// a well-formed argon2id hash that matches no password.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// Auth implements registration, login, and logout on top of the
// credential store, the password hasher, and the session manager.
type Auth struct {
	users    model.UserStore
	sessions *SessionManager
	hasher   model.PasswordHasher
	logger   *logger.Logger
}

func NewAuth(
	users model.UserStore,
	sessions *SessionManager,
	hasher model.PasswordHasher,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		users:    users,
		sessions: sessions,
		hasher:   hasher,
		logger:   logger,
	}
}

// Register creates a new user with a freshly hashed password. A
// username collision yields model.ErrUsernameTaken and leaves the
// existing record untouched.
func (a *Auth) Register(ctx context.Context, username, email, password string) (model.User, error) {
	a.logger.Debug("Auth service: starting user registration",
		"username", username)

	if username == "" || email == "" || password == "" {
		return model.User{}, model.ErrInvalidInput
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		a.logger.Error("Auth service: failed to hash password",
			"username", username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to hash password: %w", err)
	}

	// The hash above is slow; the caller may have given up by now.
	// Bailing out here guarantees a cancelled registration never leaves
	// a half-created user behind.
	if err := ctx.Err(); err != nil {
		return model.User{}, err
	}

	now := time.Now()
	user := model.User{
		ID:           uuid.New(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	savedUser, err := a.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, model.ErrUsernameTaken) {
			a.logger.Info("Auth service: username already taken",
				"username", username)
			return model.User{}, model.ErrUsernameTaken
		}
		a.logger.Error("Auth service: failed to create user",
			"username", username,
			"error", err.Error())
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	a.logger.Info("Auth service: user registered",
		"username", username,
		"user_id", savedUser.ID)

	return savedUser, nil
}

// Login verifies the credentials and mints a session for the user.
// Unknown username and wrong password both yield
// model.ErrInvalidCredentials; the hasher still runs on an unknown
// username so the two cases are not distinguishable by timing.
func (a *Auth) Login(ctx context.Context, username, password string) (model.User, string, error) {
	a.logger.Debug("Auth service: starting login", "username", username)

	user, err := a.users.GetByUsername(ctx, username)
	targetHash := dummyPasswordHash
	userExists := false
	switch {
	case err == nil:
		targetHash = user.PasswordHash
		userExists = true
	case errors.Is(err, model.ErrNotFound):
	default:
		return model.User{}, "", fmt.Errorf("failed to get user by username: %w", err)
	}

	valid, err := a.hasher.Verify(password, targetHash)
	if err != nil {
		// A malformed stored hash must not fail the caller differently
		// from a wrong password.
		a.logger.Error("Auth service: password verification error",
			"error", err.Error())
		return model.User{}, "", model.ErrInvalidCredentials
	}

	if !userExists || !valid {
		a.logger.Info("Auth service: invalid credentials", "username", username)
		return model.User{}, "", model.ErrInvalidCredentials
	}

	sessionID, err := a.sessions.Create(ctx, user.ID)
	if err != nil {
		return model.User{}, "", fmt.Errorf("failed to create session: %w", err)
	}

	a.logger.Info("Auth service: login succeeded",
		"username", username,
		"user_id", user.ID)

	return user, sessionID, nil
}

// Logout destroys the session. Unknown session IDs are ignored.
func (a *Auth) Logout(ctx context.Context, sessionID string) error {
	return a.sessions.Destroy(ctx, sessionID)
}

// User returns the user behind the given ID.
func (a *Auth) User(ctx context.Context, id uuid.UUID) (model.User, error) {
	user, err := a.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

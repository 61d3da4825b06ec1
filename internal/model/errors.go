package model

import "errors"

var (
	// ErrNotFound reports that a record does not exist. For lookups by
	// username this is an expected outcome, not a fault.
	ErrNotFound = errors.New("not found")

	// ErrUsernameTaken reports a registration collision on username.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrInvalidCredentials covers both unknown username and wrong
	// password so that responses cannot be used for user enumeration.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrSessionExpired reports that a session existed but is past its
	// expiry. The store evicts the record when returning it.
	ErrSessionExpired = errors.New("session expired")

	// ErrUnauthenticated covers both missing and expired sessions at
	// the transport boundary; the two are never distinguished there.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidInput reports empty or malformed request fields.
	ErrInvalidInput = errors.New("invalid input")
)

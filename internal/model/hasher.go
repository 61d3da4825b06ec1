package model

// PasswordHasher produces and checks one-way password hashes.
type PasswordHasher interface {
	// Hash derives a salted hash of the password. A fresh random salt
	// is embedded on every call, so two hashes of the same password
	// never match.
	Hash(password string) (string, error)
	// Verify checks the password against an encoded hash using a
	// constant-time comparison. A malformed hash yields (false, err).
	Verify(password, hash string) (bool, error)
}

package domain

import "errors"

var (
	// ErrUserExists is returned when a sign-up targets an email that is
	// already registered, whether caught by the fast-path lookup or by the
	// storage uniqueness constraint.
	ErrUserExists = errors.New("user already exists")

	// ErrUserNotFound is a repository-level miss. The auth service never
	// lets it escape to a client; sign-in collapses it into
	// ErrInvalidCredentials to avoid account enumeration.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials covers both "no such account" and "wrong
	// password". The two cases must stay indistinguishable to callers.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers every token verification failure: bad
	// signature, malformed token, expired token. Callers reject all three
	// identically.
	ErrInvalidToken = errors.New("invalid token")
)

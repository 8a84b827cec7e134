package ports

import "github.com/acquisitions/identity-api/internal/core/domain"

// TokenService issues and verifies signed, time-bounded session tokens.
type TokenService interface {
	Issue(claims domain.Claims) (string, error)
	// Verify returns domain.ErrInvalidToken for any failure: bad
	// signature, malformed token, or expired token.
	Verify(token string) (domain.Claims, error)
}

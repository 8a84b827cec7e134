package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/acquisitions/identity-api/internal/core/domain"
)

const defaultTokenTTL = 24 * time.Hour

// TokenService issues and verifies HS256-signed session tokens. The signing
// secret is loaded once at startup and injected; rotating it invalidates all
// outstanding tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue produces a signed token carrying the identity claims, expiring
// ttl after issuance.
func (s *TokenService) Issue(claims domain.Claims) (string, error) {
	now := s.now()
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":    claims.ID,
		"email": claims.Email,
		"role":  claims.Role,
		"iat":   now.Unix(),
		"exp":   now.Add(s.ttl).Unix(),
	})

	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature and expiry and returns the embedded claims.
// Every failure mode collapses to domain.ErrInvalidToken.
func (s *TokenService) Verify(token string) (domain.Claims, error) {
	mc := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, mc, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !parsed.Valid {
		return domain.Claims{}, domain.ErrInvalidToken
	}

	id, ok := mc["id"].(float64)
	if !ok {
		return domain.Claims{}, domain.ErrInvalidToken
	}
	email, _ := mc["email"].(string)
	role, _ := mc["role"].(string)

	return domain.Claims{ID: int64(id), Email: email, Role: role}, nil
}

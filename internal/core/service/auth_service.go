package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/acquisitions/identity-api/internal/core/domain"
	"github.com/acquisitions/identity-api/internal/core/ports"
)

// AuthService implements registration and login. It logs outcomes with the
// email involved but never any form of the password.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, log: log}
}

// SignUp registers a new account. The duplicate lookup is only a fast path;
// the storage uniqueness constraint on email is the race-breaker, and a late
// violation at insert time surfaces as the same domain.ErrUserExists.
func (s *AuthService) SignUp(ctx context.Context, input ports.SignUpInput) (*domain.User, error) {
	email := NormalizeEmail(input.Email)

	role := input.Role
	if role == "" {
		role = domain.RoleUser
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		s.log.Warn().Str("email", email).Msg("sign-up rejected: email taken")
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("password hashing failed")
		return nil, err
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			s.log.Warn().Str("email", email).Msg("sign-up rejected: email taken")
			return nil, domain.ErrUserExists
		}
		s.log.Error().Err(err).Str("email", email).Msg("user creation failed")
		return nil, err
	}

	s.log.Info().Str("email", email).Int64("user_id", created.ID).Msg("user signed up")
	return stripHash(created), nil
}

// SignIn authenticates an account by email and password. An unknown email
// and a wrong password yield the same domain.ErrInvalidCredentials so the
// response cannot be used to enumerate accounts.
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*domain.User, error) {
	email = NormalizeEmail(email)

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Warn().Str("email", email).Msg("sign-in failed: unknown email")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		s.log.Error().Err(err).Str("email", email).Msg("password comparison failed")
		return nil, err
	}
	if !ok {
		s.log.Warn().Str("email", email).Msg("sign-in failed: wrong password")
		return nil, domain.ErrInvalidCredentials
	}

	s.log.Info().Str("email", email).Int64("user_id", user.ID).Msg("user signed in")
	return stripHash(user), nil
}

// NormalizeEmail lowercases and trims an email so lookups match the stored
// natural key regardless of input casing.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func stripHash(u *domain.User) *domain.User {
	clone := *u
	clone.PasswordHash = ""
	return &clone
}

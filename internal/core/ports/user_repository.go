package ports

import (
	"context"

	"github.com/acquisitions/identity-api/internal/core/domain"
)

// UserRepository defines the interface for account persistence.
type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Create persists a new account. A storage uniqueness violation on
	// email surfaces as domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

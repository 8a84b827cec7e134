package ports

import (
	"context"

	"github.com/acquisitions/identity-api/internal/core/domain"
)

// SignUpInput carries validated registration data into the auth service.
// Password is consumed during hashing and never stored or logged.
type SignUpInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type AuthService interface {
	SignUp(ctx context.Context, input SignUpInput) (*domain.User, error)
	SignIn(ctx context.Context, email, password string) (*domain.User, error)
}

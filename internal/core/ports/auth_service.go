package ports

import (
	"context"

	"github.com/casalista/marketplace-api/internal/core/domain"
)

// SignupInput carries the caller-supplied profile for registration.
type SignupInput struct {
	Name     string
	Phone    string
	Email    string
	Password string
}

// AuthService defines the credential use cases: registration, login, and the
// product-key scheme that gates elevated-role self-registration.
type AuthService interface {
	Signup(ctx context.Context, input SignupInput, role domain.Role) (string, *domain.User, error)
	Signin(ctx context.Context, email, password string) (string, *domain.User, error)
	GenerateProductKey(email string, role domain.Role) (string, error)
	VerifyProductKey(email string, role domain.Role, key string) bool
}

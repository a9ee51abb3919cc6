package ports

import (
	"context"

	"github.com/casalista/marketplace-api/internal/core/domain"
)

// UserRepository defines the persistence interface for marketplace principals.
// The storage layer enforces email uniqueness; Create returns
// domain.ErrEmailTaken on a duplicate.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

package ports

import (
	"context"

	"github.com/casalista/marketplace-api/internal/core/domain"
)

// HomeFilter narrows a listing search. Zero values mean "no constraint".
type HomeFilter struct {
	City         string
	PropertyType domain.PropertyType
	MinPrice     float64
	MaxPrice     float64
}

// HomeRepository defines the persistence interface for listings.
type HomeRepository interface {
	Create(ctx context.Context, home *domain.Home) (*domain.Home, error)
	FindByID(ctx context.Context, id string) (*domain.Home, error)
	Find(ctx context.Context, filter HomeFilter) ([]domain.Home, error)
	Update(ctx context.Context, home *domain.Home) error
	Delete(ctx context.Context, id string) error
}

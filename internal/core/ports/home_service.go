package ports

import (
	"context"

	"github.com/casalista/marketplace-api/internal/core/domain"
)

// CreateHomeInput carries all data needed to create a listing. RealtorID is
// always taken from the authenticated identity, never from the request body.
type CreateHomeInput struct {
	Address      string
	City         string
	Price        float64
	LandSizeSqm  float64
	Bedrooms     int
	Bathrooms    int
	PropertyType domain.PropertyType
	ImageURLs    []string
	RealtorID    int64
}

// UpdateHomeInput carries a partial listing update. Nil fields are untouched.
type UpdateHomeInput struct {
	Address      *string
	City         *string
	Price        *float64
	LandSizeSqm  *float64
	Bedrooms     *int
	Bathrooms    *int
	PropertyType *domain.PropertyType
}

// HomeService defines use-case operations for listings. Mutations receive the
// acting user so ownership can be enforced: a REALTOR may only touch their own
// listings, an ADMIN may touch any.
type HomeService interface {
	CreateHome(ctx context.Context, input CreateHomeInput) (*domain.Home, error)
	GetHome(ctx context.Context, id string) (*domain.Home, error)
	ListHomes(ctx context.Context, filter HomeFilter) ([]domain.Home, error)
	UpdateHome(ctx context.Context, id string, input UpdateHomeInput, actor *domain.User) (*domain.Home, error)
	DeleteHome(ctx context.Context, id string, actor *domain.User) error
}

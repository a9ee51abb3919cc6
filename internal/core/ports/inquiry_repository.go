package ports

import (
	"context"
	"time"

	"github.com/casalista/marketplace-api/internal/core/domain"
)

// InquiryRepository defines the persistence interface for buyer inquiries.
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *domain.Inquiry) (*domain.Inquiry, error)
	FindByHome(ctx context.Context, homeID string) ([]domain.Inquiry, error)
	MarkNotified(ctx context.Context, id string, at time.Time) error
}

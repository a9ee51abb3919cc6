package ports

import (
	"context"

	"github.com/casalista/marketplace-api/internal/core/domain"
)

// InquiryNotification is the unit of work handed to the async dispatcher
// after an inquiry is persisted.
type InquiryNotification struct {
	InquiryID string
	HomeID    string
	RealtorID int64
	BuyerName string
}

// InquiryService defines use-case operations for buyer→realtor messages.
type InquiryService interface {
	CreateInquiry(ctx context.Context, homeID string, buyer *domain.User, message string) (*domain.Inquiry, error)
	ListInquiries(ctx context.Context, homeID string, actor *domain.User) ([]domain.Inquiry, error)
	// Notify processes one queued notification; called by dispatcher workers.
	Notify(ctx context.Context, n InquiryNotification) error
}

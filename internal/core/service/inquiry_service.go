package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/casalista/marketplace-api/internal/core/domain"
	"github.com/casalista/marketplace-api/internal/core/ports"
)

// NotificationQueue abstracts the async dispatcher the service hands
// realtor notifications to after an inquiry is persisted.
type NotificationQueue interface {
	Enqueue(n ports.InquiryNotification)
}

type inquiryService struct {
	inquiries ports.InquiryRepository
	homes     ports.HomeRepository
	queue     NotificationQueue
	log       zerolog.Logger
}

// NewInquiryService returns an InquiryService implementation. queue may be
// nil; inquiries are then persisted without async notification.
func NewInquiryService(inquiries ports.InquiryRepository, homes ports.HomeRepository, queue NotificationQueue, log zerolog.Logger) ports.InquiryService {
	return &inquiryService{inquiries: inquiries, homes: homes, queue: queue, log: log}
}

// CreateInquiry persists a buyer message against a listing and enqueues a
// notification for the owning realtor. The write is synchronous; notification
// failures never surface to the buyer.
func (s *inquiryService) CreateInquiry(ctx context.Context, homeID string, buyer *domain.User, message string) (*domain.Inquiry, error) {
	home, err := s.homes.FindByID(ctx, homeID)
	if err != nil {
		return nil, err
	}

	inquiry := &domain.Inquiry{
		HomeID:    home.ID,
		BuyerID:   buyer.ID,
		RealtorID: home.RealtorID,
		Message:   message,
		CreatedAt: time.Now().UTC(),
	}

	created, err := s.inquiries.Create(ctx, inquiry)
	if err != nil {
		return nil, fmt.Errorf("create inquiry: %w", err)
	}

	if s.queue != nil {
		s.queue.Enqueue(ports.InquiryNotification{
			InquiryID: created.ID,
			HomeID:    home.ID,
			RealtorID: home.RealtorID,
			BuyerName: buyer.Name,
		})
	}

	s.log.Info().Str("inquiry_id", created.ID).Str("home_id", home.ID).Int64("buyer_id", buyer.ID).Msg("inquiry created")
	return created, nil
}

func (s *inquiryService) ListInquiries(ctx context.Context, homeID string, actor *domain.User) ([]domain.Inquiry, error) {
	home, err := s.homes.FindByID(ctx, homeID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && home.RealtorID != actor.ID {
		return nil, domain.ErrForbidden
	}
	return s.inquiries.FindByHome(ctx, homeID)
}

// Notify marks a queued inquiry as delivered to its realtor. Called from
// dispatcher workers, one notification at a time per realtor shard.
func (s *inquiryService) Notify(ctx context.Context, n ports.InquiryNotification) error {
	if err := s.inquiries.MarkNotified(ctx, n.InquiryID, time.Now().UTC()); err != nil {
		return fmt.Errorf("notify inquiry: %w", err)
	}

	s.log.Info().
		Str("inquiry_id", n.InquiryID).
		Int64("realtor_id", n.RealtorID).
		Str("buyer", n.BuyerName).
		Msg("realtor notified of inquiry")
	return nil
}

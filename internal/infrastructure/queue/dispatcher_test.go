package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/casalista/marketplace-api/internal/core/domain"
	"github.com/casalista/marketplace-api/internal/core/ports"
)

type recordingService struct {
	mu       sync.Mutex
	notified []ports.InquiryNotification
	done     chan struct{}
}

func (s *recordingService) CreateInquiry(context.Context, string, *domain.User, string) (*domain.Inquiry, error) {
	panic("not used")
}

func (s *recordingService) ListInquiries(context.Context, string, *domain.User) ([]domain.Inquiry, error) {
	panic("not used")
}

func (s *recordingService) Notify(_ context.Context, n ports.InquiryNotification) error {
	s.mu.Lock()
	s.notified = append(s.notified, n)
	s.mu.Unlock()
	s.done <- struct{}{}
	return nil
}

func TestDispatcher_DeliversToWorkers(t *testing.T) {
	svc := &recordingService{done: make(chan struct{}, 8)}
	d := NewDispatcher(3, zerolog.Nop())
	d.Bind(svc)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := int64(1); i <= 4; i++ {
		d.Enqueue(ports.InquiryNotification{InquiryID: "inq", RealtorID: i})
	}

	for i := 0; i < 4; i++ {
		select {
		case <-svc.done:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for notification %d", i)
		}
	}

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if len(svc.notified) != 4 {
		t.Fatalf("expected 4 notifications, got %d", len(svc.notified))
	}
}

func TestDispatcher_ShardIsDeterministicPerRealtor(t *testing.T) {
	d := NewDispatcher(4, zerolog.Nop())

	for realtor := int64(1); realtor <= 50; realtor++ {
		first := d.shardIndex(realtor)
		for i := 0; i < 5; i++ {
			if got := d.shardIndex(realtor); got != first {
				t.Fatalf("realtor %d: shard changed from %d to %d", realtor, first, got)
			}
		}
		if first < 0 || first >= 4 {
			t.Fatalf("realtor %d: shard %d out of range", realtor, first)
		}
	}
}

func TestDispatcher_StopsOnContextCancel(t *testing.T) {
	svc := &recordingService{done: make(chan struct{}, 1)}
	d := NewDispatcher(1, zerolog.Nop())
	d.Bind(svc)

	ctx, cancel := context.WithCancel(context.Background())
	d.Start(ctx)
	cancel()

	// Give the worker a moment to observe cancellation; a notification
	// enqueued afterwards must not be processed.
	time.Sleep(50 * time.Millisecond)
	d.Enqueue(ports.InquiryNotification{InquiryID: "late", RealtorID: 1})

	select {
	case <-svc.done:
		t.Fatalf("worker processed a notification after cancellation")
	case <-time.After(100 * time.Millisecond):
	}
}

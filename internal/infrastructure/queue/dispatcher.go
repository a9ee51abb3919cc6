package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/casalista/marketplace-api/internal/api/metrics"
	"github.com/casalista/marketplace-api/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes inquiry notifications to a fixed set of workers using
// consistent hashing on the realtor id, guaranteeing per-realtor delivery
// ordering.
type Dispatcher struct {
	workers []chan ports.InquiryNotification
	service ports.InquiryService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used. Bind must be called before
// Start.
func NewDispatcher(numWorkers int, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.InquiryNotification, numWorkers),
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.InquiryNotification, channelBuffer)
	}
	return d
}

// Bind attaches the service that processes notifications. Separate from the
// constructor because the inquiry service itself enqueues onto this
// dispatcher.
func (d *Dispatcher) Bind(service ports.InquiryService) {
	d.service = service
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends a notification to the worker responsible for its realtor.
// The call is non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(n ports.InquiryNotification) {
	idx := d.shardIndex(n.RealtorID)
	d.workers[idx] <- n
	metrics.InquiryQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(d.workers[idx])))
}

// shardIndex maps a realtor id deterministically to a worker index.
func (d *Dispatcher) shardIndex(realtorID int64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(realtorID, 10)))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.InquiryNotification) {
	workerLabel := strconv.Itoa(id)
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			metrics.InquiryQueueDepth.WithLabelValues(workerLabel).Set(float64(len(ch)))
			if err := d.service.Notify(ctx, n); err != nil {
				metrics.InquiryNotifyErrorsTotal.WithLabelValues("notify_failed").Inc()
				d.log.Error().Err(err).
					Str("inquiry_id", n.InquiryID).
					Int("worker_id", id).
					Msg("inquiry notification failed")
				continue
			}
			metrics.InquiriesNotifiedTotal.Inc()
		}
	}
}

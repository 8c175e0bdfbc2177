package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/cargoline/backoffice/internal/api/metrics"
	"github.com/cargoline/backoffice/internal/core/ports"
)

const (
	defaultWorkers = 8
	channelBuffer  = 256
)

// ErrQueueFull is returned when a worker channel has no room left.
var ErrQueueFull = errors.New("dispatcher queue full")

// Dispatcher routes transition events to a fixed set of workers using
// consistent hashing on the document ID, guaranteeing per-document ordering.
type Dispatcher struct {
	workers []chan ports.TransitionEventInput
	service ports.TransitionEventService
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, service ports.TransitionEventService, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan ports.TransitionEventInput, numWorkers),
		service: service,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan ports.TransitionEventInput, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue hands an event to the worker responsible for its document. It never
// blocks: a full worker channel yields ErrQueueFull.
func (d *Dispatcher) Enqueue(event ports.TransitionEventInput) error {
	idx := d.shardIndex(event.DocumentID)
	select {
	case d.workers[idx] <- event:
		metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(idx)).Inc()
		return nil
	default:
		return ErrQueueFull
	}
}

// EnqueueBatch enqueues events in order, preserving per-document ordering.
// It returns how many were accepted before the first rejection.
func (d *Dispatcher) EnqueueBatch(events []ports.TransitionEventInput) (int, error) {
	for i, e := range events {
		if err := d.Enqueue(e); err != nil {
			return i, err
		}
	}
	return len(events), nil
}

// shardIndex maps a document ID deterministically to a worker index.
func (d *Dispatcher) shardIndex(documentID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(documentID))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan ports.TransitionEventInput) {
	depth := metrics.EventsQueueDepth.WithLabelValues(strconv.Itoa(id))
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			depth.Dec()

			start := time.Now()
			result := "ok"
			if err := d.service.Process(ctx, event); err != nil {
				result = "error"
				d.log.Error().Err(err).
					Str("document_id", event.DocumentID).
					Str("status", event.Status).
					Int("worker_id", id).
					Msg("event processing failed")
			}
			metrics.EventProcessingDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
		}
	}
}

package queue

import (
	"context"
	"hash/fnv"

	"github.com/rs/zerolog"

	"github.com/rtsdrums-eng/kitchen-app/internal/core/domain"
	"github.com/rtsdrums-eng/kitchen-app/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Dispatcher routes acceptance audit events to a fixed set of workers using
// consistent hashing on the target household, preserving per-household
// ordering in the audit trail.
type Dispatcher struct {
	workers []chan domain.AcceptanceEvent
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.AcceptanceEvent, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.AcceptanceEvent, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Enqueue sends an event to the worker responsible for its target household.
// Non-blocking up to channelBuffer capacity.
func (d *Dispatcher) Enqueue(event domain.AcceptanceEvent) {
	d.workers[d.shardIndex(event.ToHousehold)] <- event
}

// shardIndex maps a household id deterministically to a worker index.
func (d *Dispatcher) shardIndex(householdID string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(householdID))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.AcceptanceEvent) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			if err := d.repo.InsertAcceptance(ctx, &event); err != nil {
				d.log.Error().Err(err).
					Str("invitation_id", event.InvitationID).
					Str("household_id", event.ToHousehold).
					Int("worker_id", id).
					Msg("audit event insert failed")
			}
		}
	}
}

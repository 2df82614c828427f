package notify

import (
	"context"
	"log/slog"
	"sync"

	"foodloop/internal/core/ports"
)

const (
	DefaultWorkers   = 4
	DefaultQueueSize = 64
)

// Dispatcher implements ports.Notifier with a fixed pool of workers reading
// from a bounded queue. Notify never blocks: when the queue is full the
// delivery is dropped and logged.
type Dispatcher struct {
	size      int
	jobs      chan Delivery
	deliverer Deliverer
	log       *slog.Logger

	wg     sync.WaitGroup
	cancel context.CancelFunc
}

func NewDispatcher(workers, queueSize int, deliverer Deliverer, log *slog.Logger) *Dispatcher {
	if workers < 1 {
		workers = DefaultWorkers
	}
	if queueSize < 1 {
		queueSize = DefaultQueueSize
	}
	return &Dispatcher{
		size:      workers,
		jobs:      make(chan Delivery, queueSize),
		deliverer: deliverer,
		log:       log.With("component", "notify_dispatcher"),
	}
}

// Start launches the worker goroutines. They stop when ctx is done or Stop is
// called.
func (d *Dispatcher) Start(ctx context.Context) {
	ctx, d.cancel = context.WithCancel(ctx)
	for i := range d.size {
		d.wg.Add(1)
		go d.worker(ctx, i)
	}
	d.log.InfoContext(ctx, "notification workers started", "workers", d.size)
}

// Stop cancels the workers and waits for them to return. Deliveries still
// queued are discarded.
func (d *Dispatcher) Stop() {
	if d.cancel != nil {
		d.cancel()
	}
	d.wg.Wait()
}

func (d *Dispatcher) worker(ctx context.Context, id int) {
	defer d.wg.Done()
	for {
		select {
		case job := <-d.jobs:
			if err := d.deliverer.Deliver(ctx, job); err != nil {
				d.log.WarnContext(ctx, "notification delivery failed",
					"worker", id, "recipient", job.Recipient.String(), "kind", job.Message.Kind, "error", err)
			}
		case <-ctx.Done():
			return
		}
	}
}

// Notify queues one delivery per recipient.
func (d *Dispatcher) Notify(ctx context.Context, event ports.TransitionEvent) {
	for _, job := range Deliveries(event) {
		select {
		case d.jobs <- job:
		default:
			d.log.WarnContext(ctx, "notification queue full, dropping",
				"recipient", job.Recipient.String(), "kind", job.Message.Kind)
		}
	}
}

// Pending returns the number of queued deliveries.
func (d *Dispatcher) Pending() int {
	return len(d.jobs)
}

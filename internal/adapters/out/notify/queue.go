package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"foodloop/internal/core/domain/model/kernel"

	"github.com/hibiken/asynq"
)

// DeliverTask is the asynq task type carrying one Delivery.
const DeliverTask = "notification:deliver"

// Enqueuer is the part of *asynq.Client the queue needs.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type deliverPayload struct {
	Recipient string  `json:"recipient"`
	Message   Message `json:"message"`
}

// NewDeliverTask encodes a delivery as an asynq task.
func NewDeliverTask(d Delivery) (*asynq.Task, error) {
	data, err := json.Marshal(deliverPayload{Recipient: d.Recipient.String(), Message: d.Message})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	return asynq.NewTask(DeliverTask, data), nil
}

// QueueDeliverer hands deliveries to redis through asynq; the worker process
// sends them.
type QueueDeliverer struct {
	client   Enqueuer
	maxRetry int
}

func NewQueueDeliverer(client Enqueuer, maxRetry int) QueueDeliverer {
	if maxRetry < 0 {
		maxRetry = 0
	}
	return QueueDeliverer{client: client, maxRetry: maxRetry}
}

func (q QueueDeliverer) Deliver(ctx context.Context, d Delivery) error {
	task, err := NewDeliverTask(d)
	if err != nil {
		return err
	}
	if _, err := q.client.EnqueueContext(ctx, task, asynq.MaxRetry(q.maxRetry)); err != nil {
		return fmt.Errorf("enqueue delivery: %w", err)
	}
	return nil
}

// Processor runs queued deliveries inside the asynq worker.
type Processor struct {
	deliverer Deliverer
	log       *slog.Logger
}

func NewProcessor(deliverer Deliverer, log *slog.Logger) *Processor {
	return &Processor{deliverer: deliverer, log: log.With("component", "notify_processor")}
}

// Handler registers the delivery task handler.
func (p *Processor) Handler() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(DeliverTask, p.HandleDeliver)
	return mux
}

// HandleDeliver decodes a task and delivers it. A malformed payload is not
// retried.
func (p *Processor) HandleDeliver(ctx context.Context, task *asynq.Task) error {
	var payload deliverPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
	}
	recipient, err := kernel.UUIDFromString(payload.Recipient)
	if err != nil {
		return fmt.Errorf("decode recipient: %v: %w", err, asynq.SkipRetry)
	}

	if err := p.deliverer.Deliver(ctx, Delivery{Recipient: recipient, Message: payload.Message}); err != nil {
		p.log.WarnContext(ctx, "queued delivery failed", "recipient", payload.Recipient, "error", err)
		return err
	}
	return nil
}

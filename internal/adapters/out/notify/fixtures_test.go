package notify_test

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"foodloop/internal/adapters/out/notify"
	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func claimedEvent(recipients ...kernel.UUID) ports.TransitionEvent {
	return ports.TransitionEvent{
		Kind:       ports.DonationClaimed,
		DonationID: kernel.NewUUID(),
		TrackingID: "FL-20260314-01",
		ItemName:   "Rice and curry",
		Status:     "assigned",
		Recipients: recipients,
		OccurredAt: time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

// recordingDeliverer collects deliveries and can hold them behind a gate.
type recordingDeliverer struct {
	mu        sync.Mutex
	delivered []notify.Delivery
	gate      chan struct{}
	done      chan struct{}
	err       error
}

func newRecordingDeliverer() *recordingDeliverer {
	return &recordingDeliverer{done: make(chan struct{}, 64)}
}

func (r *recordingDeliverer) Deliver(ctx context.Context, d notify.Delivery) error {
	if r.gate != nil {
		select {
		case <-r.gate:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	r.mu.Lock()
	r.delivered = append(r.delivered, d)
	r.mu.Unlock()
	r.done <- struct{}{}
	return r.err
}

func (r *recordingDeliverer) recipients() []kernel.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]kernel.UUID, 0, len(r.delivered))
	for _, d := range r.delivered {
		out = append(out, d.Recipient)
	}
	return out
}

type MockSubscriptionRepository struct{ mock.Mock }

func (m *MockSubscriptionRepository) Save(ctx context.Context, s ports.PushSubscription) error {
	return m.Called(ctx, s).Error(0)
}

func (m *MockSubscriptionRepository) FindByUser(ctx context.Context, userID kernel.UUID) ([]ports.PushSubscription, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ports.PushSubscription), args.Error(1)
}

func (m *MockSubscriptionRepository) Delete(ctx context.Context, endpoint string) error {
	return m.Called(ctx, endpoint).Error(0)
}

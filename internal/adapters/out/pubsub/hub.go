// Package pubsub fans driver positions out to the observers of each
// donation. Every donation has its own topic; subscribers hold a bounded
// buffer and a slow subscriber loses its oldest events, never the newest.
package pubsub

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/core/ports"
)

// DefaultBufferSize is the per-subscriber backlog.
const DefaultBufferSize = 8

// Event is one driver position on a donation topic. Seq increases by one per
// publish on the topic, so a gap tells a subscriber it missed updates.
type Event struct {
	Seq        uint64
	DonationID kernel.UUID
	DriverID   kernel.UUID
	Latitude   float64
	Longitude  float64
	ReportedAt time.Time
}

// TopicName is the external name of a donation's location channel.
func TopicName(donationID kernel.UUID) string {
	return "donation:" + donationID.String()
}

type topic struct {
	seq  uint64
	subs map[*Subscription]struct{}
}

// Hub implements ports.LocationPublisher. Publishing never blocks on a
// subscriber.
type Hub struct {
	mu         sync.Mutex
	topics     map[kernel.UUID]*topic
	bufferSize int
	log        *slog.Logger
}

func NewHub(bufferSize int, log *slog.Logger) *Hub {
	if bufferSize < 1 {
		bufferSize = DefaultBufferSize
	}
	return &Hub{
		topics:     make(map[kernel.UUID]*topic),
		bufferSize: bufferSize,
		log:        log.With("component", "location_hub"),
	}
}

// Subscription receives the events of one topic on C. C is closed when the
// subscription ends, either through Unsubscribe or CloseTopic.
type Subscription struct {
	C          <-chan Event
	ch         chan Event
	donationID kernel.UUID
	hub        *Hub
	closed     bool
}

// Subscribe opens a subscription on the donation's topic.
func (h *Hub) Subscribe(donationID kernel.UUID) *Subscription {
	ch := make(chan Event, h.bufferSize)
	sub := &Subscription{C: ch, ch: ch, donationID: donationID, hub: h}

	h.mu.Lock()
	defer h.mu.Unlock()

	t, ok := h.topics[donationID]
	if !ok {
		t = &topic{subs: make(map[*Subscription]struct{})}
		h.topics[donationID] = t
	}
	t.subs[sub] = struct{}{}

	return sub
}

// Unsubscribe ends the subscription. Calling it more than once is safe. The
// topic is removed with its last subscriber.
func (s *Subscription) Unsubscribe() {
	h := s.hub
	h.mu.Lock()
	defer h.mu.Unlock()

	if s.closed {
		return
	}
	if t, ok := h.topics[s.donationID]; ok {
		delete(t.subs, s)
		if len(t.subs) == 0 {
			delete(h.topics, s.donationID)
		}
	}
	s.close()
}

func (s *Subscription) close() {
	s.closed = true
	close(s.ch)
}

// Publish delivers the event to every current subscriber of the donation.
// Without subscribers the event is discarded.
func (h *Hub) Publish(ctx context.Context, event ports.LocationEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	t, ok := h.topics[event.DonationID]
	if !ok {
		return
	}

	t.seq++
	e := Event{
		Seq:        t.seq,
		DonationID: event.DonationID,
		DriverID:   event.DriverID,
		Latitude:   event.Location.Latitude(),
		Longitude:  event.Location.Longitude(),
		ReportedAt: event.ReportedAt,
	}

	for sub := range t.subs {
		if !offer(sub.ch, e) {
			h.log.DebugContext(ctx, "dropped stale location event",
				"topic", TopicName(event.DonationID), "seq", e.Seq)
		}
	}
}

// offer sends without blocking. A full buffer loses its oldest event to make
// room; the return value reports whether anything was dropped. Only the hub
// sends, under its lock, so the second send always finds room.
func offer(ch chan Event, e Event) bool {
	select {
	case ch <- e:
		return true
	default:
	}

	select {
	case <-ch:
	default:
	}
	ch <- e
	return false
}

// CloseTopic ends every subscription of the donation.
func (h *Hub) CloseTopic(_ context.Context, donationID kernel.UUID) {
	h.mu.Lock()
	defer h.mu.Unlock()

	t, ok := h.topics[donationID]
	if !ok {
		return
	}
	for sub := range t.subs {
		sub.close()
	}
	delete(h.topics, donationID)
}

// Subscribers returns the number of open subscriptions on a donation.
func (h *Hub) Subscribers(donationID kernel.UUID) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	if t, ok := h.topics[donationID]; ok {
		return len(t.subs)
	}
	return 0
}

// Topics returns the number of topics with at least one subscriber.
func (h *Hub) Topics() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics)
}

// Package notify delivers lifecycle notifications to the people involved in
// a donation. The Dispatcher accepts events from the use cases without
// blocking and hands one Delivery per recipient to a Deliverer: web push,
// a durable asynq queue in front of web push, or the log.
package notify

import (
	"context"
	"fmt"
	"time"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/core/ports"
)

// Message is the JSON body pushed to the browser.
type Message struct {
	Kind       string    `json:"kind"`
	Title      string    `json:"title"`
	Body       string    `json:"body"`
	URL        string    `json:"url"`
	DonationID string    `json:"donationId"`
	TrackingID string    `json:"trackingId"`
	Status     string    `json:"status"`
	SentAt     time.Time `json:"sentAt"`
}

// Delivery is one message addressed to one user.
type Delivery struct {
	Recipient kernel.UUID
	Message   Message
}

// Deliverer sends a single delivery. Errors are the caller's to log.
type Deliverer interface {
	Deliver(ctx context.Context, d Delivery) error
}

var titles = map[ports.TransitionKind]string{
	ports.DonationCreated:   "Donation listed",
	ports.DonationApproved:  "Donation approved",
	ports.DonationClaimed:   "Donation claimed",
	ports.DonationPickedUp:  "Donation picked up",
	ports.DonationDelivered: "Donation delivered",
	ports.DonationCancelled: "Donation cancelled",
}

// NewMessage renders the push message for a transition.
func NewMessage(event ports.TransitionEvent) Message {
	title, ok := titles[event.Kind]
	if !ok {
		title = "Donation updated"
	}

	return Message{
		Kind:       string(event.Kind),
		Title:      title,
		Body:       fmt.Sprintf("%s (%s) is now %s", event.ItemName, event.TrackingID, event.Status),
		URL:        "/donations/" + event.DonationID.String() + "/tracking",
		DonationID: event.DonationID.String(),
		TrackingID: event.TrackingID,
		Status:     event.Status,
		SentAt:     event.OccurredAt,
	}
}

// Deliveries expands an event into one delivery per distinct recipient.
func Deliveries(event ports.TransitionEvent) []Delivery {
	msg := NewMessage(event)
	seen := make(map[kernel.UUID]struct{}, len(event.Recipients))
	out := make([]Delivery, 0, len(event.Recipients))
	for _, r := range event.Recipients {
		if _, dup := seen[r]; dup {
			continue
		}
		seen[r] = struct{}{}
		out = append(out, Delivery{Recipient: r, Message: msg})
	}
	return out
}

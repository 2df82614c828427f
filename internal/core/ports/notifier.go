package ports

import (
	"context"
	"time"

	"foodloop/internal/core/domain/model/kernel"
)

// TransitionKind names a lifecycle change worth telling people about.
type TransitionKind string

const (
	DonationCreated   TransitionKind = "donation.created"
	DonationApproved  TransitionKind = "donation.approved"
	DonationClaimed   TransitionKind = "donation.claimed"
	DonationPickedUp  TransitionKind = "donation.picked_up"
	DonationDelivered TransitionKind = "donation.delivered"
	DonationCancelled TransitionKind = "donation.cancelled"
)

// TransitionEvent describes a committed transition.
type TransitionEvent struct {
	Kind       TransitionKind
	DonationID kernel.UUID
	TrackingID string
	ItemName   string
	Status     string
	// Recipients are the users to notify.
	Recipients []kernel.UUID
	OccurredAt time.Time
}

// Notifier is fire-and-forget. Implementations log their own failures and
// must not block the caller.
type Notifier interface {
	Notify(ctx context.Context, event TransitionEvent)
}

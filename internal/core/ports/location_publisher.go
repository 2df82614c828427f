package ports

import (
	"context"
	"time"

	"foodloop/internal/core/domain/model/kernel"
)

// LocationEvent is a driver position published on a donation's topic.
type LocationEvent struct {
	DonationID kernel.UUID
	DriverID   kernel.UUID
	Location   kernel.GeoPoint
	ReportedAt time.Time
}

// LocationPublisher fans driver positions out to the observers of one
// donation. Delivery is best effort: a slow observer loses older events,
// never newer ones.
type LocationPublisher interface {
	Publish(ctx context.Context, event LocationEvent)

	// CloseTopic ends every subscription of the donation.
	CloseTopic(ctx context.Context, donationID kernel.UUID)
}

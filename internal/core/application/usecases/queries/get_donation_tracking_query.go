package queries

import (
	"errors"
	"time"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/pkg/errs"
	"foodloop/internal/pkg/guard"
)

var ErrGetDonationTrackingQueryIsNotConstructed = errors.New(
	"GetDonationTrackingQuery must be created via NewGetDonationTrackingQuery constructor",
)

// GetDonationTrackingQuery reads the live map view of one donation.
type GetDonationTrackingQuery struct {
	donationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetDonationTrackingQuery(donationID kernel.UUID) (GetDonationTrackingQuery, error) {
	if err := donationID.Validate(); err != nil {
		return GetDonationTrackingQuery{}, errs.NewValueIsRequiredErrorWithCause("donation id", err)
	}

	return GetDonationTrackingQuery{
		donationID: donationID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetDonationTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetDonationTrackingQueryIsNotConstructed)
}

func (q GetDonationTrackingQuery) DonationID() kernel.UUID {
	return q.donationID
}

// Party is a participant as shown on the tracking map. Only ID is set when
// the profile no longer exists.
type Party struct {
	ID                kernel.UUID
	DisplayName       string
	Address           string
	Location          *kernel.GeoPoint
	LocationUpdatedAt *time.Time
}

// DonationTracking is the composed tracking view.
type DonationTracking struct {
	Donation DonationSummary
	Donor    Party
	Receiver *Party
	Driver   *Party

	ActualPickupAt *time.Time
	// Destination is where the driver is heading next: the pickup point while
	// assigned, the receiver once picked up.
	Destination *kernel.GeoPoint
	// DriverDistance is measured from the driver's last-known position to
	// Destination.
	DriverDistance Distance
	// ETA assumes city driving speed; zero when the distance is unknown.
	ETA time.Duration
}

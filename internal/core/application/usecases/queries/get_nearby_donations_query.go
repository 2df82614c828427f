package queries

import (
	"errors"
	"time"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/pkg/errs"
	"foodloop/internal/pkg/guard"
)

var ErrGetNearbyDonationsQueryIsNotConstructed = errors.New(
	"GetNearbyDonationsQuery must be created via NewGetNearbyDonationsQuery constructor",
)

// GetNearbyDonationsQuery lists claimed donations still waiting for a driver,
// nearest to the driver first.
type GetNearbyDonationsQuery struct {
	driverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetNearbyDonationsQuery(driverID kernel.UUID) (GetNearbyDonationsQuery, error) {
	if err := driverID.Validate(); err != nil {
		return GetNearbyDonationsQuery{}, errs.NewValueIsRequiredErrorWithCause("driver id", err)
	}

	return GetNearbyDonationsQuery{
		driverID: driverID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetNearbyDonationsQuery) Validate() error {
	return q.guard.Validate(ErrGetNearbyDonationsQueryIsNotConstructed)
}

func (q GetNearbyDonationsQuery) DriverID() kernel.UUID {
	return q.driverID
}

// NearbyDonation is one entry of the driver's work list.
type NearbyDonation struct {
	DonationSummary
	Distance Distance
	ETA      time.Duration
}

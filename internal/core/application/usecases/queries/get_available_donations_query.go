package queries

import (
	"errors"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/pkg/errs"
	"foodloop/internal/pkg/guard"
)

var ErrGetAvailableDonationsQueryIsNotConstructed = errors.New(
	"GetAvailableDonationsQuery must be created via NewGetAvailableDonationsQuery constructor",
)

// GetAvailableDonationsQuery lists donations a receiver can still claim.
// With a viewer, each entry carries the distance from the viewer's profile
// location.
//
// Example:
//
//	query, err := NewGetAvailableDonationsQuery(&receiverID)
//	if err != nil {
//	    return err
//	}
//	donations, err := handler.Handle(ctx, query)
type GetAvailableDonationsQuery struct {
	viewerID *kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAvailableDonationsQuery accepts a nil viewer for anonymous listings.
func NewGetAvailableDonationsQuery(viewerID *kernel.UUID) (GetAvailableDonationsQuery, error) {
	if viewerID != nil {
		if err := viewerID.Validate(); err != nil {
			return GetAvailableDonationsQuery{}, errs.NewValueIsRequiredErrorWithCause("viewer id", err)
		}
		id := *viewerID
		viewerID = &id
	}

	return GetAvailableDonationsQuery{
		viewerID: viewerID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetAvailableDonationsQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableDonationsQueryIsNotConstructed)
}

// AvailableDonation is one entry of the listing.
type AvailableDonation struct {
	DonationSummary
	DonorName string
	// Distance is measured from the viewer; unknown without a viewer.
	Distance Distance
}

package queries

import (
	"context"
	"slices"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/core/ports"
)

// GetAvailableDonationsQueryHandler evaluates the availability predicate on
// the donations themselves, after the store's coarse filter, so a listing
// can never disagree with what a claim would accept. Entries are newest
// first.
type GetAvailableDonationsQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	clock      Clock
}

func NewGetAvailableDonationsQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	clock Clock,
) GetAvailableDonationsQueryHandler {
	return GetAvailableDonationsQueryHandler{uowFactory: uowFactory, clock: clock}
}

func (h GetAvailableDonationsQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableDonationsQuery,
) ([]AvailableDonation, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	people := newProfiles(uow.UserRepository())
	now := h.clock()

	var origin *kernel.GeoPoint
	if query.viewerID != nil {
		viewer, err := people.get(ctx, *query.viewerID)
		if err != nil {
			return nil, err
		}
		if viewer != nil {
			origin = viewer.Location()
		}
	}

	candidates, err := uow.DonationRepository().FindAvailable(ctx, now)
	if err != nil {
		return nil, err
	}

	available := make([]AvailableDonation, 0, len(candidates))
	for _, d := range candidates {
		if !d.IsAvailable(now) {
			continue
		}

		donor, err := people.get(ctx, d.DonorID())
		if err != nil {
			return nil, err
		}

		pickup := pickupLocation(d, donor)
		entry := AvailableDonation{
			DonationSummary: newDonationSummary(d, pickup),
			Distance:        measure(origin, pickup),
		}
		if donor != nil {
			entry.DonorName = donor.DisplayName()
		}
		available = append(available, entry)
	}

	slices.SortStableFunc(available, func(a, b AvailableDonation) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})

	return available, nil
}

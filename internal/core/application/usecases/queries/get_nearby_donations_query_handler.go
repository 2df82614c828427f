package queries

import (
	"context"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/core/domain/model/user"
	"foodloop/internal/core/domain/services"
	"foodloop/internal/core/ports"
)

type GetNearbyDonationsQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	ranker     services.ProximityRanker
	clock      Clock
}

func NewGetNearbyDonationsQueryHandler(uowFactory ports.UnitOfWorkFactory, clock Clock) GetNearbyDonationsQueryHandler {
	return GetNearbyDonationsQueryHandler{
		uowFactory: uowFactory,
		ranker:     services.NewProximityRanker(),
		clock:      clock,
	}
}

// Handle ranks by the stored pickup coordinates only; donations without them
// come last.
func (h GetNearbyDonationsQueryHandler) Handle(
	ctx context.Context,
	query GetNearbyDonationsQuery,
) ([]NearbyDonation, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	driver, err := uow.UserRepository().Get(ctx, query.DriverID())
	if err != nil {
		return nil, err
	}
	if driver.Role() != user.Driver {
		return nil, user.ErrNotADriver
	}

	now := h.clock()
	waiting, err := uow.DonationRepository().FindAwaitingDriver(ctx, now)
	if err != nil {
		return nil, err
	}

	ranked := h.ranker.Rank(driver.Location(), waiting)
	nearby := make([]NearbyDonation, 0, len(ranked))
	for _, r := range ranked {
		if r.Donation.IsExpired(now) {
			continue
		}
		entry := NearbyDonation{
			DonationSummary: newDonationSummary(r.Donation, r.Donation.DonorLocation()),
			Distance:        newDistance(r.DistanceKm, r.DistanceKnown),
		}
		if r.DistanceKnown {
			entry.ETA = kernel.EstimateTravelTime(r.DistanceKm, kernel.CitySpeedKmh)
		}
		nearby = append(nearby, entry)
	}

	return nearby, nil
}

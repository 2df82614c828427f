package queries

import (
	"context"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/core/domain/model/user"
	"foodloop/internal/core/domain/services"
	"foodloop/internal/core/ports"
)

// GetDonationTrackingQueryHandler composes a donation with the profiles of
// its donor, receiver and driver. The view is best effort: missing profiles
// and coordinates leave gaps instead of failing the read.
type GetDonationTrackingQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	planner    services.RoutePlanner
}

func NewGetDonationTrackingQueryHandler(uowFactory ports.UnitOfWorkFactory) GetDonationTrackingQueryHandler {
	return GetDonationTrackingQueryHandler{
		uowFactory: uowFactory,
		planner:    services.NewRoutePlanner(),
	}
}

func (h GetDonationTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetDonationTrackingQuery,
) (DonationTracking, error) {
	if err := query.Validate(); err != nil {
		return DonationTracking{}, err
	}

	uow := h.uowFactory.Create()
	d, err := uow.DonationRepository().Get(ctx, query.DonationID())
	if err != nil {
		return DonationTracking{}, err
	}

	people := newProfiles(uow.UserRepository())
	donor, err := people.get(ctx, d.DonorID())
	if err != nil {
		return DonationTracking{}, err
	}

	pickup := pickupLocation(d, donor)
	view := DonationTracking{
		Donation:       newDonationSummary(d, pickup),
		Donor:          newParty(d.DonorID(), donor),
		ActualPickupAt: d.ActualPickupAt(),
	}
	view.Donor.Location = pickup

	if view.Receiver, err = h.party(ctx, people, d.ReceiverID()); err != nil {
		return DonationTracking{}, err
	}
	if view.Driver, err = h.party(ctx, people, d.DriverID()); err != nil {
		return DonationTracking{}, err
	}

	var dropoff *kernel.GeoPoint
	if view.Receiver != nil {
		dropoff = view.Receiver.Location
	}
	view.Destination = h.planner.Destination(d, pickup, dropoff)

	if view.Driver != nil {
		view.DriverDistance = measure(view.Driver.Location, view.Destination)
		if view.DriverDistance.Known {
			view.ETA = kernel.EstimateTravelTime(view.DriverDistance.Km, kernel.CitySpeedKmh)
		}
	}

	return view, nil
}

func (h GetDonationTrackingQueryHandler) party(
	ctx context.Context,
	people *profiles,
	id *kernel.UUID,
) (*Party, error) {
	if id == nil {
		return nil, nil
	}

	u, err := people.get(ctx, *id)
	if err != nil {
		return nil, err
	}
	p := newParty(*id, u)
	return &p, nil
}

func newParty(id kernel.UUID, u *user.User) Party {
	if u == nil {
		return Party{ID: id}
	}
	return Party{
		ID:                id,
		DisplayName:       u.DisplayName(),
		Address:           u.Address(),
		Location:          u.Location(),
		LocationUpdatedAt: u.LocationUpdatedAt(),
	}
}

package commands

import (
	"context"
	"errors"
	"fmt"

	"foodloop/internal/core/domain/model/donation"
	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/core/domain/model/user"
	"foodloop/internal/core/ports"
	"foodloop/internal/pkg/errs"
)

// MaxCreateAttempts bounds the retries of a creation that lost a race for
// the per-day tracking sequence.
const MaxCreateAttempts = 3

var ErrDonorRoleRequired = errs.NewValueIsInvalidErrorWithCause("donor id", errors.New("user is not a donor"))

// CreateDonationCommandHandler creates pending donations.
//
// Coordinates are resolved before any transaction is opened, in this order:
// the point in the command if inside the service area, the donor's profile
// point if inside the area, the geocoded donor address, else none. A
// geocoding failure never fails the creation.
type CreateDonationCommandHandler struct {
	uowFactory UoWFactory
	resolver   ports.GeoResolver
	notifier   ports.Notifier
	area       kernel.BoundingBox
	clock      Clock
}

func NewCreateDonationCommandHandler(
	uowFactory UoWFactory,
	resolver ports.GeoResolver,
	notifier ports.Notifier,
	area kernel.BoundingBox,
	clock Clock,
) CreateDonationCommandHandler {
	return CreateDonationCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
		notifier:   notifier,
		area:       area,
		clock:      clock,
	}
}

func (h CreateDonationCommandHandler) Handle(ctx context.Context, cmd CreateDonationCommand) (*donation.Donation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	donor, err := h.uowFactory.Create().UserRepository().Get(ctx, cmd.DonorID())
	if err != nil {
		return nil, err
	}
	if donor.Role() != user.Donor {
		return nil, ErrDonorRoleRequired
	}
	if err = donor.ValidateCanDonate(); err != nil {
		return nil, err
	}

	location := h.resolveLocation(ctx, cmd.Location(), donor)
	draft := cmd.draft(kernel.NewUUID(), donor.Address(), location)

	var created *donation.Donation
	for attempt := 1; attempt <= MaxCreateAttempts; attempt++ {
		created, err = h.insert(ctx, draft)
		if !errors.Is(err, errs.ErrVersionIsInvalid) {
			break
		}
	}
	if err != nil {
		return nil, err
	}

	h.notifier.Notify(ctx, newTransitionEvent(ports.DonationCreated, created, created.CreatedAt()))
	return created, nil
}

// insert draws the next tracking number and stores the donation in one
// transaction.
func (h CreateDonationCommandHandler) insert(ctx context.Context, draft donation.Draft) (*donation.Donation, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DonationRepository()
	now := h.clock()

	seq, err := repo.NextTrackingSequence(ctx, donation.TrackingDay(now))
	if err != nil {
		return nil, fmt.Errorf("tracking sequence: %w", err)
	}

	trackingID, err := donation.NewTrackingID(now, seq)
	if err != nil {
		return nil, err
	}

	d, err := donation.NewDonation(draft, trackingID, now)
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, d); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return d, nil
}

func (h CreateDonationCommandHandler) resolveLocation(
	ctx context.Context,
	supplied *kernel.GeoPoint,
	donor *user.User,
) *kernel.GeoPoint {
	if h.area.ContainsPtr(supplied) {
		return supplied
	}
	if profile := donor.Location(); h.area.ContainsPtr(profile) {
		return profile
	}
	if point, ok := h.resolver.Resolve(ctx, donor.Address()); ok && h.area.Contains(point) {
		return &point
	}
	return nil
}

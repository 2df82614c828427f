package commands

import (
	"context"
	"time"

	"foodloop/internal/core/domain/model/donation"
	"foodloop/internal/core/ports"
	"foodloop/internal/pkg/errs"
)

// CancelDonationCommandHandler lets the donor who created a donation cancel
// it while it is not yet delivered. Any live location topic is closed.
type CancelDonationCommandHandler struct {
	transitioner transitioner
	publisher    ports.LocationPublisher
}

func NewCancelDonationCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	publisher ports.LocationPublisher,
	clock Clock,
) CancelDonationCommandHandler {
	return CancelDonationCommandHandler{
		transitioner: transitioner{uowFactory: uowFactory, notifier: notifier, clock: clock},
		publisher:    publisher,
	}
}

func (h CancelDonationCommandHandler) Handle(
	ctx context.Context,
	cmd CancelDonationCommand,
) (*donation.Donation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	d, err := h.transitioner.run(ctx, cmd.DonationID(), transition{
		kind:     ports.DonationCancelled,
		conflict: errs.ReasonWrongState,
		authorize: func(_ context.Context, _ ports.UserRepository, d *donation.Donation) error {
			if !d.DonorID().IsEqual(cmd.DonorID()) {
				return errs.NewTransitionRejectedError(d.Status(), errs.ReasonWrongActor)
			}
			return nil
		},
		apply: func(d *donation.Donation, now time.Time) error {
			return d.Cancel(now)
		},
	})
	if err != nil {
		return nil, err
	}

	h.publisher.CloseTopic(ctx, d.ID())
	return d, nil
}

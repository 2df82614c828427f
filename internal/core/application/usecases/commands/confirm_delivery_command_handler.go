package commands

import (
	"context"
	"time"

	"foodloop/internal/core/domain/model/donation"
	"foodloop/internal/core/ports"
	"foodloop/internal/pkg/errs"
)

// ConfirmDeliveryCommandHandler completes a donation and closes its
// location topic so observers stop waiting for positions.
type ConfirmDeliveryCommandHandler struct {
	transitioner transitioner
	publisher    ports.LocationPublisher
}

func NewConfirmDeliveryCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	publisher ports.LocationPublisher,
	clock Clock,
) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		transitioner: transitioner{uowFactory: uowFactory, notifier: notifier, clock: clock},
		publisher:    publisher,
	}
}

func (h ConfirmDeliveryCommandHandler) Handle(
	ctx context.Context,
	cmd ConfirmDeliveryCommand,
) (*donation.Donation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	d, err := h.transitioner.run(ctx, cmd.DonationID(), transition{
		kind:     ports.DonationDelivered,
		conflict: errs.ReasonWrongState,
		apply: func(d *donation.Donation, now time.Time) error {
			return d.Deliver(cmd.DriverID(), now)
		},
	})
	if err != nil {
		return nil, err
	}

	h.publisher.CloseTopic(ctx, d.ID())
	return d, nil
}

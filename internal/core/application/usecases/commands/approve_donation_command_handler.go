package commands

import (
	"context"
	"time"

	"foodloop/internal/core/domain/model/donation"
	"foodloop/internal/core/ports"
	"foodloop/internal/pkg/errs"
)

type ApproveDonationCommandHandler struct {
	transitioner transitioner
}

func NewApproveDonationCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	clock Clock,
) ApproveDonationCommandHandler {
	return ApproveDonationCommandHandler{
		transitioner: transitioner{uowFactory: uowFactory, notifier: notifier, clock: clock},
	}
}

func (h ApproveDonationCommandHandler) Handle(
	ctx context.Context,
	cmd ApproveDonationCommand,
) (*donation.Donation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.transitioner.run(ctx, cmd.DonationID(), transition{
		kind:     ports.DonationApproved,
		conflict: errs.ReasonWrongState,
		apply: func(d *donation.Donation, now time.Time) error {
			return d.Approve(now)
		},
	})
}

package commands

import (
	"context"
	"time"

	"foodloop/internal/core/domain/model/donation"
	"foodloop/internal/core/domain/model/user"
	"foodloop/internal/core/ports"
	"foodloop/internal/pkg/errs"
)

// ConfirmPickupCommandHandler assigns at most one driver per donation, with
// the same single-attempt conditional write as ClaimDonationCommandHandler.
// Losers get already-assigned.
type ConfirmPickupCommandHandler struct {
	transitioner transitioner
}

func NewConfirmPickupCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	clock Clock,
) ConfirmPickupCommandHandler {
	return ConfirmPickupCommandHandler{
		transitioner: transitioner{uowFactory: uowFactory, notifier: notifier, clock: clock},
	}
}

// Handle is TryConfirmPickup.
func (h ConfirmPickupCommandHandler) Handle(ctx context.Context, cmd ConfirmPickupCommand) (*donation.Donation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.transitioner.run(ctx, cmd.DonationID(), transition{
		kind:     ports.DonationPickedUp,
		conflict: errs.ReasonAlreadyAssigned,
		authorize: func(ctx context.Context, users ports.UserRepository, d *donation.Donation) error {
			return requireRole(ctx, users, d, cmd.DriverID(), user.Driver)
		},
		apply: func(d *donation.Donation, now time.Time) error {
			return d.ConfirmPickup(cmd.DriverID(), now)
		},
	})
}

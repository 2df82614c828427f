package commands

import (
	"context"
	"time"

	"foodloop/internal/core/domain/model/donation"
	"foodloop/internal/core/domain/model/user"
	"foodloop/internal/core/ports"
	"foodloop/internal/pkg/errs"
)

// ClaimDonationCommandHandler arbitrates concurrent claims. The write is
// conditioned on the status and receiver it read, so of any number of
// concurrent claims on one donation at most one commits. Losers get
// already-claimed; the handler never retries.
type ClaimDonationCommandHandler struct {
	transitioner transitioner
}

func NewClaimDonationCommandHandler(
	uowFactory UoWFactory,
	notifier ports.Notifier,
	clock Clock,
) ClaimDonationCommandHandler {
	return ClaimDonationCommandHandler{
		transitioner: transitioner{uowFactory: uowFactory, notifier: notifier, clock: clock},
	}
}

// Handle is TryClaim: one attempt, returning the updated donation or a
// rejection.
func (h ClaimDonationCommandHandler) Handle(ctx context.Context, cmd ClaimDonationCommand) (*donation.Donation, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return h.transitioner.run(ctx, cmd.DonationID(), transition{
		kind:     ports.DonationClaimed,
		conflict: errs.ReasonAlreadyClaimed,
		authorize: func(ctx context.Context, users ports.UserRepository, d *donation.Donation) error {
			return requireRole(ctx, users, d, cmd.ReceiverID(), user.Receiver)
		},
		apply: func(d *donation.Donation, now time.Time) error {
			return d.Claim(cmd.ReceiverID(), now)
		},
	})
}

package commands

import (
	"errors"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/pkg/guard"
)

var ErrClaimDonationCommandIsNotConstructed = errors.New(
	"ClaimDonationCommand must be created via NewClaimDonationCommand constructor",
)

// ClaimDonationCommand asks to reserve a donation for a receiver.
//
// Example:
//
//	cmd, err := NewClaimDonationCommand(donationID, receiverID)
//	if err != nil {
//	    return err
//	}
//	d, err := handler.Handle(ctx, cmd)
//	if rejected, ok := errs.RejectionOf(err); ok {
//	    // rejected.Reason is already-claimed, expired, wrong-actor or wrong-state
//	}
type ClaimDonationCommand struct {
	donationID kernel.UUID
	receiverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewClaimDonationCommand(donationID, receiverID kernel.UUID) (ClaimDonationCommand, error) {
	if err := errors.Join(
		requireID("donation id", donationID),
		requireID("receiver id", receiverID),
	); err != nil {
		return ClaimDonationCommand{}, err
	}

	return ClaimDonationCommand{
		donationID: donationID,
		receiverID: receiverID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ClaimDonationCommand) Validate() error {
	return c.guard.Validate(ErrClaimDonationCommandIsNotConstructed)
}

func (c ClaimDonationCommand) DonationID() kernel.UUID {
	return c.donationID
}

func (c ClaimDonationCommand) ReceiverID() kernel.UUID {
	return c.receiverID
}

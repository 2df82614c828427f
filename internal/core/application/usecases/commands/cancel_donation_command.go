package commands

import (
	"errors"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/pkg/guard"
)

var ErrCancelDonationCommandIsNotConstructed = errors.New(
	"CancelDonationCommand must be created via NewCancelDonationCommand constructor",
)

// CancelDonationCommand is the donor withdrawing a donation.
type CancelDonationCommand struct {
	donationID kernel.UUID
	donorID    kernel.UUID

	guard guard.ConstructorGuard
}

func NewCancelDonationCommand(donationID, donorID kernel.UUID) (CancelDonationCommand, error) {
	if err := errors.Join(
		requireID("donation id", donationID),
		requireID("donor id", donorID),
	); err != nil {
		return CancelDonationCommand{}, err
	}

	return CancelDonationCommand{
		donationID: donationID,
		donorID:    donorID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c CancelDonationCommand) Validate() error {
	return c.guard.Validate(ErrCancelDonationCommandIsNotConstructed)
}

func (c CancelDonationCommand) DonationID() kernel.UUID {
	return c.donationID
}

func (c CancelDonationCommand) DonorID() kernel.UUID {
	return c.donorID
}

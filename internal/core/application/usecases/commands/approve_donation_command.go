package commands

import (
	"errors"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/pkg/guard"
)

var ErrApproveDonationCommandIsNotConstructed = errors.New(
	"ApproveDonationCommand must be created via NewApproveDonationCommand constructor",
)

// ApproveDonationCommand marks a pending donation as reviewed.
type ApproveDonationCommand struct {
	donationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewApproveDonationCommand(donationID kernel.UUID) (ApproveDonationCommand, error) {
	if err := requireID("donation id", donationID); err != nil {
		return ApproveDonationCommand{}, err
	}

	return ApproveDonationCommand{
		donationID: donationID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ApproveDonationCommand) Validate() error {
	return c.guard.Validate(ErrApproveDonationCommandIsNotConstructed)
}

func (c ApproveDonationCommand) DonationID() kernel.UUID {
	return c.donationID
}

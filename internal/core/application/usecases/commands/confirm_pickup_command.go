package commands

import (
	"errors"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/pkg/guard"
)

var ErrConfirmPickupCommandIsNotConstructed = errors.New(
	"ConfirmPickupCommand must be created via NewConfirmPickupCommand constructor",
)

// ConfirmPickupCommand is a driver accepting a claimed donation.
type ConfirmPickupCommand struct {
	donationID kernel.UUID
	driverID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewConfirmPickupCommand(donationID, driverID kernel.UUID) (ConfirmPickupCommand, error) {
	if err := errors.Join(
		requireID("donation id", donationID),
		requireID("driver id", driverID),
	); err != nil {
		return ConfirmPickupCommand{}, err
	}

	return ConfirmPickupCommand{
		donationID: donationID,
		driverID:   driverID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmPickupCommand) Validate() error {
	return c.guard.Validate(ErrConfirmPickupCommandIsNotConstructed)
}

func (c ConfirmPickupCommand) DonationID() kernel.UUID {
	return c.donationID
}

func (c ConfirmPickupCommand) DriverID() kernel.UUID {
	return c.driverID
}

package commands

import (
	"errors"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/pkg/guard"
)

var ErrConfirmDeliveryCommandIsNotConstructed = errors.New(
	"ConfirmDeliveryCommand must be created via NewConfirmDeliveryCommand constructor",
)

// ConfirmDeliveryCommand is the assigned driver completing the handoff.
type ConfirmDeliveryCommand struct {
	donationID kernel.UUID
	driverID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewConfirmDeliveryCommand(donationID, driverID kernel.UUID) (ConfirmDeliveryCommand, error) {
	if err := errors.Join(
		requireID("donation id", donationID),
		requireID("driver id", driverID),
	); err != nil {
		return ConfirmDeliveryCommand{}, err
	}

	return ConfirmDeliveryCommand{
		donationID: donationID,
		driverID:   driverID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrConfirmDeliveryCommandIsNotConstructed)
}

func (c ConfirmDeliveryCommand) DonationID() kernel.UUID {
	return c.donationID
}

func (c ConfirmDeliveryCommand) DriverID() kernel.UUID {
	return c.driverID
}

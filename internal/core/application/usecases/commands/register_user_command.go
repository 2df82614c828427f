package commands

import (
	"errors"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/core/domain/model/user"
	"foodloop/internal/pkg/guard"
)

var ErrRegisterUserCommandIsNotConstructed = errors.New(
	"RegisterUserCommand must be created via NewRegisterUserCommand constructor",
)

// RegisterUserCommand creates a donor, receiver or driver profile.
type RegisterUserCommand struct {
	userID      kernel.UUID
	role        user.Role
	displayName string
	email       string
	address     string
	location    *kernel.GeoPoint

	guard guard.ConstructorGuard
}

func NewRegisterUserCommand(
	userID kernel.UUID,
	role string,
	displayName string,
	email string,
	address string,
	latitude, longitude *float64,
) (RegisterUserCommand, error) {
	parsedRole, roleErr := user.ParseRole(role)
	location, locationErr := kernel.NewGeoPointPtr(latitude, longitude)

	if err := errors.Join(requireID("user id", userID), roleErr, locationErr); err != nil {
		return RegisterUserCommand{}, err
	}

	return RegisterUserCommand{
		userID:      userID,
		role:        parsedRole,
		displayName: displayName,
		email:       email,
		address:     address,
		location:    location,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterUserCommand) Validate() error {
	return c.guard.Validate(ErrRegisterUserCommandIsNotConstructed)
}

func (c RegisterUserCommand) UserID() kernel.UUID {
	return c.userID
}

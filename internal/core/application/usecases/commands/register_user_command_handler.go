package commands

import (
	"context"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/core/domain/model/user"
	"foodloop/internal/core/ports"
)

// RegisterUserCommandHandler stores a new profile. When no usable
// coordinates are supplied the address is geocoded; a failed lookup leaves
// the profile without coordinates.
type RegisterUserCommandHandler struct {
	uowFactory UserUoWFactory
	resolver   ports.GeoResolver
	area       kernel.BoundingBox
	clock      Clock
}

func NewRegisterUserCommandHandler(
	uowFactory UserUoWFactory,
	resolver ports.GeoResolver,
	area kernel.BoundingBox,
	clock Clock,
) RegisterUserCommandHandler {
	return RegisterUserCommandHandler{
		uowFactory: uowFactory,
		resolver:   resolver,
		area:       area,
		clock:      clock,
	}
}

func (h RegisterUserCommandHandler) Handle(ctx context.Context, cmd RegisterUserCommand) (*user.User, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	now := h.clock()
	u, err := user.NewUser(cmd.userID, cmd.role, cmd.displayName, cmd.email, cmd.address, nil, now)
	if err != nil {
		return nil, err
	}

	location := cmd.location
	if !h.area.ContainsPtr(location) {
		location = h.resolve(ctx, u.Address())
	}
	if err = u.Relocate(location, now); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.UserRepository().Add(ctx, u); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return u, nil
}

func (h RegisterUserCommandHandler) resolve(ctx context.Context, address string) *kernel.GeoPoint {
	if address == "" {
		return nil
	}
	point, ok := h.resolver.Resolve(ctx, address)
	if !ok {
		return nil
	}
	return &point
}

package ports

import (
	"context"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/core/domain/model/user"
)

// UserRepository stores donor, receiver and driver profiles.
type UserRepository interface {
	Add(ctx context.Context, u *user.User) error

	// Get returns errs.ErrObjectNotFound when no user has the id.
	Get(ctx context.Context, id kernel.UUID) (*user.User, error)

	// Update overwrites the stored profile. Location is last-write-wins.
	Update(ctx context.Context, u *user.User) error
}

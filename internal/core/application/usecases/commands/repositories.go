// Package commands contains the operations that change donations and users.
// Every handler validates its command, works through a unit of work and
// notifies only after the store has committed.
package commands

import (
	"context"
	"time"

	"foodloop/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each handler needs.
type (
	// TxManager handles the store transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// DonationRepoFactory provides the donation store within a transaction.
	DonationRepoFactory interface {
		DonationRepository() ports.DonationRepository
	}

	// UserRepoFactory provides the profile store within a transaction.
	UserRepoFactory interface {
		UserRepository() ports.UserRepository
	}

	// UserUoW is used by handlers that only touch profiles.
	UserUoW interface {
		TxManager
		UserRepoFactory
	}

	UserUoWFactory interface {
		Create() UserUoW
	}

	// UoW spans donations and the profiles of the people involved.
	//
	// Example:
	//   uow := factory.Create()
	//   if err := uow.Begin(ctx); err != nil {
	//       return err
	//   }
	//   defer func() { _ = uow.Rollback(ctx) }()
	//
	//   repo := uow.DonationRepository()
	//   // ... guarded transition + repo.UpdateIf
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		DonationRepoFactory
		UserRepoFactory
	}

	UoWFactory interface {
		Create() UoW
	}
)

// Clock returns the current time. Handlers take one so tests can pin time.
type Clock func() time.Time

// SystemClock is the wall clock in UTC.
func SystemClock() time.Time {
	return time.Now().UTC()
}

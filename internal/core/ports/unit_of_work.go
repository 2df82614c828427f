package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a store transaction boundary. Repositories obtained before
// Begin, or after Commit/Rollback, run each call on its own.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit returns errs.ErrVersionIsInvalid when the store detects that a
	// record read in the transaction was changed concurrently.
	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	DonationRepository() DonationRepository
	UserRepository() UserRepository
}

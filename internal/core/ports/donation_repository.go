// Package ports defines the contracts the core needs from the outside world:
// stores, the geocoder, the location channel and notifications.
package ports

import (
	"context"
	"time"

	"foodloop/internal/core/domain/model/donation"
	"foodloop/internal/core/domain/model/kernel"
)

// DonationRepository is the donation record store. Every mutation after
// creation goes through UpdateIf.
type DonationRepository interface {
	// Add persists a new donation. Its id and tracking id must be unused.
	Add(ctx context.Context, d *donation.Donation) error

	// Get returns errs.ErrObjectNotFound when no donation has the id.
	Get(ctx context.Context, id kernel.UUID) (*donation.Donation, error)

	// UpdateIf writes d only if the stored record still matches expected:
	// same status, same receiver (or still none), same driver (or still none).
	// The check and the write are a single atomic operation in the store.
	// A mismatch returns errs.ErrVersionIsInvalid and writes nothing.
	//
	// Example:
	//
	//	expected := d.Precondition()
	//	if err := d.Claim(receiverID, now); err != nil {
	//	    return err
	//	}
	//	err := repo.UpdateIf(ctx, d, expected)
	UpdateIf(ctx context.Context, d *donation.Donation, expected donation.Precondition) error

	// FindAvailable returns candidates for the browse listing: open status,
	// no receiver, expiry after now. Callers re-check IsAvailable.
	FindAvailable(ctx context.Context, now time.Time) ([]*donation.Donation, error)

	// FindInTransitByDriver returns the donations whose observers should see
	// the driver's position.
	FindInTransitByDriver(ctx context.Context, driverID kernel.UUID) ([]*donation.Donation, error)

	// FindAwaitingDriver returns assigned, unexpired donations with no driver.
	FindAwaitingDriver(ctx context.Context, now time.Time) ([]*donation.Donation, error)

	// FindOpen returns up to limit non-terminal donations, oldest first.
	FindOpen(ctx context.Context, limit int) ([]*donation.Donation, error)

	// NextTrackingSequence atomically increments and returns the 1-based
	// counter for day (YYYYMMDD).
	NextTrackingSequence(ctx context.Context, day string) (int, error)
}

package badgerstore

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"time"

	"foodloop/internal/core/domain/model/donation"
	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/pkg/errs"

	"github.com/dgraph-io/badger/v4"
)

// DonationRepository implements ports.DonationRepository. Finders scan the
// donation prefix; the embedded store targets single-node deployments where
// the open set is small.
type DonationRepository struct {
	tx runner
}

func (r *DonationRepository) Add(_ context.Context, d *donation.Donation) error {
	if err := d.Validate(); err != nil {
		return err
	}
	data, err := encodeDonation(d)
	if err != nil {
		return err
	}

	return r.tx.update(func(txn *badger.Txn) error {
		for _, key := range [][]byte{donationKey(d.ID()), trackingKey(d.TrackingID())} {
			taken, err := exists(txn, key)
			if err != nil {
				return err
			}
			if taken {
				return errs.NewVersionIsInvalidError("donation", fmt.Errorf("key %s already exists", key))
			}
		}

		if err := txn.Set(trackingKey(d.TrackingID()), []byte(d.ID().String())); err != nil {
			return err
		}
		return txn.Set(donationKey(d.ID()), data)
	})
}

func (r *DonationRepository) Get(_ context.Context, id kernel.UUID) (*donation.Donation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var d *donation.Donation
	err := r.tx.view(func(txn *badger.Txn) error {
		var err error
		d, err = getDonation(txn, id)
		return err
	})
	return d, err
}

// UpdateIf re-reads the record inside the transaction and writes only when
// it still matches expected. The read registers the key with badger's
// conflict detection, so a concurrent writer makes Commit fail.
func (r *DonationRepository) UpdateIf(
	_ context.Context,
	d *donation.Donation,
	expected donation.Precondition,
) error {
	if err := d.Validate(); err != nil {
		return err
	}
	data, err := encodeDonation(d)
	if err != nil {
		return err
	}

	return r.tx.update(func(txn *badger.Txn) error {
		stored, err := getDonation(txn, d.ID())
		if err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				return errs.NewVersionIsInvalidError("donation", err)
			}
			return err
		}
		if !expected.Matches(stored) {
			return errs.NewVersionIsInvalidError("donation",
				fmt.Errorf("%s is %s, expected %s", d.ID(), stored.Status(), expected.Status))
		}
		return txn.Set(donationKey(d.ID()), data)
	})
}

func (r *DonationRepository) FindAvailable(_ context.Context, now time.Time) ([]*donation.Donation, error) {
	found, err := r.filter(func(d *donation.Donation) bool {
		return d.IsAvailable(now)
	})
	if err != nil {
		return nil, err
	}

	slices.SortStableFunc(found, func(a, b *donation.Donation) int {
		return b.CreatedAt().Compare(a.CreatedAt())
	})
	return found, nil
}

func (r *DonationRepository) FindInTransitByDriver(
	_ context.Context,
	driverID kernel.UUID,
) ([]*donation.Donation, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	found, err := r.filter(func(d *donation.Donation) bool {
		driver := d.DriverID()
		return d.IsInTransit() && driver != nil && driver.IsEqual(driverID)
	})
	if err != nil {
		return nil, err
	}
	sortOldestFirst(found)
	return found, nil
}

func (r *DonationRepository) FindAwaitingDriver(_ context.Context, now time.Time) ([]*donation.Donation, error) {
	found, err := r.filter(func(d *donation.Donation) bool {
		return d.Status() == donation.Assigned && d.DriverID() == nil && !d.IsExpired(now)
	})
	if err != nil {
		return nil, err
	}
	sortOldestFirst(found)
	return found, nil
}

func (r *DonationRepository) FindOpen(_ context.Context, limit int) ([]*donation.Donation, error) {
	found, err := r.filter(func(d *donation.Donation) bool {
		return !d.Status().IsTerminal()
	})
	if err != nil {
		return nil, err
	}
	sortOldestFirst(found)
	if limit >= 0 && len(found) > limit {
		found = found[:limit]
	}
	return found, nil
}

func (r *DonationRepository) NextTrackingSequence(_ context.Context, day string) (int, error) {
	var next int
	err := r.tx.update(func(txn *badger.Txn) error {
		current := 0
		item, err := txn.Get(sequenceKey(day))
		switch {
		case err == nil:
			if err = item.Value(func(val []byte) error {
				current, err = strconv.Atoi(string(val))
				return err
			}); err != nil {
				return err
			}
		case !errors.Is(err, badger.ErrKeyNotFound):
			return err
		}

		next = current + 1
		return txn.Set(sequenceKey(day), []byte(strconv.Itoa(next)))
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}

func (r *DonationRepository) filter(keep func(*donation.Donation) bool) ([]*donation.Donation, error) {
	var found []*donation.Donation
	err := r.tx.view(func(txn *badger.Txn) error {
		return scan(txn, donationPrefix, func(value []byte) error {
			d, err := decodeDonation(value)
			if err != nil {
				return err
			}
			if keep(d) {
				found = append(found, d)
			}
			return nil
		})
	})
	return found, err
}

func getDonation(txn *badger.Txn, id kernel.UUID) (*donation.Donation, error) {
	item, err := txn.Get(donationKey(id))
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, errs.NewObjectNotFoundError("donation", id.String())
		}
		return nil, err
	}

	var d *donation.Donation
	err = item.Value(func(val []byte) error {
		d, err = decodeDonation(val)
		return err
	})
	return d, err
}

func sortOldestFirst(donations []*donation.Donation) {
	slices.SortStableFunc(donations, func(a, b *donation.Donation) int {
		return a.CreatedAt().Compare(b.CreatedAt())
	})
}

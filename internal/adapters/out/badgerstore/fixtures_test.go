package badgerstore_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"foodloop/internal/adapters/out/badgerstore"
	"foodloop/internal/core/application/usecases/commands"
	"foodloop/internal/core/domain/model/donation"
	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/core/domain/model/user"
	"foodloop/internal/core/ports"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

func openStore(t *testing.T) *badger.DB {
	t.Helper()
	db, err := badgerstore.Open("", slog.New(slog.DiscardHandler))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newDonation(t *testing.T, seq int, at time.Time) *donation.Donation {
	t.Helper()

	trackingID, err := donation.NewTrackingID(at, seq)
	require.NoError(t, err)
	location, err := kernel.NewGeoPoint(6.9271, 79.8612)
	require.NoError(t, err)

	d, err := donation.NewDonation(donation.Draft{
		ID:             kernel.NewUUID(),
		DonorID:        kernel.NewUUID(),
		Category:       donation.CookedMeals,
		ItemName:       "Rice and curry",
		Quantity:       12,
		Storage:        donation.Hot,
		DonorAddress:   "12 Galle Road, Colombo 03",
		DonorLocation:  &location,
		PickupWindow:   donation.Today,
		PickupTimeSlot: "14:00-16:00",
	}, trackingID, at)
	require.NoError(t, err)
	return d
}

func newUser(t *testing.T, role user.Role) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), role, "Test "+role.String(), role.String()+"@example.lk",
		"12 Galle Road, Colombo", nil, createdAt)
	require.NoError(t, err)
	return u
}

// uowFactory narrows the store factory to the handlers' unit of work.
type uowFactory struct {
	factory *badgerstore.UnitOfWorkFactory
}

func (f uowFactory) Create() commands.UoW {
	return f.factory.Create()
}

type silentNotifier struct{}

func (silentNotifier) Notify(context.Context, ports.TransitionEvent) {}

package queries_test

import (
	"context"
	"testing"
	"time"

	"foodloop/internal/core/domain/model/donation"
	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/core/domain/model/user"
	"foodloop/internal/core/ports"
	"foodloop/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return testNow
}

type MockDonationRepository struct {
	mock.Mock
	ports.DonationRepository
}

func (m *MockDonationRepository) Get(ctx context.Context, id kernel.UUID) (*donation.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*donation.Donation), args.Error(1)
}

func (m *MockDonationRepository) FindAvailable(ctx context.Context, now time.Time) ([]*donation.Donation, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*donation.Donation), args.Error(1)
}

func (m *MockDonationRepository) FindAwaitingDriver(ctx context.Context, now time.Time) ([]*donation.Donation, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*donation.Donation), args.Error(1)
}

// fakeUsers is an in-memory profile store.
type fakeUsers struct {
	ports.UserRepository
	byID  map[kernel.UUID]*user.User
	reads int
}

func newFakeUsers(users ...*user.User) *fakeUsers {
	f := &fakeUsers{byID: make(map[kernel.UUID]*user.User)}
	for _, u := range users {
		f.byID[u.ID()] = u
	}
	return f
}

func (f *fakeUsers) Get(_ context.Context, id kernel.UUID) (*user.User, error) {
	f.reads++
	u, ok := f.byID[id]
	if !ok {
		return nil, errs.NewObjectNotFoundError("user", id)
	}
	return u, nil
}

type stubUoW struct {
	ports.UnitOfWork
	donations ports.DonationRepository
	users     ports.UserRepository
}

func (s stubUoW) DonationRepository() ports.DonationRepository {
	return s.donations
}

func (s stubUoW) UserRepository() ports.UserRepository {
	return s.users
}

type stubUoWFactory struct {
	uow stubUoW
}

func (f stubUoWFactory) Create() ports.UnitOfWork {
	return f.uow
}

func newFactory(donations ports.DonationRepository, users ports.UserRepository) stubUoWFactory {
	return stubUoWFactory{uow: stubUoW{donations: donations, users: users}}
}

func point(t *testing.T, lat, lng float64) *kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return &p
}

func newUser(t *testing.T, role user.Role, name string, location *kernel.GeoPoint) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), role, name, "", name+" street", location, testNow.Add(-48*time.Hour))
	require.NoError(t, err)
	return u
}

func newDonation(
	t *testing.T,
	donorID kernel.UUID,
	location *kernel.GeoPoint,
	createdAt time.Time,
) *donation.Donation {
	t.Helper()
	d, err := donation.NewDonation(donation.Draft{
		ID:            kernel.NewUUID(),
		DonorID:       donorID,
		Category:      donation.CookedMeals,
		ItemName:      "Kottu",
		Quantity:      6,
		Storage:       donation.Hot,
		DonorAddress:  "Galle Road, Colombo",
		DonorLocation: location,
		PickupWindow:  donation.Today,
	}, "FL-20260314-01", createdAt)
	require.NoError(t, err)
	return d
}

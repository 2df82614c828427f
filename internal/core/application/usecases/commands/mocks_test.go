package commands_test

import (
	"context"
	"time"

	"foodloop/internal/core/application/usecases/commands"
	"foodloop/internal/core/domain/model/donation"
	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/core/domain/model/user"
	"foodloop/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockDonationRepository struct{ mock.Mock }

func (m *MockDonationRepository) Add(ctx context.Context, d *donation.Donation) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDonationRepository) Get(ctx context.Context, id kernel.UUID) (*donation.Donation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*donation.Donation), args.Error(1)
}

func (m *MockDonationRepository) UpdateIf(
	ctx context.Context,
	d *donation.Donation,
	expected donation.Precondition,
) error {
	args := m.Called(ctx, d, expected)
	return args.Error(0)
}

func (m *MockDonationRepository) FindAvailable(ctx context.Context, now time.Time) ([]*donation.Donation, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*donation.Donation), args.Error(1)
}

func (m *MockDonationRepository) FindInTransitByDriver(
	ctx context.Context,
	driverID kernel.UUID,
) ([]*donation.Donation, error) {
	args := m.Called(ctx, driverID)
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

func (m *MockDonationRepository) FindOpen(ctx context.Context, limit int) ([]*donation.Donation, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*donation.Donation), args.Error(1)
}

func (m *MockDonationRepository) NextTrackingSequence(ctx context.Context, day string) (int, error) {
	args := m.Called(ctx, day)
	return args.Int(0), args.Error(1)
}

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) Add(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

func (m *MockUserRepository) Get(ctx context.Context, id kernel.UUID) (*user.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*user.User), args.Error(1)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	args := m.Called(ctx, u)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) DonationRepository() ports.DonationRepository {
	args := m.Called()
	return args.Get(0).(ports.DonationRepository)
}

func (m *MockUoW) UserRepository() ports.UserRepository {
	args := m.Called()
	return args.Get(0).(ports.UserRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockUserUoWFactory struct{ mock.Mock }

func (m *MockUserUoWFactory) Create() commands.UserUoW {
	args := m.Called()
	return args.Get(0).(commands.UserUoW)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Notify(ctx context.Context, event ports.TransitionEvent) {
	m.Called(ctx, event)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, event ports.LocationEvent) {
	m.Called(ctx, event)
}

func (m *MockPublisher) CloseTopic(ctx context.Context, donationID kernel.UUID) {
	m.Called(ctx, donationID)
}

type MockResolver struct{ mock.Mock }

func (m *MockResolver) Resolve(ctx context.Context, address string) (kernel.GeoPoint, bool) {
	args := m.Called(ctx, address)
	return args.Get(0).(kernel.GeoPoint), args.Bool(1)
}

package commands_test

import (
	"errors"
	"testing"

	"foodloop/internal/core/application/usecases/commands"
	"foodloop/internal/core/domain/model/donation"
	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestReconcileDonorCoordinatesCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	colombo := point(t, 6.9271, 79.8612)
	kandy := point(t, 7.2906, 80.6337)
	london := point(t, 51.5074, -0.1278)

	located := pendingDonationAt(t, kernel.NewUUID(), &colombo)
	missing := pendingDonationAt(t, kernel.NewUUID(), nil)
	outside := pendingDonationAt(t, kernel.NewUUID(), &london)
	unresolvable := pendingDonationAt(t, kernel.NewUUID(), nil)

	repo := new(MockDonationRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	resolver := new(MockResolver)

	factory.On("Create").Return(uow).Once()
	uow.On("DonationRepository").Return(repo).Once()
	repo.On("FindOpen", ctx, 50).
		Return([]*donation.Donation{located, missing, outside, unresolvable}, nil).Once()

	address := missing.DonorAddress()
	resolver.On("Resolve", ctx, address).Return(kandy, true).Twice()
	resolver.On("Resolve", ctx, address).Return(kernel.GeoPoint{}, false).Once()

	repo.On("UpdateIf", ctx, missing, donation.Precondition{Status: donation.Pending}).Return(nil).Once()
	repo.On("UpdateIf", ctx, outside, mock.Anything).
		Return(errs.NewVersionIsInvalidErrorWithCause("donation")).Once()

	cmd, err := commands.NewReconcileDonorCoordinatesCommand(50)
	require.NoError(t, err)

	handler := commands.NewReconcileDonorCoordinatesCommandHandler(factory, resolver, kernel.DefaultServiceArea, fixedClock)
	result, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.ReconcileResult{Scanned: 3, Corrected: 1, Unresolved: 1, Conflicts: 1}, result)
	require.NotNil(t, missing.DonorLocation())
	assert.Equal(t, kandy, *missing.DonorLocation())
	assert.Equal(t, donation.Pending, missing.Status())
	repo.AssertNotCalled(t, "UpdateIf", ctx, located, mock.Anything)
	repo.AssertExpectations(t)
	resolver.AssertExpectations(t)
}

func TestReconcileDonorCoordinatesCommandHandler_Handle_StoreError(t *testing.T) {
	ctx := t.Context()
	d := pendingDonationAt(t, kernel.NewUUID(), nil)
	kandy := point(t, 7.2906, 80.6337)

	repo := new(MockDonationRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	resolver := new(MockResolver)

	factory.On("Create").Return(uow).Once()
	uow.On("DonationRepository").Return(repo).Once()
	repo.On("FindOpen", ctx, commands.DefaultReconcileBatchSize).Return([]*donation.Donation{d}, nil).Once()
	resolver.On("Resolve", ctx, d.DonorAddress()).Return(kandy, true).Once()
	repo.On("UpdateIf", ctx, d, mock.Anything).Return(errors.New("connection reset")).Once()

	cmd, err := commands.NewReconcileDonorCoordinatesCommand(commands.DefaultReconcileBatchSize)
	require.NoError(t, err)

	handler := commands.NewReconcileDonorCoordinatesCommandHandler(factory, resolver, kernel.DefaultServiceArea, fixedClock)
	result, err := handler.Handle(ctx, cmd)

	require.EqualError(t, err, "connection reset")
	assert.Equal(t, 1, result.Scanned)
	assert.Zero(t, result.Corrected)
}

package queries_test

import (
	"testing"
	"time"

	"foodloop/internal/core/application/usecases/queries"
	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/core/domain/model/user"
	"foodloop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDonationTrackingQueryHandler_Handle(t *testing.T) {
	colombo := point(t, 6.9271, 79.8612)
	kandy := point(t, 7.2906, 80.6337)
	midway := point(t, 7.0, 80.0)

	donor := newUser(t, user.Donor, "Hotel", nil)
	receiver := newUser(t, user.Receiver, "Shelter", kandy)
	driver := newUser(t, user.Driver, "Kasun", midway)

	t.Run("picked up donation heads to the receiver", func(t *testing.T) {
		ctx := t.Context()
		d := newDonation(t, donor.ID(), colombo, testNow.Add(-2*time.Hour))
		require.NoError(t, d.Claim(receiver.ID(), testNow.Add(-time.Hour)))
		require.NoError(t, d.ConfirmPickup(driver.ID(), testNow.Add(-30*time.Minute)))

		repo := new(MockDonationRepository)
		repo.On("Get", ctx, d.ID()).Return(d, nil).Once()

		query, err := queries.NewGetDonationTrackingQuery(d.ID())
		require.NoError(t, err)

		handler := queries.NewGetDonationTrackingQueryHandler(newFactory(repo, newFakeUsers(donor, receiver, driver)))
		view, err := handler.Handle(ctx, query)

		require.NoError(t, err)
		assert.Equal(t, "picked_up", view.Donation.Status)
		assert.Equal(t, "Hotel", view.Donor.DisplayName)
		assert.Equal(t, colombo, view.Donor.Location)
		require.NotNil(t, view.Receiver)
		assert.Equal(t, "Shelter", view.Receiver.DisplayName)
		require.NotNil(t, view.Driver)
		assert.Equal(t, "Kasun", view.Driver.DisplayName)
		require.NotNil(t, view.ActualPickupAt)

		require.NotNil(t, view.Destination)
		assert.Equal(t, *kandy, *view.Destination)
		require.True(t, view.DriverDistance.Known)
		expectedKm := kernel.HaversineKm(7.0, 80.0, 7.2906, 80.6337)
		assert.InDelta(t, expectedKm, view.DriverDistance.Km, 1e-9)
		assert.Equal(t, kernel.EstimateTravelTime(expectedKm, kernel.CitySpeedKmh), view.ETA)
		assert.Positive(t, view.ETA)
	})

	t.Run("assigned donation shows the pickup point and no driver", func(t *testing.T) {
		ctx := t.Context()
		d := newDonation(t, donor.ID(), nil, testNow.Add(-2*time.Hour))
		require.NoError(t, d.Claim(receiver.ID(), testNow.Add(-time.Hour)))

		repo := new(MockDonationRepository)
		repo.On("Get", ctx, d.ID()).Return(d, nil).Once()

		query, err := queries.NewGetDonationTrackingQuery(d.ID())
		require.NoError(t, err)

		handler := queries.NewGetDonationTrackingQueryHandler(newFactory(repo, newFakeUsers(receiver)))
		view, err := handler.Handle(ctx, query)

		require.NoError(t, err)
		assert.True(t, view.Donor.ID.IsEqual(donor.ID()))
		assert.Empty(t, view.Donor.DisplayName, "deleted profiles leave only the id")
		assert.Nil(t, view.Donor.Location)
		assert.Nil(t, view.Driver)
		assert.Nil(t, view.Destination)
		assert.False(t, view.DriverDistance.Known)
		assert.Zero(t, view.ETA)
	})

	t.Run("unknown donation", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()
		repo := new(MockDonationRepository)
		repo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("donation", id)).Once()

		query, err := queries.NewGetDonationTrackingQuery(id)
		require.NoError(t, err)

		handler := queries.NewGetDonationTrackingQueryHandler(newFactory(repo, newFakeUsers()))
		_, err = handler.Handle(ctx, query)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestNewGetDonationTrackingQuery(t *testing.T) {
	_, err := queries.NewGetDonationTrackingQuery(kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValidationFailed)

	var zero queries.GetDonationTrackingQuery
	require.ErrorIs(t, zero.Validate(), queries.ErrGetDonationTrackingQueryIsNotConstructed)
}

package commands_test

import (
	"testing"

	"foodloop/internal/core/application/usecases/commands"
	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateParams(donorID kernel.UUID) commands.CreateDonationParams {
	return commands.CreateDonationParams{
		DonorID:      donorID,
		Category:     "cookedmeals",
		ItemName:     "Rice packets",
		Quantity:     20,
		Storage:      "hot",
		PickupWindow: "Today",
	}
}

func TestNewCreateDonationCommand(t *testing.T) {
	t.Run("should accept case-insensitive enums", func(t *testing.T) {
		cmd, err := commands.NewCreateDonationCommand(validCreateParams(kernel.NewUUID()))

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Nil(t, cmd.Location())
	})

	t.Run("should carry supplied coordinates", func(t *testing.T) {
		lat, lng := 6.9271, 79.8612
		p := validCreateParams(kernel.NewUUID())
		p.Latitude, p.Longitude = &lat, &lng

		cmd, err := commands.NewCreateDonationCommand(p)

		require.NoError(t, err)
		require.NotNil(t, cmd.Location())
		assert.InDelta(t, lat, cmd.Location().Latitude(), 1e-9)
	})

	t.Run("should join every problem", func(t *testing.T) {
		lat := 6.9
		score := 1.5
		p := commands.CreateDonationParams{
			Category:        "Soup",
			Quantity:        0,
			Storage:         "Frozen",
			PickupWindow:    "someday",
			ProductType:     "canned",
			ConfidenceScore: &score,
			Latitude:        &lat,
		}

		_, err := commands.NewCreateDonationCommand(p)

		require.ErrorIs(t, err, errs.ErrValidationFailed)
		for _, fragment := range []string{"donor id", "category", "storage", "pickup window", "product type", "quantity", "coordinates"} {
			assert.Contains(t, err.Error(), fragment)
		}
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var cmd commands.CreateDonationCommand
		require.ErrorIs(t, cmd.Validate(), commands.ErrCreateDonationCommandIsNotConstructed)
	})
}

func TestTransitionCommands_Constructors(t *testing.T) {
	id := kernel.NewUUID()

	_, err := commands.NewClaimDonationCommand(id, kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "receiver id")

	_, err = commands.NewConfirmPickupCommand(kernel.UUID{}, id)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	assert.Contains(t, err.Error(), "donation id")

	_, err = commands.NewConfirmDeliveryCommand(id, kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValidationFailed)

	_, err = commands.NewCancelDonationCommand(id, kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValidationFailed)

	_, err = commands.NewApproveDonationCommand(kernel.UUID{})
	require.ErrorIs(t, err, errs.ErrValidationFailed)

	var claim commands.ClaimDonationCommand
	require.ErrorIs(t, claim.Validate(), commands.ErrClaimDonationCommandIsNotConstructed)
	var pickup commands.ConfirmPickupCommand
	require.ErrorIs(t, pickup.Validate(), commands.ErrConfirmPickupCommandIsNotConstructed)
	var delivery commands.ConfirmDeliveryCommand
	require.ErrorIs(t, delivery.Validate(), commands.ErrConfirmDeliveryCommandIsNotConstructed)
	var cancel commands.CancelDonationCommand
	require.ErrorIs(t, cancel.Validate(), commands.ErrCancelDonationCommandIsNotConstructed)
}

func TestNewReportDriverLocationCommand(t *testing.T) {
	_, err := commands.NewReportDriverLocationCommand(kernel.NewUUID(), 91, 80)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	cmd, err := commands.NewReportDriverLocationCommand(kernel.NewUUID(), 6.9, 79.9)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
}

func TestNewRegisterUserCommand(t *testing.T) {
	_, err := commands.NewRegisterUserCommand(kernel.NewUUID(), "admin", "Nimal", "", "", nil, nil)
	require.ErrorIs(t, err, errs.ErrValidationFailed)

	cmd, err := commands.NewRegisterUserCommand(kernel.NewUUID(), "Driver", "Nimal", "", "", nil, nil)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
}

func TestNewReconcileDonorCoordinatesCommand(t *testing.T) {
	_, err := commands.NewReconcileDonorCoordinatesCommand(0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	cmd, err := commands.NewReconcileDonorCoordinatesCommand(commands.DefaultReconcileBatchSize)
	require.NoError(t, err)
	assert.Equal(t, commands.DefaultReconcileBatchSize, cmd.BatchSize())
}

package donation_test

import (
	"testing"
	"time"

	"foodloop/internal/core/domain/model/donation"
	"foodloop/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

var createdAt = time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)

func validDraft() donation.Draft {
	location, _ := kernel.NewGeoPoint(6.9271, 79.8612)
	return donation.Draft{
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
	}
}

func newPending(t *testing.T) *donation.Donation {
	t.Helper()
	d, err := donation.NewDonation(validDraft(), "FL-20260314-01", createdAt)
	require.NoError(t, err)
	return d
}

func newAssigned(t *testing.T, receiverID kernel.UUID) *donation.Donation {
	t.Helper()
	d := newPending(t)
	require.NoError(t, d.Claim(receiverID, createdAt.Add(time.Minute)))
	return d
}

func newPickedUp(t *testing.T, driverID kernel.UUID) *donation.Donation {
	t.Helper()
	d := newAssigned(t, kernel.NewUUID())
	require.NoError(t, d.ConfirmPickup(driverID, createdAt.Add(2*time.Minute)))
	return d
}

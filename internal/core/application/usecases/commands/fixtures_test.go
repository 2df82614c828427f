package commands_test

import (
	"testing"
	"time"

	"foodloop/internal/core/domain/model/donation"
	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/core/domain/model/user"

	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time {
	return testNow
}

func point(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return p
}

func newUser(t *testing.T, role user.Role, location *kernel.GeoPoint) *user.User {
	t.Helper()
	u, err := user.NewUser(kernel.NewUUID(), role, "Test "+role.String(),
		role.String()+"@example.lk", "12 Galle Road, Colombo", location, testNow.Add(-24*time.Hour))
	require.NoError(t, err)
	return u
}

func pendingDonation(t *testing.T, donorID kernel.UUID) *donation.Donation {
	t.Helper()
	colombo := point(t, 6.9271, 79.8612)
	return pendingDonationAt(t, donorID, &colombo)
}

func pendingDonationAt(t *testing.T, donorID kernel.UUID, location *kernel.GeoPoint) *donation.Donation {
	t.Helper()
	d, err := donation.NewDonation(donation.Draft{
		ID:            kernel.NewUUID(),
		DonorID:       donorID,
		Category:      donation.CookedMeals,
		ItemName:      "Rice packets",
		Quantity:      20,
		Storage:       donation.Hot,
		DonorAddress:  "12 Galle Road, Colombo",
		DonorLocation: location,
		PickupWindow:  donation.Today,
	}, "FL-20260314-01", testNow.Add(-time.Hour))
	require.NoError(t, err)
	return d
}

func assignedDonation(t *testing.T, receiverID kernel.UUID) *donation.Donation {
	t.Helper()
	d := pendingDonation(t, kernel.NewUUID())
	require.NoError(t, d.Claim(receiverID, testNow.Add(-30*time.Minute)))
	return d
}

func pickedUpDonation(t *testing.T, driverID kernel.UUID) *donation.Donation {
	t.Helper()
	d := assignedDonation(t, kernel.NewUUID())
	require.NoError(t, d.ConfirmPickup(driverID, testNow.Add(-10*time.Minute)))
	return d
}

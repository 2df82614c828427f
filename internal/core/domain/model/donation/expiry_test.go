package donation_test

import (
	"testing"
	"time"

	"foodloop/internal/core/domain/model/donation"

	"github.com/stretchr/testify/assert"
)

func TestComputeExpiry(t *testing.T) {
	at := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	later := at.Add(48 * time.Hour)
	evenLater := at.Add(96 * time.Hour)
	earlier := at.Add(-time.Hour)

	testCases := []struct {
		name          string
		productType   donation.ProductType
		packageExpiry *time.Time
		userExpiry    *time.Time
		expected      time.Time
	}{
		{"cooked without declared expiry", donation.Cooked, nil, nil, at.Add(6 * time.Hour)},
		{"packaged without declared expiry", donation.Packaged, nil, nil, at.Add(72 * time.Hour)},
		{"package expiry wins", donation.Cooked, &evenLater, &later, evenLater},
		{"user expiry when no package expiry", donation.Cooked, nil, &later, later},
		{"past package expiry falls through to user", donation.Packaged, &earlier, &later, later},
		{"all declared expiries in the past", donation.Packaged, &earlier, &earlier, at.Add(72 * time.Hour)},
		{"expiry equal to creation is ignored", donation.Cooked, &at, &at, at.Add(6 * time.Hour)},
		{"unknown product type gets cooked window", donation.ProductType("frozen"), nil, nil, at.Add(6 * time.Hour)},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := donation.ComputeExpiry(at, tc.productType, tc.packageExpiry, tc.userExpiry)

			assert.Equal(t, tc.expected, got)
			assert.True(t, got.After(at))
		})
	}
}

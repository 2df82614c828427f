package kernel_test

import (
	"math"
	"testing"
	"time"

	"foodloop/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHaversineKm(t *testing.T) {
	testCases := []struct {
		name     string
		lat1     float64
		lon1     float64
		lat2     float64
		lon2     float64
		expected float64
	}{
		{"one degree of longitude on the equator", 0, 0, 0, 1, 111.195},
		{"colombo to kandy", 6.9271, 79.8612, 7.2906, 80.6337, 94.335},
		{"short hop inside colombo", 6.9271, 79.8612, 6.9271, 79.8662, 0.552},
		{"same point", 6.9271, 79.8612, 6.9271, 79.8612, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.expected, kernel.HaversineKm(tc.lat1, tc.lon1, tc.lat2, tc.lon2), 0.001)
		})
	}

	t.Run("malformed input yields NaN", func(t *testing.T) {
		assert.True(t, math.IsNaN(kernel.HaversineKm(math.NaN(), 0, 0, 0)))
	})
}

func TestDistanceBetween(t *testing.T) {
	a, _ := kernel.NewGeoPoint(6.9271, 79.8612)
	b, _ := kernel.NewGeoPoint(7.2906, 80.6337)

	t.Run("should measure two known points", func(t *testing.T) {
		km, ok := kernel.DistanceBetween(&a, &b)

		require.True(t, ok)
		assert.InDelta(t, 94.335, km, 0.001)
	})

	t.Run("should report unknown when a side is missing", func(t *testing.T) {
		_, ok := kernel.DistanceBetween(&a, nil)
		assert.False(t, ok)

		_, ok = kernel.DistanceBetween(nil, &b)
		assert.False(t, ok)
	})
}

func TestFormatDistance(t *testing.T) {
	testCases := []struct {
		km       float64
		expected string
	}{
		{0, "0 m"},
		{0.0004, "0 m"},
		{0.552, "552 m"},
		{0.9994, "999 m"},
		{0.9996, "1.0 km"},
		{1, "1.0 km"},
		{1.25, "1.2 km"},
		{12.345, "12.3 km"},
		{94.335, "94.3 km"},
		{-1, "unknown"},
		{math.NaN(), "unknown"},
		{math.Inf(1), "unknown"},
	}

	for _, tc := range testCases {
		t.Run(tc.expected, func(t *testing.T) {
			assert.Equal(t, tc.expected, kernel.FormatDistance(tc.km))
		})
	}
}

func TestEstimateTravelTime(t *testing.T) {
	assert.Equal(t, 10*time.Minute, kernel.EstimateTravelTime(5, kernel.CitySpeedKmh))
	assert.Equal(t, 1*time.Minute, kernel.EstimateTravelTime(0.1, kernel.CitySpeedKmh))
	assert.Equal(t, time.Duration(0), kernel.EstimateTravelTime(0, kernel.CitySpeedKmh))
	assert.Equal(t, time.Duration(0), kernel.EstimateTravelTime(5, 0))
}

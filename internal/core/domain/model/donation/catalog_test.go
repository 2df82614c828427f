package donation_test

import (
	"testing"
	"time"

	"foodloop/internal/core/domain/model/donation"
	"foodloop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCategory(t *testing.T) {
	c, err := donation.ParseCategory("cookedmeals")
	require.NoError(t, err)
	assert.Equal(t, donation.CookedMeals, c)

	_, err = donation.ParseCategory("Furniture")
	require.ErrorIs(t, err, errs.ErrValidationFailed)
	assert.Contains(t, err.Error(), "category")
}

func TestCategory_DefaultProductType(t *testing.T) {
	expected := map[donation.Category]donation.ProductType{
		donation.CookedMeals: donation.Cooked,
		donation.RawFood:     donation.Cooked,
		donation.Desserts:    donation.Cooked,
		donation.Beverages:   donation.Packaged,
		donation.Snacks:      donation.Packaged,
	}

	for _, c := range donation.Categories() {
		assert.Equal(t, expected[c], c.DefaultProductType(), c)
	}
}

func TestParseEnums(t *testing.T) {
	s, err := donation.ParseStorage("cold")
	require.NoError(t, err)
	assert.Equal(t, donation.Cold, s)
	_, err = donation.ParseStorage("Frozen")
	require.Error(t, err)

	f, err := donation.ParseFreshness("")
	require.NoError(t, err)
	assert.Equal(t, donation.FreshnessNone, f)
	f, err = donation.ParseFreshness("GOOD")
	require.NoError(t, err)
	assert.Equal(t, donation.Good, f)
	_, err = donation.ParseFreshness("Stale")
	require.Error(t, err)

	w, err := donation.ParsePickupWindow("Tomorrow")
	require.NoError(t, err)
	assert.Equal(t, donation.Tomorrow, w)
	_, err = donation.ParsePickupWindow("next week")
	require.ErrorIs(t, err, errs.ErrValidationFailed)

	p, err := donation.ParseProductType("packaged")
	require.NoError(t, err)
	assert.Equal(t, donation.Packaged, p)
}

func TestPickupWindow_Date(t *testing.T) {
	at := time.Date(2026, 12, 31, 22, 15, 0, 0, time.UTC)

	assert.Equal(t, time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC), donation.Today.Date(at))
	assert.Equal(t, time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC), donation.Tomorrow.Date(at))
}

func TestNewAssessment(t *testing.T) {
	confidence, quality := 0.92, 0.8

	t.Run("should keep scores and trim items", func(t *testing.T) {
		a, err := donation.NewAssessment(&confidence, &quality, donation.Fresh, []string{" rice ", "", "curry"})

		require.NoError(t, err)
		assert.InDelta(t, 0.92, *a.Confidence(), 1e-9)
		assert.InDelta(t, 0.8, *a.Quality(), 1e-9)
		assert.Equal(t, donation.Fresh, a.Freshness())
		assert.Equal(t, []string{"rice", "curry"}, a.DetectedItems())
	})

	t.Run("should allow absent scores", func(t *testing.T) {
		a, err := donation.NewAssessment(nil, nil, donation.FreshnessNone, nil)

		require.NoError(t, err)
		assert.Nil(t, a.Confidence())
		assert.Nil(t, a.Quality())
		assert.Empty(t, a.DetectedItems())
	})

	t.Run("should reject scores outside unit interval", func(t *testing.T) {
		tooHigh, negative := 1.01, -0.1

		_, err := donation.NewAssessment(&tooHigh, &negative, donation.FreshnessNone, nil)

		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
		assert.Contains(t, err.Error(), "confidence score")
		assert.Contains(t, err.Error(), "quality score")
	})
}

package kernel_test

import (
	"testing"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundingBox_Contains(t *testing.T) {
	area := kernel.DefaultServiceArea
	colombo, _ := kernel.NewGeoPoint(6.9271, 79.8612)
	corner, _ := kernel.NewGeoPoint(10.0, 82.0)
	chennai, _ := kernel.NewGeoPoint(13.0827, 80.2707)

	assert.True(t, area.Contains(colombo))
	assert.True(t, area.Contains(corner))
	assert.False(t, area.Contains(chennai))
	assert.False(t, area.Contains(kernel.GeoPoint{}))

	assert.True(t, area.ContainsPtr(&colombo))
	assert.False(t, area.ContainsPtr(nil))
}

func TestBoundingBox_Require(t *testing.T) {
	area := kernel.DefaultServiceArea

	t.Run("should accept point inside", func(t *testing.T) {
		p, _ := kernel.NewGeoPoint(7.2906, 80.6337)
		require.NoError(t, area.Require(p))
	})

	t.Run("should reject point outside as validation failure", func(t *testing.T) {
		p, _ := kernel.NewGeoPoint(51.5, -0.12)
		err := area.Require(p)

		require.ErrorIs(t, err, errs.ErrValidationFailed)
		assert.Contains(t, err.Error(), "outside the service area")
	})

	t.Run("should reject unconstructed point", func(t *testing.T) {
		require.ErrorIs(t, area.Require(kernel.GeoPoint{}), kernel.ErrGeoPointIsNotConstructed)
	})
}

func TestBoundingBox_Validate(t *testing.T) {
	require.NoError(t, kernel.DefaultServiceArea.Validate())
	require.Error(t, kernel.BoundingBox{MinLat: 10, MaxLat: 5, MinLng: 79, MaxLng: 82}.Validate())
	require.Error(t, kernel.BoundingBox{MinLat: 5, MaxLat: 10, MinLng: 79, MaxLng: 200}.Validate())
}

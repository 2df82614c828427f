package commands

import (
	"testing"

	"foodloop/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
)

func TestReportDriverLocationCommandHandler_LockFor(t *testing.T) {
	h := NewReportDriverLocationCommandHandler(nil, nil, kernel.DefaultServiceArea, SystemClock)

	t.Run("should hand one driver the same lock every time", func(t *testing.T) {
		driverID := kernel.NewUUID()

		assert.Same(t, h.lockFor(driverID), h.lockFor(driverID))
	})

	t.Run("should not grow with the number of drivers", func(t *testing.T) {
		locks := make(map[any]struct{})
		for range 10 * driverLockStripes {
			locks[h.lockFor(kernel.NewUUID())] = struct{}{}
		}

		assert.LessOrEqual(t, len(locks), driverLockStripes)
		assert.Greater(t, len(locks), 1)
	})
}

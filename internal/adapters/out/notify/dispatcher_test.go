package notify_test

import (
	"errors"
	"testing"
	"time"

	"foodloop/internal/adapters/out/notify"
	"foodloop/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, done <-chan struct{}, n int) {
	t.Helper()
	for range n {
		select {
		case <-done:
		case <-time.After(time.Second):
			t.Fatal("timed out waiting for delivery")
		}
	}
}

func TestDispatcher_Notify(t *testing.T) {
	t.Run("should deliver to every recipient", func(t *testing.T) {
		deliverer := newRecordingDeliverer()
		d := notify.NewDispatcher(2, 8, deliverer, discardLogger())
		d.Start(t.Context())
		defer d.Stop()

		donor, receiver := kernel.NewUUID(), kernel.NewUUID()
		d.Notify(t.Context(), claimedEvent(donor, receiver))

		waitFor(t, deliverer.done, 2)
		assert.ElementsMatch(t, []kernel.UUID{donor, receiver}, deliverer.recipients())
	})

	t.Run("should drop instead of blocking when the queue is full", func(t *testing.T) {
		deliverer := newRecordingDeliverer()
		deliverer.gate = make(chan struct{})
		d := notify.NewDispatcher(1, 1, deliverer, discardLogger())

		returned := make(chan struct{})
		go func() {
			d.Notify(t.Context(), claimedEvent(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()))
			close(returned)
		}()

		select {
		case <-returned:
		case <-time.After(time.Second):
			t.Fatal("notify blocked on a full queue")
		}
		assert.Equal(t, 1, d.Pending())

		d.Start(t.Context())
		close(deliverer.gate)
		waitFor(t, deliverer.done, 1)
		d.Stop()
		assert.Len(t, deliverer.recipients(), 1)
	})

	t.Run("should keep working after a failed delivery", func(t *testing.T) {
		deliverer := newRecordingDeliverer()
		deliverer.err = errors.New("push service down")
		d := notify.NewDispatcher(1, 4, deliverer, discardLogger())
		d.Start(t.Context())
		defer d.Stop()

		d.Notify(t.Context(), claimedEvent(kernel.NewUUID()))
		d.Notify(t.Context(), claimedEvent(kernel.NewUUID()))

		waitFor(t, deliverer.done, 2)
	})

	t.Run("stop without start returns", func(t *testing.T) {
		d := notify.NewDispatcher(0, 0, newRecordingDeliverer(), discardLogger())
		require.NotPanics(t, d.Stop)
	})
}

package jobs_test

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"foodloop/internal/core/application/usecases/commands"
	"foodloop/internal/core/application/usecases/queries"
	"foodloop/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func point(t *testing.T, lat, lng float64) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(lat, lng)
	require.NoError(t, err)
	return p
}

type fix struct {
	driverID kernel.UUID
	lat      float64
	lng      float64
}

// recordingReporter stands in for the location report handler.
// recordingReporter keeps every fix. When gate is set, each call announces
// itself on entered and blocks until gate is closed.
type recordingReporter struct {
	mu    sync.Mutex
	fixes []fix
	seen  chan fix

	gate    chan struct{}
	entered chan struct{}
}

func newRecordingReporter() *recordingReporter {
	return &recordingReporter{seen: make(chan fix, 64)}
}

func (r *recordingReporter) Handle(_ context.Context, cmd commands.ReportDriverLocationCommand) ([]kernel.UUID, error) {
	if r.gate != nil {
		r.entered <- struct{}{}
		<-r.gate
	}

	f := fix{driverID: cmd.DriverID(), lat: cmd.Location().Latitude(), lng: cmd.Location().Longitude()}
	r.mu.Lock()
	r.fixes = append(r.fixes, f)
	r.mu.Unlock()
	r.seen <- f
	return nil, nil
}

func (r *recordingReporter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.fixes)
}

func (r *recordingReporter) next(t *testing.T) fix {
	t.Helper()
	select {
	case f := <-r.seen:
		return f
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for a location fix")
		return fix{}
	}
}

type stubTracking struct {
	view queries.DonationTracking
	err  error
}

func (s stubTracking) Handle(context.Context, queries.GetDonationTrackingQuery) (queries.DonationTracking, error) {
	return s.view, s.err
}

type stubReconciler struct {
	mu     sync.Mutex
	calls  []int
	result commands.ReconcileResult
	err    error
}

func (s *stubReconciler) Handle(
	_ context.Context,
	cmd commands.ReconcileDonorCoordinatesCommand,
) (commands.ReconcileResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, cmd.BatchSize())
	return s.result, s.err
}

package jobs

import (
	"context"
	"log/slog"
	"sync"

	"foodloop/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

const (
	DefaultReconcileSchedule  = "@every 30m"
	DefaultReconcileBatchSize = 200
)

// DonorCoordinatesReconciler runs one reconciliation pass.
type DonorCoordinatesReconciler interface {
	Handle(ctx context.Context, cmd commands.ReconcileDonorCoordinatesCommand) (commands.ReconcileResult, error)
}

// CoordinateReconciliationJob periodically repairs pickup coordinates.
type CoordinateReconciliationJob struct {
	handler   DonorCoordinatesReconciler
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
	mu     sync.Mutex
}

func NewCoordinateReconciliationJob(
	handler DonorCoordinatesReconciler,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) *CoordinateReconciliationJob {
	if schedule == "" {
		schedule = DefaultReconcileSchedule
	}
	if batchSize < 1 {
		batchSize = DefaultReconcileBatchSize
	}
	logger = logger.With("component", "coordinate_reconciliation_job")
	cl := newCronLogger(logger)
	return &CoordinateReconciliationJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithLogger(cl), cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl))),
		logger:    logger,
	}
}

func (j *CoordinateReconciliationJob) Name() string {
	return "coordinate reconciliation job"
}

// Start schedules the pass. The schedule is validated here.
func (j *CoordinateReconciliationJob) Start() error {
	j.mu.Lock()
	j.ctx, j.cancel = context.WithCancel(context.Background())
	j.mu.Unlock()

	if _, err := j.cron.AddFunc(j.schedule, func() { _, _ = j.RunOnce(j.ctx) }); err != nil {
		j.cancel()
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(j.ctx, "Coordinate reconciliation job started", "schedule", j.schedule)
	return nil
}

// RunOnce performs a single pass outside the schedule.
func (j *CoordinateReconciliationJob) RunOnce(ctx context.Context) (commands.ReconcileResult, error) {
	cmd, err := commands.NewReconcileDonorCoordinatesCommand(j.batchSize)
	if err != nil {
		return commands.ReconcileResult{}, err
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Coordinate reconciliation failed", "error", err)
		return result, err
	}
	if result.Corrected > 0 || result.Conflicts > 0 {
		j.logger.InfoContext(ctx, "Coordinate reconciliation pass",
			"scanned", result.Scanned,
			"corrected", result.Corrected,
			"unresolved", result.Unresolved,
			"conflicts", result.Conflicts)
	}
	return result, nil
}

// Stop waits for a running pass to finish.
func (j *CoordinateReconciliationJob) Stop() {
	<-j.cron.Stop().Done()

	j.mu.Lock()
	if j.cancel != nil {
		j.cancel()
	}
	j.mu.Unlock()
	j.logger.Info("Coordinate reconciliation job stopped")
}

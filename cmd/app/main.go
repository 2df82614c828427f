package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodloop/cmd"
	httpadapter "foodloop/internal/adapters/in/http"
	"foodloop/internal/adapters/out/notify"
	"foodloop/internal/jobs"

	"github.com/hibiken/asynq"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "foodloop: %v\n", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	serve := newServeCmd()
	root := &cobra.Command{
		Use:   "foodloop",
		Short: "FoodLoop donation handoff service",
		Long: `FoodLoop coordinates surplus food handoffs between donors, receivers and drivers.
Without a subcommand it serves the HTTP API.`,
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.AddCommand(
		serve,
		newWorkerCmd(),
		newMigrateCmd(),
		newReconcileCmd(),
	)
	return root
}

func setup() (cmd.Config, *slog.Logger, *cmd.CompositionRoot) {
	cfg := cmd.LoadConfig()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	root, err := cmd.NewCompositionRoot(cfg, logger)
	if err != nil {
		log.Fatalf("init application: %v", err)
	}
	return cfg, logger, root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API, location streams and background jobs",
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			cfg, logger, root := setup()
			defer closeRoot(logger, root)

			if err := root.Migrate(); err != nil {
				log.Fatalf("migrate store: %v", err)
			}

			dispatcher := root.Dispatcher()
			dispatcher.Start(ctx)
			defer dispatcher.Stop()

			simulations := root.CreateSimulationSupervisor()
			jobManager := jobs.NewJobManager(logger, simulations, root.CreateCoordinateReconciliationJob())
			if err := jobManager.StartAll(); err != nil {
				log.Fatalf("start jobs: %v", err)
			}
			defer jobManager.StopAll()

			e, err := httpadapter.NewRouter(ctx, root.CreateServer(simulations))
			if err != nil {
				log.Fatalf("build router: %v", err)
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("http server listening", "port", cfg.HTTPPort)
				if err := e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case <-ctx.Done():
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("http server: %w", err)
				}
			}

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return e.Shutdown(shutdownCtx)
		},
	}
}

func newWorkerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "worker",
		Short: "Deliver queued push notifications",
		RunE: func(c *cobra.Command, _ []string) error {
			ctx := c.Context()
			cfg, logger, root := setup()
			defer closeRoot(logger, root)

			if cfg.RedisAddr == "" {
				return errors.New("REDIS_ADDR is required for the worker")
			}

			server := asynq.NewServer(root.RedisOpt(), asynq.Config{
				Concurrency: cfg.NotifyWorkers,
			})
			processor := notify.NewProcessor(root.PushDeliverer(), logger)

			go func() {
				<-ctx.Done()
				server.Shutdown()
			}()

			logger.Info("notification worker started", "concurrency", cfg.NotifyWorkers)
			if err := server.Run(processor.Handler()); err != nil {
				return fmt.Errorf("worker stopped: %w", err)
			}
			return nil
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the relational schema",
		RunE: func(*cobra.Command, []string) error {
			cfg, logger, root := setup()
			defer closeRoot(logger, root)

			if err := root.Migrate(); err != nil {
				return fmt.Errorf("migrate store: %w", err)
			}
			logger.Info("store migrated", "driver", cfg.StoreDriver)
			return nil
		},
	}
}

func newReconcileCmd() *cobra.Command {
	var batchSize int
	command := &cobra.Command{
		Use:   "reconcile",
		Short: "Run one donor coordinate reconciliation pass and exit",
		RunE: func(c *cobra.Command, _ []string) error {
			_, logger, root := setup()
			defer closeRoot(logger, root)

			job := root.CreateCoordinateReconciliationJob()
			if batchSize > 0 {
				job = jobs.NewCoordinateReconciliationJob(root.CreateReconcileDonorCoordinatesCommandHandler(),
					"", batchSize, logger)
			}

			result, err := job.RunOnce(c.Context())
			if err != nil {
				return fmt.Errorf("reconcile: %w", err)
			}
			fmt.Fprintf(c.OutOrStdout(), "scanned=%d corrected=%d unresolved=%d conflicts=%d\n",
				result.Scanned, result.Corrected, result.Unresolved, result.Conflicts)
			return nil
		},
	}
	command.Flags().IntVar(&batchSize, "batch-size", 0, "Donations to scan (defaults to RECONCILE_BATCH_SIZE)")
	return command
}

func closeRoot(logger *slog.Logger, root *cmd.CompositionRoot) {
	if err := root.Close(); err != nil {
		logger.Error("close application", "error", err)
	}
}

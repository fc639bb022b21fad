package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"technews/internal/bootstrap"
	"technews/internal/config"
	workerPkg "technews/internal/infra/worker"
	"technews/internal/observability/logging"
	"technews/internal/observability/tracing"
	"technews/internal/usecase/ingest"
)

func main() {
	os.Exit(run())
}

// run starts the scheduler and blocks until shutdown. The returned exit code
// is produced only after deferred cleanup has run.
func run() int {
	cfg, err := config.Load("")
	if err != nil {
		slog.Error("failed to load configuration", logging.ErrorAttr(err))
		return 1
	}
	logger := bootstrap.NewLogger(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing := tracing.Setup("technews-worker", os.Getenv("VERSION"))
	defer func() { _ = shutdownTracing(context.Background()) }()

	// Load worker configuration (fail-open strategy)
	workerMetrics := workerPkg.NewWorkerMetrics(nil)
	workerConfig := workerPkg.ApplyEnv(cfg.Worker, logger, workerMetrics)
	logger.Info("worker configuration loaded",
		slog.String("cron_schedule", workerConfig.CronSchedule),
		slog.String("timezone", workerConfig.Timezone),
		slog.Duration("ingest_timeout", workerConfig.IngestTimeout),
		slog.Int("health_port", workerConfig.HealthPort),
		slog.Bool("run_on_start", workerConfig.RunOnStart))

	store, err := bootstrap.OpenStore(ctx, cfg.Database)
	if err != nil {
		logger.Error("failed to open article store", logging.ErrorAttr(err))
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", logging.ErrorAttr(err))
		}
	}()

	producer, err := bootstrap.NewProducer(cfg.Feed)
	if err != nil {
		logger.Error("failed to create feed producer", logging.ErrorAttr(err))
		return 1
	}

	job := &workerPkg.IngestJob{
		Svc:     ingest.NewService(store.Articles, producer),
		Store:   store.Articles,
		Timeout: workerConfig.IngestTimeout,
		Metrics: workerMetrics,
		Logger:  logger.With(slog.String("provider", cfg.Feed.Provider)),
	}

	healthAddr := fmt.Sprintf(":%d", workerConfig.HealthPort)
	healthServer := workerPkg.NewHealthServer(healthAddr, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("health check server started", slog.String("addr", healthAddr))
		return healthServer.Run(gctx)
	})
	g.Go(func() error {
		return runCron(gctx, logger, workerConfig, job, healthServer)
	})

	if err := g.Wait(); err != nil {
		logger.Error("worker stopped with error", logging.ErrorAttr(err))
		return 1
	}
	logger.Info("worker stopped")
	return 0
}

// runCron schedules the ingest job and blocks until ctx is done. In-flight
// runs are waited for before returning.
func runCron(ctx context.Context, logger *slog.Logger, cfg workerPkg.WorkerConfig, job *workerPkg.IngestJob, health *workerPkg.HealthServer) error {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		logger.Error("invalid timezone, using UTC", slog.String("timezone", cfg.Timezone), logging.ErrorAttr(err))
		loc = time.UTC
	}
	c := cron.New(cron.WithLocation(loc))

	if _, err := c.AddFunc(cfg.CronSchedule, func() { job.Run(ctx) }); err != nil {
		return fmt.Errorf("add cron job: %w", err)
	}
	c.Start()

	health.SetReady(true)
	logger.Info("worker started", slog.String("schedule", cfg.CronSchedule), slog.String("timezone", loc.String()))

	if cfg.RunOnStart {
		job.Run(ctx)
	}

	<-ctx.Done()
	health.SetReady(false)
	logger.Info("stopping scheduler...")
	<-c.Stop().Done()
	return nil
}

package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/telcoflow/backoffice/internal/config"
	"github.com/telcoflow/backoffice/internal/jobs"
	"github.com/telcoflow/backoffice/internal/store"
)

func main() {
	var (
		jobName = flag.String("job", "", "run a single job (extract|pipeline) instead of the scheduler loop")
		once    = flag.Bool("once", false, "run the selected job once and exit")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pgStore, err := store.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pgStore.Close()
	logger.Info("connected to PostgreSQL")

	// The landing store is optional; without it extraction pages are
	// pulled and logged but not kept.
	var landing jobs.Landing
	if cfg.RedisURL != "" {
		redisStore, err := store.NewRedis(ctx, cfg.RedisURL)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisStore.Close()
		landing = redisStore
		logger.Info("connected to landing store")
	} else {
		logger.Warn("no landing store configured, extraction snapshots will be discarded")
	}

	client := jobs.NewAPIClient(cfg.APIBaseURL, logger)
	extract := jobs.NewExtractionJob(client, landing, cfg.ExtractWindowDays, logger)
	pipeline := jobs.NewPipelineJob(pgStore, client, cfg.MigrationsDir, cfg.PushAfterLoad, logger)

	scheduler := jobs.NewScheduler(extract, pipeline,
		cfg.ExtractInterval, cfg.PipelineInterval, cfg.SchedulerRetryWait, logger)

	if *once || *jobName != "" {
		var job jobs.Job
		switch *jobName {
		case "extract":
			job = extract
		case "", "pipeline":
			job = pipeline
		default:
			logger.Error("unknown job", "job", *jobName)
			os.Exit(1)
		}
		scheduler.RunOnce(ctx, job)
		return
	}

	scheduler.Run(ctx)
}

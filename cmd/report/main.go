package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/telcoflow/backoffice/internal/config"
	"github.com/telcoflow/backoffice/internal/report"
	"github.com/telcoflow/backoffice/internal/store"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pgStore, err := store.NewPostgres(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to postgres", "error", err)
		os.Exit(1)
	}
	defer pgStore.Close()

	if err := report.WriteAverageUsage(ctx, pgStore, cfg.CSVOutputPath, logger); err != nil {
		logger.Error("failed to write usage report", "error", err)
		os.Exit(1)
	}
}

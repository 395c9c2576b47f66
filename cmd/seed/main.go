package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/telcoflow/backoffice/internal/config"
	"github.com/telcoflow/backoffice/internal/store"
)

// Dev helper: create the schema and load a small fixed dataset so the API
// and pipeline have something to serve locally. Safe to run repeatedly.
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

	if err := pgStore.RunMigrations(ctx, cfg.MigrationsDir); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	if err := pgStore.SeedSampleData(ctx); err != nil {
		logger.Error("failed to seed sample data", "error", err)
		os.Exit(1)
	}

	logger.Info("sample data seeded")
}

// Command sync runs one full-refresh synchronization pass and exits.
// Useful for cron-style setups and for backfilling a fresh database.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"salesdash_backend/internal/events"
	"salesdash_backend/internal/ingest"
	"salesdash_backend/internal/source"
	"salesdash_backend/migrations"
	"salesdash_backend/platform/config"
	"salesdash_backend/platform/db"
	"salesdash_backend/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := db.RunMigrations(ctx, cfg, migrations.FS); err != nil {
		log.Error("failed to run database migrations", "error", err)
		os.Exit(1)
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	src, err := source.New(cfg)
	if err != nil {
		log.Error("failed to initialize record source", "error", err)
		os.Exit(1)
	}

	eventBus := events.NewInMemoryBus(log)
	module := ingest.NewModule(pool, src, cfg, eventBus, nil, log)

	result, err := module.Service().Run(ctx)
	if err != nil {
		log.Error("sync failed", "error", err)
		os.Exit(1)
	}

	log.Info("sync finished",
		"run_id", result.RunID,
		"fetched", result.Fetched,
		"inserted", result.Inserted,
		"rejected", result.Rejected,
		"warnings", result.Warnings,
		"duration_ms", result.DurationMs,
	)
}

// Package main implements the entry point for the job tracker API server:
// job CRUD plus background analysis and cover letter generation backed by an
// external text-generation model.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"

	"github.com/dwalbeck/job-tracker/internal/config"
	"github.com/dwalbeck/job-tracker/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, status) and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	appLogger := logger.Setup(cfg.Server.LogLevel)
	appLogger.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("model", cfg.LLM.ModelName))

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		appLogger.Error("failed to set up database", "error", err)
		log.Fatalf("failed to set up database: %v", err)
	}

	if *migrateCmd != "" {
		if err := runMigrations(db, *migrateCmd, appLogger); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		return
	}

	// Pending migrations are applied at startup so the schema always matches
	// the binary.
	if err := runMigrations(db, "up", appLogger); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

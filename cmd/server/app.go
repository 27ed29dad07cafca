package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/dwalbeck/job-tracker/internal/config"
	"github.com/dwalbeck/job-tracker/internal/platform/gemini"
	"github.com/dwalbeck/job-tracker/internal/platform/postgres"
	"github.com/dwalbeck/job-tracker/internal/service"
	"github.com/dwalbeck/job-tracker/internal/store"
	"github.com/dwalbeck/job-tracker/internal/task"
)

// application holds the shared application dependencies so wiring and
// shutdown live in one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	taskStore task.RecordStore
	jobStore  store.JobStore

	dispatcher *task.Dispatcher

	jobService      *service.JobService
	analysisService *service.AnalysisService
	letterService   *service.LetterService
}

// newApplication wires all application components. The stores handed to the
// services run on the pool handle; the factories bind fresh stores to each
// background worker's own connection.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	app.taskStore = postgres.NewTaskRecordStore(db)
	app.jobStore = postgres.NewJobStore(db, logger)
	analysisStore := postgres.NewAnalysisStore(db, logger)
	letterStore := postgres.NewLetterStore(db, logger)

	app.dispatcher = task.NewDispatcher(app.taskStore, db, logger)

	invoker, err := gemini.NewInvoker(ctx, logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize model invoker: %w", err)
	}
	logger.Info("model invoker initialized", slog.String("model", cfg.LLM.ModelName))

	modelTimeout := time.Duration(cfg.LLM.TimeoutSeconds) * time.Second

	app.jobService, err = service.NewJobService(app.jobStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create job service: %w", err)
	}

	app.analysisService, err = service.NewAnalysisService(
		app.jobStore,
		analysisStore,
		func(db store.DBTX) store.AnalysisStore { return postgres.NewAnalysisStore(db, logger) },
		app.dispatcher,
		invoker,
		cfg.LLM.ModelName,
		modelTimeout,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis service: %w", err)
	}

	app.letterService, err = service.NewLetterService(
		db,
		app.jobStore,
		letterStore,
		func(db store.DBTX) store.LetterStore { return postgres.NewLetterStore(db, logger) },
		app.dispatcher,
		invoker,
		cfg.LLM.ModelName,
		modelTimeout,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create letter service: %w", err)
	}

	logger.Info("application initialized")
	return app, nil
}

// Run starts the HTTP server and blocks until shutdown.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()
	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup drains in-flight background workers and releases resources. Called
// after the HTTP listener has stopped accepting requests.
func (app *application) cleanup() {
	if app.dispatcher != nil {
		app.logger.Info("waiting for in-flight background operations")
		app.dispatcher.Wait()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}

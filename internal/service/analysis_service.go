package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dwalbeck/job-tracker/internal/domain"
	"github.com/dwalbeck/job-tracker/internal/extract"
	"github.com/dwalbeck/job-tracker/internal/generation"
	"github.com/dwalbeck/job-tracker/internal/store"
	"github.com/dwalbeck/job-tracker/internal/task"
	"github.com/google/uuid"
)

// TaskDispatcher starts background workers. Satisfied by *task.Dispatcher.
type TaskDispatcher interface {
	Dispatch(ctx context.Context, operationName, handlerName, ownerName string, work task.WorkFunc) (uuid.UUID, error)
}

// AnalysisStoreFactory builds an AnalysisStore over a specific database
// handle. Workers use it to bind the store to their own connection instead
// of the pool handle the request path uses.
type AnalysisStoreFactory func(db store.DBTX) store.AnalysisStore

// AnalysisService triggers and reads job analyses. The trigger path is
// asynchronous: it dispatches a background worker and returns the task id
// for polling.
type AnalysisService struct {
	jobStore         store.JobStore
	analysisStore    store.AnalysisStore
	newAnalysisStore AnalysisStoreFactory
	dispatcher       TaskDispatcher
	invoker          generation.Invoker
	modelID          string
	timeout          time.Duration
	logger           *slog.Logger
}

// NewAnalysisService creates an AnalysisService.
func NewAnalysisService(
	jobStore store.JobStore,
	analysisStore store.AnalysisStore,
	newAnalysisStore AnalysisStoreFactory,
	dispatcher TaskDispatcher,
	invoker generation.Invoker,
	modelID string,
	timeout time.Duration,
	logger *slog.Logger,
) (*AnalysisService, error) {
	if jobStore == nil {
		return nil, fmt.Errorf("%w: job store", ErrNilDependency)
	}
	if analysisStore == nil {
		return nil, fmt.Errorf("%w: analysis store", ErrNilDependency)
	}
	if newAnalysisStore == nil {
		return nil, fmt.Errorf("%w: analysis store factory", ErrNilDependency)
	}
	if dispatcher == nil {
		return nil, fmt.Errorf("%w: dispatcher", ErrNilDependency)
	}
	if invoker == nil {
		return nil, fmt.Errorf("%w: invoker", ErrNilDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", ErrNilDependency)
	}
	if modelID == "" {
		return nil, fmt.Errorf("%w: model ID", ErrNilDependency)
	}
	if timeout <= 0 {
		return nil, generation.ErrInvalidTimeout
	}
	return &AnalysisService{
		jobStore:         jobStore,
		analysisStore:    analysisStore,
		newAnalysisStore: newAnalysisStore,
		dispatcher:       dispatcher,
		invoker:          invoker,
		modelID:          modelID,
		timeout:          timeout,
		logger:           logger.With(slog.String("component", "analysis_service")),
	}, nil
}

// Trigger starts the job_analysis background operation for a job and returns
// the task id. Fails fast with ErrMissingDescription when the job has no
// posting text, before any record is created.
func (s *AnalysisService) Trigger(ctx context.Context, jobID uuid.UUID) (uuid.UUID, error) {
	job, err := s.jobStore.GetByID(ctx, jobID)
	if err != nil {
		return uuid.Nil, err
	}
	if job.Description == "" {
		return uuid.Nil, ErrMissingDescription
	}

	taskID, err := s.dispatcher.Dispatch(
		ctx,
		task.OperationJobAnalysis,
		"analysis_service",
		job.ID.String(),
		s.analysisWork(job),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to dispatch analysis: %w", err)
	}

	return taskID, nil
}

// Get retrieves the materialized analysis, or store.ErrAnalysisNotFound
// while no completed analysis exists yet.
func (s *AnalysisService) Get(ctx context.Context, jobID uuid.UUID) (*domain.JobAnalysis, error) {
	return s.analysisStore.GetByJobID(ctx, jobID)
}

// analysisWork builds the worker closure: one model call, structured-output
// extraction, then an upsert through a store bound to the worker's own
// connection.
func (s *AnalysisService) analysisWork(job *domain.Job) task.WorkFunc {
	return func(ctx context.Context, db store.DBTX) error {
		raw, err := s.invoker.Invoke(ctx, s.modelID, analysisSystemPrompt, buildAnalysisPrompt(job), s.timeout)
		if err != nil {
			return fmt.Errorf("model invocation failed: %w", err)
		}

		fields, err := extract.Extract(raw, analysisRequiredKeys)
		if err != nil {
			return fmt.Errorf("failed to extract analysis output: %w", err)
		}

		var qualification string
		if err := json.Unmarshal(fields["job_qualification"], &qualification); err != nil {
			return fmt.Errorf("job_qualification is not a string: %w", err)
		}
		var keywords []string
		if err := json.Unmarshal(fields["keywords"], &keywords); err != nil {
			return fmt.Errorf("keywords is not a string array: %w", err)
		}

		analysis, err := domain.NewJobAnalysis(job.ID, qualification, keywords)
		if err != nil {
			return fmt.Errorf("model produced an invalid analysis: %w", err)
		}

		if err := s.newAnalysisStore(db).Upsert(ctx, analysis); err != nil {
			return fmt.Errorf("failed to save analysis: %w", err)
		}
		return nil
	}
}

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/dwalbeck/job-tracker/internal/domain"
	"github.com/dwalbeck/job-tracker/internal/store"
	"github.com/google/uuid"
)

// JobService handles job creation and retrieval.
type JobService struct {
	jobStore store.JobStore
	logger   *slog.Logger
}

// NewJobService creates a JobService.
func NewJobService(jobStore store.JobStore, logger *slog.Logger) (*JobService, error) {
	if jobStore == nil {
		return nil, fmt.Errorf("%w: job store", ErrNilDependency)
	}
	if logger == nil {
		return nil, fmt.Errorf("%w: logger", ErrNilDependency)
	}
	return &JobService{
		jobStore: jobStore,
		logger:   logger.With(slog.String("component", "job_service")),
	}, nil
}

// Create validates and persists a new job.
func (s *JobService) Create(
	ctx context.Context,
	company, title, description, postingURL, location string,
) (*domain.Job, error) {
	job, err := domain.NewJob(company, title, description, postingURL, location)
	if err != nil {
		return nil, err
	}

	if err := s.jobStore.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	return job, nil
}

// Get retrieves a job by id, or store.ErrJobNotFound.
func (s *JobService) Get(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	return s.jobStore.GetByID(ctx, id)
}

package store

import (
	"context"

	"github.com/dwalbeck/job-tracker/internal/domain"
	"github.com/google/uuid"
)

// JobStore persists jobs.
type JobStore interface {
	// Create saves a new job.
	Create(ctx context.Context, job *domain.Job) error

	// GetByID retrieves a job, or ErrJobNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error)
}

// AnalysisStore persists the materialized output of job analysis.
type AnalysisStore interface {
	// Upsert saves or replaces the analysis for a job.
	Upsert(ctx context.Context, analysis *domain.JobAnalysis) error

	// GetByJobID retrieves a job's analysis, or ErrAnalysisNotFound.
	GetByJobID(ctx context.Context, jobID uuid.UUID) (*domain.JobAnalysis, error)
}

// LetterStore persists materialized cover letters and their keyword key
// material.
type LetterStore interface {
	// Upsert saves or replaces the letter for a job and template.
	Upsert(ctx context.Context, letter *domain.CoverLetter) error

	// GetByJobAndTemplate retrieves a letter, or ErrLetterNotFound.
	GetByJobAndTemplate(ctx context.Context, jobID uuid.UUID, template string) (*domain.CoverLetter, error)

	// UpdateKeywords replaces only the stored keyword key material, leaving
	// the letter content untouched. Used when the idempotency guard detects
	// changed key material without an explicit regeneration request.
	UpdateKeywords(ctx context.Context, jobID uuid.UUID, template string, keywords []string) error
}

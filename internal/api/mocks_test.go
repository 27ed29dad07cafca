package api

import (
	"context"
	"io"
	"log/slog"

	"github.com/dwalbeck/job-tracker/internal/domain"
	"github.com/dwalbeck/job-tracker/internal/service"
	"github.com/google/uuid"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type stubJobService struct {
	createFn func(ctx context.Context, company, title, description, postingURL, location string) (*domain.Job, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*domain.Job, error)
}

func (s *stubJobService) Create(
	ctx context.Context,
	company, title, description, postingURL, location string,
) (*domain.Job, error) {
	return s.createFn(ctx, company, title, description, postingURL, location)
}

func (s *stubJobService) Get(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	return s.getFn(ctx, id)
}

type stubAnalysisService struct {
	triggerFn func(ctx context.Context, jobID uuid.UUID) (uuid.UUID, error)
	getFn     func(ctx context.Context, jobID uuid.UUID) (*domain.JobAnalysis, error)
}

func (s *stubAnalysisService) Trigger(ctx context.Context, jobID uuid.UUID) (uuid.UUID, error) {
	return s.triggerFn(ctx, jobID)
}

func (s *stubAnalysisService) Get(ctx context.Context, jobID uuid.UUID) (*domain.JobAnalysis, error) {
	return s.getFn(ctx, jobID)
}

type stubLetterService struct {
	requestFn    func(ctx context.Context, jobID uuid.UUID, template string, keywords []string) (*service.LetterOutcome, error)
	regenerateFn func(ctx context.Context, jobID uuid.UUID, template string, keywords []string) (uuid.UUID, error)
	getFn        func(ctx context.Context, jobID uuid.UUID, template string) (*domain.CoverLetter, error)
}

func (s *stubLetterService) Request(
	ctx context.Context,
	jobID uuid.UUID,
	template string,
	keywords []string,
) (*service.LetterOutcome, error) {
	return s.requestFn(ctx, jobID, template, keywords)
}

func (s *stubLetterService) Regenerate(
	ctx context.Context,
	jobID uuid.UUID,
	template string,
	keywords []string,
) (uuid.UUID, error) {
	return s.regenerateFn(ctx, jobID, template, keywords)
}

func (s *stubLetterService) Get(
	ctx context.Context,
	jobID uuid.UUID,
	template string,
) (*domain.CoverLetter, error) {
	return s.getFn(ctx, jobID, template)
}

package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
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

// LetterStoreFactory builds a LetterStore over a specific database handle.
type LetterStoreFactory func(db store.DBTX) store.LetterStore

// LetterDecision is the outcome of the idempotency guard on a letter
// generation request.
type LetterDecision string

// Possible request outcomes.
const (
	// LetterReused means a letter generated from the same keyword set
	// already exists and is returned as-is. No model call happens.
	LetterReused LetterDecision = "reused"

	// LetterKeywordsUpdated means a letter exists but its key material
	// diverged from the request. The stored keywords are updated and the
	// existing content is returned stale; only an explicit regenerate call
	// produces new content.
	LetterKeywordsUpdated LetterDecision = "keywords_updated"

	// LetterDispatched means no letter existed yet and a background
	// generation operation was started.
	LetterDispatched LetterDecision = "dispatched"
)

// LetterOutcome is the result of a letter generation request. Letter is set
// for the two synchronous decisions; TaskID is set when a worker was
// dispatched.
type LetterOutcome struct {
	Decision LetterDecision
	Letter   *domain.CoverLetter
	TaskID   uuid.UUID
}

// LetterService handles cover letter requests: the idempotency guard, the
// letter_generation background operation, and materialized reads.
type LetterService struct {
	db             *sql.DB
	jobStore       store.JobStore
	letterStore    store.LetterStore
	newLetterStore LetterStoreFactory
	dispatcher     TaskDispatcher
	invoker        generation.Invoker
	modelID        string
	timeout        time.Duration
	logger         *slog.Logger
}

// NewLetterService creates a LetterService. The db handle backs the guard
// transaction in Request.
func NewLetterService(
	db *sql.DB,
	jobStore store.JobStore,
	letterStore store.LetterStore,
	newLetterStore LetterStoreFactory,
	dispatcher TaskDispatcher,
	invoker generation.Invoker,
	modelID string,
	timeout time.Duration,
	logger *slog.Logger,
) (*LetterService, error) {
	if db == nil {
		return nil, fmt.Errorf("%w: database handle", ErrNilDependency)
	}
	if jobStore == nil {
		return nil, fmt.Errorf("%w: job store", ErrNilDependency)
	}
	if letterStore == nil {
		return nil, fmt.Errorf("%w: letter store", ErrNilDependency)
	}
	if newLetterStore == nil {
		return nil, fmt.Errorf("%w: letter store factory", ErrNilDependency)
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
	return &LetterService{
		db:             db,
		jobStore:       jobStore,
		letterStore:    letterStore,
		newLetterStore: newLetterStore,
		dispatcher:     dispatcher,
		invoker:        invoker,
		modelID:        modelID,
		timeout:        timeout,
		logger:         logger.With(slog.String("component", "letter_service")),
	}, nil
}

// Request runs the idempotency guard and either returns the existing letter
// or dispatches a generation worker. See LetterDecision for the three
// outcomes.
func (s *LetterService) Request(
	ctx context.Context,
	jobID uuid.UUID,
	template string,
	keywords []string,
) (*LetterOutcome, error) {
	job, err := s.validateRequest(ctx, jobID, template, keywords)
	if err != nil {
		return nil, err
	}

	// The guard's read and conditional keyword update run in one transaction
	// so two concurrent requests cannot interleave between the lookup and the
	// write. Dispatch stays outside: a worker must only start once the guard
	// has committed.
	var outcome *LetterOutcome
	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		letters := s.newLetterStore(tx)

		existing, err := letters.GetByJobAndTemplate(ctx, jobID, template)
		switch {
		case err == nil:
			if KeywordSetsEqual(existing.Keywords, keywords) {
				s.logger.Info("letter reused, key material unchanged",
					slog.String("job_id", jobID.String()),
					slog.String("template", template))
				outcome = &LetterOutcome{Decision: LetterReused, Letter: existing}
				return nil
			}

			// Changed key material does not regenerate. The stored keywords
			// are brought up to date and the letter is returned stale; a
			// fresh model call only happens on an explicit regenerate.
			if err := letters.UpdateKeywords(ctx, jobID, template, keywords); err != nil {
				return fmt.Errorf("failed to update letter keywords: %w", err)
			}
			existing.Keywords = keywords
			outcome = &LetterOutcome{Decision: LetterKeywordsUpdated, Letter: existing}
			return nil

		case errors.Is(err, store.ErrLetterNotFound):
			// No letter yet; dispatch after the transaction commits.
			return nil

		default:
			return fmt.Errorf("failed to check existing letter: %w", err)
		}
	})
	if err != nil {
		return nil, err
	}
	if outcome != nil {
		return outcome, nil
	}

	taskID, err := s.dispatch(ctx, job, template, keywords)
	if err != nil {
		return nil, err
	}
	return &LetterOutcome{Decision: LetterDispatched, TaskID: taskID}, nil
}

// Regenerate always dispatches a generation worker, bypassing the guard. The
// worker's upsert overwrites the existing letter and its key material.
func (s *LetterService) Regenerate(
	ctx context.Context,
	jobID uuid.UUID,
	template string,
	keywords []string,
) (uuid.UUID, error) {
	job, err := s.validateRequest(ctx, jobID, template, keywords)
	if err != nil {
		return uuid.Nil, err
	}
	return s.dispatch(ctx, job, template, keywords)
}

// Get retrieves the materialized letter, or store.ErrLetterNotFound while no
// completed generation exists yet.
func (s *LetterService) Get(ctx context.Context, jobID uuid.UUID, template string) (*domain.CoverLetter, error) {
	return s.letterStore.GetByJobAndTemplate(ctx, jobID, template)
}

func (s *LetterService) validateRequest(
	ctx context.Context,
	jobID uuid.UUID,
	template string,
	keywords []string,
) (*domain.Job, error) {
	if template == "" {
		return nil, ErrEmptyTemplate
	}
	if len(keywords) == 0 {
		return nil, ErrEmptyKeywords
	}

	job, err := s.jobStore.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Description == "" {
		return nil, ErrMissingDescription
	}
	return job, nil
}

func (s *LetterService) dispatch(
	ctx context.Context,
	job *domain.Job,
	template string,
	keywords []string,
) (uuid.UUID, error) {
	taskID, err := s.dispatcher.Dispatch(
		ctx,
		task.OperationLetterGeneration,
		"letter_service",
		job.ID.String(),
		s.letterWork(job, template, keywords),
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to dispatch letter generation: %w", err)
	}
	return taskID, nil
}

// letterWork builds the worker closure: one model call, structured-output
// extraction, then an upsert recording both the content and the keyword key
// material it was generated from.
func (s *LetterService) letterWork(job *domain.Job, template string, keywords []string) task.WorkFunc {
	return func(ctx context.Context, db store.DBTX) error {
		raw, err := s.invoker.Invoke(ctx, s.modelID, letterSystemPrompt, buildLetterPrompt(job, template, keywords), s.timeout)
		if err != nil {
			return fmt.Errorf("model invocation failed: %w", err)
		}

		fields, err := extract.Extract(raw, letterRequiredKeys)
		if err != nil {
			return fmt.Errorf("failed to extract letter output: %w", err)
		}

		var content string
		if err := json.Unmarshal(fields["letter_content"], &content); err != nil {
			return fmt.Errorf("letter_content is not a string: %w", err)
		}

		letter, err := domain.NewCoverLetter(job.ID, template, content, keywords)
		if err != nil {
			return fmt.Errorf("model produced an invalid letter: %w", err)
		}

		if err := s.newLetterStore(db).Upsert(ctx, letter); err != nil {
			return fmt.Errorf("failed to save letter: %w", err)
		}
		return nil
	}
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dwalbeck/job-tracker/internal/domain"
	"github.com/dwalbeck/job-tracker/internal/platform/logger"
	"github.com/dwalbeck/job-tracker/internal/store"
	"github.com/google/uuid"
)

// JobStore implements store.JobStore using PostgreSQL.
type JobStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewJobStore creates a JobStore over the given handle. If log is nil the
// process default is used.
func NewJobStore(db store.DBTX, log *slog.Logger) *JobStore {
	if log == nil {
		log = slog.Default()
	}
	return &JobStore{
		db:     db,
		logger: log.With(slog.String("component", "job_store")),
	}
}

var _ store.JobStore = (*JobStore)(nil)

// Create implements store.JobStore.Create.
func (s *JobStore) Create(ctx context.Context, job *domain.Job) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := job.Validate(); err != nil {
		log.Warn("job validation failed during create",
			slog.String("error", err.Error()),
			slog.String("job_id", job.ID.String()))
		return err
	}

	query := `
		INSERT INTO jobs (id, company, title, description, posting_url, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		job.ID,
		job.Company,
		job.Title,
		job.Description,
		job.PostingURL,
		job.Location,
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		log.Error("failed to create job",
			slog.String("error", err.Error()),
			slog.String("job_id", job.ID.String()))
		return fmt.Errorf("failed to create job: %w", err)
	}

	log.Info("job created",
		slog.String("job_id", job.ID.String()),
		slog.String("company", job.Company))
	return nil
}

// GetByID implements store.JobStore.GetByID.
func (s *JobStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Job, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, company, title, description, posting_url, location, created_at, updated_at
		FROM jobs
		WHERE id = $1
	`

	var job domain.Job
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&job.ID,
		&job.Company,
		&job.Title,
		&job.Description,
		&job.PostingURL,
		&job.Location,
		&job.CreatedAt,
		&job.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrJobNotFound
		}
		log.Error("failed to get job",
			slog.String("error", err.Error()),
			slog.String("job_id", id.String()))
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	return &job, nil
}

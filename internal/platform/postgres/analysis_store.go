package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dwalbeck/job-tracker/internal/domain"
	"github.com/dwalbeck/job-tracker/internal/platform/logger"
	"github.com/dwalbeck/job-tracker/internal/store"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL error code for foreign key violations.
const pgForeignKeyViolationCode = "23503"

// AnalysisStore implements store.AnalysisStore using PostgreSQL. Keywords
// are stored as a jsonb column.
type AnalysisStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewAnalysisStore creates an AnalysisStore over the given handle.
func NewAnalysisStore(db store.DBTX, log *slog.Logger) *AnalysisStore {
	if log == nil {
		log = slog.Default()
	}
	return &AnalysisStore{
		db:     db,
		logger: log.With(slog.String("component", "analysis_store")),
	}
}

var _ store.AnalysisStore = (*AnalysisStore)(nil)

// Upsert implements store.AnalysisStore.Upsert.
func (s *AnalysisStore) Upsert(ctx context.Context, analysis *domain.JobAnalysis) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := analysis.Validate(); err != nil {
		log.Warn("analysis validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("job_id", analysis.JobID.String()))
		return err
	}

	keywords, err := json.Marshal(analysis.Keywords)
	if err != nil {
		return fmt.Errorf("failed to marshal keywords: %w", err)
	}

	query := `
		INSERT INTO job_analyses (job_id, qualification, keywords, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (job_id) DO UPDATE
		SET qualification = EXCLUDED.qualification,
		    keywords = EXCLUDED.keywords,
		    updated_at = EXCLUDED.updated_at
	`
	_, err = s.db.ExecContext(ctx, query,
		analysis.JobID,
		analysis.Qualification,
		keywords,
		analysis.CreatedAt,
		time.Now().UTC(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolationCode {
			return fmt.Errorf("%w: job with ID %s not found",
				store.ErrInvalidEntity, analysis.JobID)
		}
		log.Error("failed to upsert analysis",
			slog.String("error", err.Error()),
			slog.String("job_id", analysis.JobID.String()))
		return fmt.Errorf("failed to upsert analysis: %w", err)
	}

	log.Info("analysis saved",
		slog.String("job_id", analysis.JobID.String()),
		slog.Int("keyword_count", len(analysis.Keywords)))
	return nil
}

// GetByJobID implements store.AnalysisStore.GetByJobID.
func (s *AnalysisStore) GetByJobID(ctx context.Context, jobID uuid.UUID) (*domain.JobAnalysis, error) {
	query := `
		SELECT job_id, qualification, keywords, created_at, updated_at
		FROM job_analyses
		WHERE job_id = $1
	`

	var analysis domain.JobAnalysis
	var keywords []byte

	err := s.db.QueryRowContext(ctx, query, jobID).Scan(
		&analysis.JobID,
		&analysis.Qualification,
		&keywords,
		&analysis.CreatedAt,
		&analysis.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAnalysisNotFound
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}

	if err := json.Unmarshal(keywords, &analysis.Keywords); err != nil {
		return nil, fmt.Errorf("failed to unmarshal keywords: %w", err)
	}

	return &analysis, nil
}

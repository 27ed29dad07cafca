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

// LetterStore implements store.LetterStore using PostgreSQL.
type LetterStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewLetterStore creates a LetterStore over the given handle.
func NewLetterStore(db store.DBTX, log *slog.Logger) *LetterStore {
	if log == nil {
		log = slog.Default()
	}
	return &LetterStore{
		db:     db,
		logger: log.With(slog.String("component", "letter_store")),
	}
}

var _ store.LetterStore = (*LetterStore)(nil)

// Upsert implements store.LetterStore.Upsert.
func (s *LetterStore) Upsert(ctx context.Context, letter *domain.CoverLetter) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := letter.Validate(); err != nil {
		log.Warn("letter validation failed during upsert",
			slog.String("error", err.Error()),
			slog.String("job_id", letter.JobID.String()))
		return err
	}

	keywords, err := json.Marshal(letter.Keywords)
	if err != nil {
		return fmt.Errorf("failed to marshal keywords: %w", err)
	}

	query := `
		INSERT INTO cover_letters (job_id, template, content, keywords, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (job_id, template) DO UPDATE
		SET content = EXCLUDED.content,
		    keywords = EXCLUDED.keywords,
		    updated_at = EXCLUDED.updated_at
	`
	_, err = s.db.ExecContext(ctx, query,
		letter.JobID,
		letter.Template,
		letter.Content,
		keywords,
		letter.CreatedAt,
		time.Now().UTC(),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolationCode {
			return fmt.Errorf("%w: job with ID %s not found",
				store.ErrInvalidEntity, letter.JobID)
		}
		log.Error("failed to upsert letter",
			slog.String("error", err.Error()),
			slog.String("job_id", letter.JobID.String()),
			slog.String("template", letter.Template))
		return fmt.Errorf("failed to upsert letter: %w", err)
	}

	log.Info("letter saved",
		slog.String("job_id", letter.JobID.String()),
		slog.String("template", letter.Template))
	return nil
}

// GetByJobAndTemplate implements store.LetterStore.GetByJobAndTemplate.
func (s *LetterStore) GetByJobAndTemplate(
	ctx context.Context,
	jobID uuid.UUID,
	template string,
) (*domain.CoverLetter, error) {
	query := `
		SELECT job_id, template, content, keywords, created_at, updated_at
		FROM cover_letters
		WHERE job_id = $1 AND template = $2
	`

	var letter domain.CoverLetter
	var keywords []byte

	err := s.db.QueryRowContext(ctx, query, jobID, template).Scan(
		&letter.JobID,
		&letter.Template,
		&letter.Content,
		&keywords,
		&letter.CreatedAt,
		&letter.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrLetterNotFound
		}
		return nil, fmt.Errorf("failed to get letter: %w", err)
	}

	if err := json.Unmarshal(keywords, &letter.Keywords); err != nil {
		return nil, fmt.Errorf("failed to unmarshal keywords: %w", err)
	}

	return &letter, nil
}

// UpdateKeywords implements store.LetterStore.UpdateKeywords. The letter
// content is deliberately untouched: it stays stale until an explicit
// regeneration request, because regenerating silently on every keyword edit
// would multiply external model calls behind the caller's back.
func (s *LetterStore) UpdateKeywords(
	ctx context.Context,
	jobID uuid.UUID,
	template string,
	keywords []string,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	encoded, err := json.Marshal(keywords)
	if err != nil {
		return fmt.Errorf("failed to marshal keywords: %w", err)
	}

	query := `
		UPDATE cover_letters
		SET keywords = $1, updated_at = $2
		WHERE job_id = $3 AND template = $4
	`
	result, err := s.db.ExecContext(ctx, query, encoded, time.Now().UTC(), jobID, template)
	if err != nil {
		log.Error("failed to update letter keywords",
			slog.String("error", err.Error()),
			slog.String("job_id", jobID.String()),
			slog.String("template", template))
		return fmt.Errorf("failed to update letter keywords: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return store.ErrLetterNotFound
	}

	log.Info("letter key material updated, content left stale",
		slog.String("job_id", jobID.String()),
		slog.String("template", template))
	return nil
}

// Package postgres implements the store interfaces against PostgreSQL using
// hand-written SQL over database/sql.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dwalbeck/job-tracker/internal/platform/logger"
	"github.com/dwalbeck/job-tracker/internal/store"
	"github.com/dwalbeck/job-tracker/internal/task"
	"github.com/google/uuid"
)

// TaskRecordStore implements task.RecordStore using PostgreSQL.
type TaskRecordStore struct {
	db store.DBTX
}

// NewTaskRecordStore creates a TaskRecordStore over the given handle.
func NewTaskRecordStore(db store.DBTX) *TaskRecordStore {
	return &TaskRecordStore{db: db}
}

var _ task.RecordStore = (*TaskRecordStore)(nil)

// Create implements task.RecordStore.Create.
func (s *TaskRecordStore) Create(
	ctx context.Context,
	operationName, handlerName, ownerName string,
) (*task.Record, error) {
	log := logger.FromContext(ctx)

	record := &task.Record{
		ID:            uuid.New(),
		OperationName: operationName,
		HandlerName:   handlerName,
		OwnerName:     ownerName,
		StartedAt:     time.Now().UTC(),
	}

	query := `
		INSERT INTO task_records (id, operation_name, handler_name, owner_name, started_at, confirmed, failed)
		VALUES ($1, $2, $3, $4, $5, FALSE, FALSE)
	`
	_, err := s.db.ExecContext(ctx, query,
		record.ID,
		record.OperationName,
		record.HandlerName,
		record.OwnerName,
		record.StartedAt,
	)
	if err != nil {
		log.Error("failed to create task record",
			"operation", operationName,
			"error", err)
		return nil, fmt.Errorf("failed to create task record: %w", err)
	}

	return record, nil
}

// GetByID implements task.RecordStore.GetByID.
func (s *TaskRecordStore) GetByID(ctx context.Context, id uuid.UUID) (*task.Record, error) {
	query := `
		SELECT id, operation_name, handler_name, owner_name, started_at, completed_at, confirmed, failed
		FROM task_records
		WHERE id = $1
	`

	var record task.Record
	var completedAt sql.NullTime

	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&record.ID,
		&record.OperationName,
		&record.HandlerName,
		&record.OwnerName,
		&record.StartedAt,
		&completedAt,
		&record.Confirmed,
		&record.Failed,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, task.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to get task record: %w", err)
	}

	if completedAt.Valid {
		record.CompletedAt = &completedAt.Time
	}

	return &record, nil
}

// MarkComplete implements task.RecordStore.MarkComplete. The WHERE clause
// guards an already-set completed_at, so the worker's success path is
// idempotent and the timestamp is written at most once.
func (s *TaskRecordStore) MarkComplete(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE task_records
		SET completed_at = $1
		WHERE id = $2 AND completed_at IS NULL
	`

	result, err := s.db.ExecContext(ctx, query, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to mark task record complete: %w", err)
	}

	return s.checkExists(ctx, id, result)
}

// MarkFailed implements task.RecordStore.MarkFailed.
func (s *TaskRecordStore) MarkFailed(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE task_records
		SET failed = TRUE
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to mark task record failed: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return task.ErrRecordNotFound
	}
	return nil
}

// Confirm implements task.RecordStore.Confirm. Only false→true transitions
// on completed records are accepted.
func (s *TaskRecordStore) Confirm(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE task_records
		SET confirmed = TRUE
		WHERE id = $1 AND completed_at IS NOT NULL AND failed = FALSE
	`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to confirm task record: %w", err)
	}

	return s.checkExists(ctx, id, result)
}

// checkExists distinguishes "no rows updated because the guard held" from
// "no rows updated because the record does not exist". Guarded updates are
// deliberate no-ops; missing records are errors.
func (s *TaskRecordStore) checkExists(ctx context.Context, id uuid.UUID, result sql.Result) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows > 0 {
		return nil
	}

	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	return nil
}

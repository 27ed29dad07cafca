// Package task provides the asynchronous long-running operation framework:
// a persisted record per background operation, a dispatcher that detaches
// workers from the HTTP request lifetime, and the state derivation clients
// observe while polling.
package task

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// State is the client-visible state of a background operation, derived from
// the persisted flag columns rather than stored directly.
type State string

// Possible task states.
const (
	StateRunning   State = "running"
	StateComplete  State = "complete"
	StateConfirmed State = "confirmed"
	StateFailed    State = "failed"
)

// Operation name constants.
const (
	// OperationJobAnalysis extracts a qualification assessment and keywords
	// from a job posting.
	OperationJobAnalysis = "job_analysis"

	// OperationLetterGeneration produces a cover letter for a job from a
	// baseline template and a keyword selection.
	OperationLetterGeneration = "letter_generation"
)

// ErrRecordNotFound indicates the requested task record does not exist.
var ErrRecordNotFound = errors.New("task record not found")

// Record is one row in the task_records table, representing a single
// background operation from dispatch to terminal state.
type Record struct {
	ID            uuid.UUID  `json:"id"`
	OperationName string     `json:"operation_name"`
	HandlerName   string     `json:"handler_name"`
	OwnerName     string     `json:"owner_name"`
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	Confirmed     bool       `json:"confirmed"`
	Failed        bool       `json:"failed"`
}

// State derives the client-visible state from the flag columns. Precedence
// is fixed: failed dominates everything, confirmed dominates complete, and a
// record that is neither failed nor completed is running.
func (r *Record) State() State {
	switch {
	case r.Failed:
		return StateFailed
	case r.CompletedAt == nil:
		return StateRunning
	case r.Confirmed:
		return StateConfirmed
	default:
		return StateComplete
	}
}

// RecordStore persists task records. It is the only durable state of the
// background operation framework.
type RecordStore interface {
	// Create inserts a new record in the running state and returns it.
	// Dispatch never starts a worker for a record that is not yet durable.
	Create(ctx context.Context, operationName, handlerName, ownerName string) (*Record, error)

	// GetByID retrieves a record, or ErrRecordNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)

	// MarkComplete sets completed_at. It is a no-op when completed_at is
	// already set, making the worker success path idempotent.
	MarkComplete(ctx context.Context, id uuid.UUID) error

	// MarkFailed sets the failed flag.
	MarkFailed(ctx context.Context, id uuid.UUID) error

	// Confirm sets the confirmed flag. Callers must have observed the
	// record in the complete state first; confirming a running or failed
	// record is not a defined operation.
	Confirm(ctx context.Context, id uuid.UUID) error
}

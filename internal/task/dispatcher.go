package task

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"github.com/dwalbeck/job-tracker/internal/store"
	"github.com/google/uuid"
)

// WorkFunc is the unit of work a dispatched worker executes. The handle it
// receives is a dedicated connection drawn from the pool for this worker
// alone; it is never the connection serving the originating HTTP request,
// whose lifetime ends with the response.
type WorkFunc func(ctx context.Context, db store.DBTX) error

// Dispatcher starts background workers for long-running operations. Each
// dispatch persists a task record synchronously, detaches exactly one worker
// goroutine for it, and returns the record id to the caller immediately.
//
// Dispatch itself is not idempotent: two calls create two independent
// records. Callers needing idempotency check the idempotency guard first.
type Dispatcher struct {
	recordStore RecordStore
	db          *sql.DB
	logger      *slog.Logger
	wg          sync.WaitGroup
}

// NewDispatcher creates a Dispatcher. The db pool is the source of worker
// connections; pool sizing must allow one connection per concurrently
// in-flight background operation on top of HTTP traffic.
func NewDispatcher(recordStore RecordStore, db *sql.DB, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		recordStore: recordStore,
		db:          db,
		logger:      logger.With("component", "task_dispatcher"),
	}
}

// Dispatch creates the task record and spawns its worker. The returned id is
// valid for polling as soon as Dispatch returns; the worker may not have
// made any progress yet, so an immediate poll observes running.
func (d *Dispatcher) Dispatch(
	ctx context.Context,
	operationName, handlerName, ownerName string,
	work WorkFunc,
) (uuid.UUID, error) {
	record, err := d.recordStore.Create(ctx, operationName, handlerName, ownerName)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create task record: %w", err)
	}

	d.logger.Info("dispatching background operation",
		"task_id", record.ID,
		"operation", operationName,
		"handler", handlerName)

	d.wg.Add(1)
	go d.runWorker(record.ID, operationName, work)

	return record.ID, nil
}

// Wait blocks until all in-flight workers have finished. Used during
// graceful shutdown.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// runWorker executes one dispatched operation to completion or failure. It
// runs on a background context because its lifetime is independent of the
// request that triggered it; there is no cancellation primitive, so the only
// bound on its duration is whatever timeout the work enforces internally.
func (d *Dispatcher) runWorker(id uuid.UUID, operationName string, work WorkFunc) {
	defer d.wg.Done()

	ctx := context.Background()
	log := d.logger.With("task_id", id, "operation", operationName)

	// A panicking worker must never leave its record running forever. The
	// recover runs before wg.Done (deferred later means executed earlier),
	// marks the record failed, and swallows the panic.
	defer func() {
		if p := recover(); p != nil {
			log.Error("worker panicked", "panic", p)
			if err := d.recordStore.MarkFailed(ctx, id); err != nil {
				log.Error("failed to mark panicked task as failed", "error", err)
			}
		}
	}()

	// The worker draws its own connection from the pool and returns it on
	// every exit path, success, failure, or panic.
	conn, err := d.db.Conn(ctx)
	if err != nil {
		log.Error("worker could not acquire database connection", "error", err)
		if markErr := d.recordStore.MarkFailed(ctx, id); markErr != nil {
			log.Error("failed to mark task as failed", "error", markErr)
		}
		return
	}
	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			log.Error("failed to release worker connection", "error", closeErr)
		}
	}()

	log.Info("worker started")

	if err := work(ctx, conn); err != nil {
		log.Error("worker failed", "error", err)
		if markErr := d.recordStore.MarkFailed(ctx, id); markErr != nil {
			log.Error("failed to mark task as failed", "error", markErr)
		}
		return
	}

	if err := d.recordStore.MarkComplete(ctx, id); err != nil {
		log.Error("failed to mark task as complete", "error", err)
		return
	}

	log.Info("worker completed")
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/dwalbeck/job-tracker/internal/api/shared"
	"github.com/dwalbeck/job-tracker/internal/platform/logger"
	"github.com/dwalbeck/job-tracker/internal/task"
)

// TaskHandler handles polling of background operation state.
type TaskHandler struct {
	recordStore task.RecordStore
	logger      *slog.Logger
}

// NewTaskHandler creates a TaskHandler.
func NewTaskHandler(recordStore task.RecordStore, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}
	return &TaskHandler{
		recordStore: recordStore,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// Poll handles GET /api/tasks/{id}. The first poll that observes a completed
// record also confirms it: the caller's response says complete, and every
// later poll says confirmed. An unknown id is always 404, never folded into
// a default state.
func (h *TaskHandler) Poll(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	taskID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	record, err := h.recordStore.GetByID(r.Context(), taskID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	state := record.State()
	if state == task.StateComplete {
		// Completion has been delivered to a client; record that fact. A
		// failed confirm write is logged but does not turn a successful poll
		// into an error response.
		if err := h.recordStore.Confirm(r.Context(), record.ID); err != nil {
			log.Error("failed to confirm completed task",
				slog.String("task_id", record.ID.String()),
				slog.String("error", err.Error()))
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, TaskStatusResponse{
		ID:            record.ID.String(),
		OperationName: record.OperationName,
		State:         state,
		StartedAt:     record.StartedAt,
		CompletedAt:   record.CompletedAt,
	})
}

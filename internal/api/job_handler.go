// Package api provides the HTTP handlers.
package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dwalbeck/job-tracker/internal/api/shared"
	"github.com/dwalbeck/job-tracker/internal/domain"
	"github.com/dwalbeck/job-tracker/internal/platform/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// JobService is the subset of the job use cases the handlers need.
type JobService interface {
	Create(ctx context.Context, company, title, description, postingURL, location string) (*domain.Job, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.Job, error)
}

// JobHandler handles job CRUD requests.
type JobHandler struct {
	jobService JobService
	logger     *slog.Logger
}

// NewJobHandler creates a JobHandler.
func NewJobHandler(jobService JobService, logger *slog.Logger) *JobHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for JobHandler")
	}
	return &JobHandler{
		jobService: jobService,
		logger:     logger.With(slog.String("component", "job_handler")),
	}
}

// Create handles POST /api/jobs.
func (h *JobHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateJobRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	job, err := h.jobService.Create(r.Context(), req.Company, req.Title, req.Description, req.PostingURL, req.Location)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("job created", slog.String("job_id", job.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, jobToResponse(job))
}

// Get handles GET /api/jobs/{id}.
func (h *JobHandler) Get(w http.ResponseWriter, r *http.Request) {
	jobID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	job, err := h.jobService.Get(r.Context(), jobID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, jobToResponse(job))
}

// parseIDParam extracts and parses a UUID path parameter, responding with
// 400 on malformed input.
func parseIDParam(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

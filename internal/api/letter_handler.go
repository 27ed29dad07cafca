package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dwalbeck/job-tracker/internal/api/shared"
	"github.com/dwalbeck/job-tracker/internal/domain"
	"github.com/dwalbeck/job-tracker/internal/platform/logger"
	"github.com/dwalbeck/job-tracker/internal/service"
	"github.com/google/uuid"
)

// LetterService is the subset of the letter use cases the handlers need.
type LetterService interface {
	Request(ctx context.Context, jobID uuid.UUID, template string, keywords []string) (*service.LetterOutcome, error)
	Regenerate(ctx context.Context, jobID uuid.UUID, template string, keywords []string) (uuid.UUID, error)
	Get(ctx context.Context, jobID uuid.UUID, template string) (*domain.CoverLetter, error)
}

// LetterHandler handles cover letter requests.
type LetterHandler struct {
	letterService LetterService
	logger        *slog.Logger
}

// NewLetterHandler creates a LetterHandler.
func NewLetterHandler(letterService LetterService, logger *slog.Logger) *LetterHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for LetterHandler")
	}
	return &LetterHandler{
		letterService: letterService,
		logger:        logger.With(slog.String("component", "letter_handler")),
	}
}

// Request handles POST /api/jobs/{id}/letter. Three outcomes: 200 with
// reused=true (key material matched, stored letter returned), 200 with
// reused=false (key material updated, stale letter returned), or 202 with a
// task id when no letter existed and generation was dispatched.
func (h *LetterHandler) Request(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	jobID, req, ok := h.decodeLetterRequest(w, r)
	if !ok {
		return
	}

	outcome, err := h.letterService.Request(r.Context(), jobID, req.Template, req.Keywords)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	switch outcome.Decision {
	case service.LetterDispatched:
		log.Debug("letter generation dispatched",
			slog.String("job_id", jobID.String()),
			slog.String("task_id", outcome.TaskID.String()))
		shared.RespondWithJSON(w, r, http.StatusAccepted, TaskAcceptedResponse{TaskID: outcome.TaskID.String()})

	case service.LetterReused:
		shared.RespondWithJSON(w, r, http.StatusOK, LetterReuseResponse{
			Reused: true,
			Letter: letterToResponse(outcome.Letter),
		})

	case service.LetterKeywordsUpdated:
		shared.RespondWithJSON(w, r, http.StatusOK, LetterReuseResponse{
			Reused: false,
			Letter: letterToResponse(outcome.Letter),
		})

	default:
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"An unexpected error occurred", nil)
	}
}

// Regenerate handles POST /api/jobs/{id}/letter/regenerate. Always
// dispatches; responds 202 with the task id.
func (h *LetterHandler) Regenerate(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	jobID, req, ok := h.decodeLetterRequest(w, r)
	if !ok {
		return
	}

	taskID, err := h.letterService.Regenerate(r.Context(), jobID, req.Template, req.Keywords)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("letter regeneration dispatched",
		slog.String("job_id", jobID.String()),
		slog.String("task_id", taskID.String()))
	shared.RespondWithJSON(w, r, http.StatusAccepted, TaskAcceptedResponse{TaskID: taskID.String()})
}

// Get handles GET /api/jobs/{id}/letter?template=... . Responds 404 until a
// worker has completed a letter for the job and template.
func (h *LetterHandler) Get(w http.ResponseWriter, r *http.Request) {
	jobID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	template := r.URL.Query().Get("template")
	if template == "" {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Template is required")
		return
	}

	letter, err := h.letterService.Get(r.Context(), jobID, template)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, letterToResponse(letter))
}

func (h *LetterHandler) decodeLetterRequest(
	w http.ResponseWriter,
	r *http.Request,
) (uuid.UUID, *LetterRequest, bool) {
	jobID, ok := parseIDParam(w, r, "id")
	if !ok {
		return uuid.Nil, nil, false
	}

	var req LetterRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return uuid.Nil, nil, false
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return uuid.Nil, nil, false
	}

	return jobID, &req, true
}

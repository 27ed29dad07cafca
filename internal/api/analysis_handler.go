package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/dwalbeck/job-tracker/internal/api/shared"
	"github.com/dwalbeck/job-tracker/internal/domain"
	"github.com/dwalbeck/job-tracker/internal/platform/logger"
	"github.com/google/uuid"
)

// AnalysisService is the subset of the analysis use cases the handlers need.
type AnalysisService interface {
	Trigger(ctx context.Context, jobID uuid.UUID) (uuid.UUID, error)
	Get(ctx context.Context, jobID uuid.UUID) (*domain.JobAnalysis, error)
}

// AnalysisHandler handles job analysis requests.
type AnalysisHandler struct {
	analysisService AnalysisService
	logger          *slog.Logger
}

// NewAnalysisHandler creates an AnalysisHandler.
func NewAnalysisHandler(analysisService AnalysisService, logger *slog.Logger) *AnalysisHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for AnalysisHandler")
	}
	return &AnalysisHandler{
		analysisService: analysisService,
		logger:          logger.With(slog.String("component", "analysis_handler")),
	}
}

// Trigger handles POST /api/jobs/{id}/analyze. On success it responds 202
// with the task id; the analysis itself materializes in the background.
func (h *AnalysisHandler) Trigger(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	jobID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	taskID, err := h.analysisService.Trigger(r.Context(), jobID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("analysis dispatched",
		slog.String("job_id", jobID.String()),
		slog.String("task_id", taskID.String()))
	shared.RespondWithJSON(w, r, http.StatusAccepted, TaskAcceptedResponse{TaskID: taskID.String()})
}

// Get handles GET /api/jobs/{id}/analysis. Responds 404 until a worker has
// completed an analysis for the job.
func (h *AnalysisHandler) Get(w http.ResponseWriter, r *http.Request) {
	jobID, ok := parseIDParam(w, r, "id")
	if !ok {
		return
	}

	analysis, err := h.analysisService.Get(r.Context(), jobID)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, analysisToResponse(analysis))
}

package main

import (
	"net/http"

	"github.com/dwalbeck/job-tracker/internal/api"
	apiMiddleware "github.com/dwalbeck/job-tracker/internal/api/middleware"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// setupRouter configures the application router with all routes and
// middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	jobHandler := api.NewJobHandler(app.jobService, app.logger)
	analysisHandler := api.NewAnalysisHandler(app.analysisService, app.logger)
	letterHandler := api.NewLetterHandler(app.letterService, app.logger)
	taskHandler := api.NewTaskHandler(app.taskStore, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Post("/jobs", jobHandler.Create)
		r.Get("/jobs/{id}", jobHandler.Get)

		r.Post("/jobs/{id}/analyze", analysisHandler.Trigger)
		r.Get("/jobs/{id}/analysis", analysisHandler.Get)

		r.Post("/jobs/{id}/letter", letterHandler.Request)
		r.Post("/jobs/{id}/letter/regenerate", letterHandler.Regenerate)
		r.Get("/jobs/{id}/letter", letterHandler.Get)

		r.Get("/tasks/{id}", taskHandler.Poll)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dwalbeck/job-tracker/internal/domain"
	"github.com/dwalbeck/job-tracker/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newJobRouter(svc JobService) http.Handler {
	handler := NewJobHandler(svc, testLogger())
	r := chi.NewRouter()
	r.Post("/api/jobs", handler.Create)
	r.Get("/api/jobs/{id}", handler.Get)
	return r
}

func TestJobHandlerCreate(t *testing.T) {
	t.Run("creates a job", func(t *testing.T) {
		svc := &stubJobService{
			createFn: func(_ context.Context, company, title, description, postingURL, location string) (*domain.Job, error) {
				return domain.NewJob(company, title, description, postingURL, location)
			},
		}
		router := newJobRouter(svc)

		body := `{"company": "Acme", "title": "Backend Engineer", "description": "Go and Postgres.", "location": "Remote"}`
		req := httptest.NewRequest(http.MethodPost, "/api/jobs", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)
		var resp JobResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Acme", resp.Company)
		assert.Equal(t, "Backend Engineer", resp.Title)
		assert.NotEmpty(t, resp.ID)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		router := newJobRouter(&stubJobService{})

		req := httptest.NewRequest(http.MethodPost, "/api/jobs", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a job without a company", func(t *testing.T) {
		router := newJobRouter(&stubJobService{})

		req := httptest.NewRequest(http.MethodPost, "/api/jobs", strings.NewReader(`{"title": "Backend Engineer"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var resp ErrorBody
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "Company")
	})
}

// ErrorBody mirrors shared.ErrorResponse for decoding in tests.
type ErrorBody struct {
	Error string `json:"error"`
}

func TestJobHandlerGet(t *testing.T) {
	t.Run("returns a job", func(t *testing.T) {
		job, err := domain.NewJob("Acme", "Backend Engineer", "Posting.", "", "Remote")
		require.NoError(t, err)
		svc := &stubJobService{
			getFn: func(_ context.Context, id uuid.UUID) (*domain.Job, error) {
				if id != job.ID {
					return nil, store.ErrJobNotFound
				}
				return job, nil
			},
		}
		router := newJobRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/jobs/"+job.ID.String(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp JobResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, job.ID.String(), resp.ID)
	})

	t.Run("unknown job is 404", func(t *testing.T) {
		svc := &stubJobService{
			getFn: func(context.Context, uuid.UUID) (*domain.Job, error) {
				return nil, store.ErrJobNotFound
			},
		}
		router := newJobRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/jobs/"+uuid.New().String(), nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

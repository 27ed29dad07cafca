package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dwalbeck/job-tracker/internal/domain"
	"github.com/dwalbeck/job-tracker/internal/service"
	"github.com/dwalbeck/job-tracker/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLetterRouter(svc LetterService) http.Handler {
	handler := NewLetterHandler(svc, testLogger())
	r := chi.NewRouter()
	r.Post("/api/jobs/{id}/letter", handler.Request)
	r.Post("/api/jobs/{id}/letter/regenerate", handler.Regenerate)
	r.Get("/api/jobs/{id}/letter", handler.Get)
	return r
}

const letterRequestBody = `{"template": "formal", "keywords": ["go", "postgres"]}`

func TestLetterHandlerRequest(t *testing.T) {
	t.Run("first generation returns 202", func(t *testing.T) {
		taskID := uuid.New()
		svc := &stubLetterService{
			requestFn: func(context.Context, uuid.UUID, string, []string) (*service.LetterOutcome, error) {
				return &service.LetterOutcome{Decision: service.LetterDispatched, TaskID: taskID}, nil
			},
		}
		router := newLetterRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/jobs/"+uuid.New().String()+"/letter", strings.NewReader(letterRequestBody))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusAccepted, rec.Code)
		var resp TaskAcceptedResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, taskID.String(), resp.TaskID)
	})

	t.Run("matching key material returns the stored letter", func(t *testing.T) {
		jobID := uuid.New()
		letter, err := domain.NewCoverLetter(jobID, "formal", "Stored letter.", []string{"go", "postgres"})
		require.NoError(t, err)
		svc := &stubLetterService{
			requestFn: func(context.Context, uuid.UUID, string, []string) (*service.LetterOutcome, error) {
				return &service.LetterOutcome{Decision: service.LetterReused, Letter: letter}, nil
			},
		}
		router := newLetterRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/jobs/"+jobID.String()+"/letter", strings.NewReader(letterRequestBody))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp LetterReuseResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Reused)
		assert.Equal(t, "Stored letter.", resp.Letter.Content)
	})

	t.Run("changed key material returns the stale letter with reused false", func(t *testing.T) {
		jobID := uuid.New()
		letter, err := domain.NewCoverLetter(jobID, "formal", "Stale letter.", []string{"go", "kubernetes"})
		require.NoError(t, err)
		svc := &stubLetterService{
			requestFn: func(context.Context, uuid.UUID, string, []string) (*service.LetterOutcome, error) {
				return &service.LetterOutcome{Decision: service.LetterKeywordsUpdated, Letter: letter}, nil
			},
		}
		router := newLetterRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/jobs/"+jobID.String()+"/letter", strings.NewReader(letterRequestBody))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp LetterReuseResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Reused)
		assert.Equal(t, "Stale letter.", resp.Letter.Content)
		assert.Equal(t, []string{"go", "kubernetes"}, resp.Letter.Keywords)
	})

	t.Run("missing template is 400", func(t *testing.T) {
		router := newLetterRouter(&stubLetterService{})

		req := httptest.NewRequest(http.MethodPost, "/api/jobs/"+uuid.New().String()+"/letter",
			strings.NewReader(`{"keywords": ["go"]}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("empty keywords are 400", func(t *testing.T) {
		router := newLetterRouter(&stubLetterService{})

		req := httptest.NewRequest(http.MethodPost, "/api/jobs/"+uuid.New().String()+"/letter",
			strings.NewReader(`{"template": "formal", "keywords": []}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestLetterHandlerRegenerate(t *testing.T) {
	t.Run("always returns 202", func(t *testing.T) {
		taskID := uuid.New()
		svc := &stubLetterService{
			regenerateFn: func(context.Context, uuid.UUID, string, []string) (uuid.UUID, error) {
				return taskID, nil
			},
		}
		router := newLetterRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/jobs/"+uuid.New().String()+"/letter/regenerate",
			strings.NewReader(letterRequestBody))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusAccepted, rec.Code)
		var resp TaskAcceptedResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, taskID.String(), resp.TaskID)
	})

	t.Run("unknown job is 404", func(t *testing.T) {
		svc := &stubLetterService{
			regenerateFn: func(context.Context, uuid.UUID, string, []string) (uuid.UUID, error) {
				return uuid.Nil, store.ErrJobNotFound
			},
		}
		router := newLetterRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/jobs/"+uuid.New().String()+"/letter/regenerate",
			strings.NewReader(letterRequestBody))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestLetterHandlerGet(t *testing.T) {
	t.Run("returns materialized letter", func(t *testing.T) {
		jobID := uuid.New()
		letter, err := domain.NewCoverLetter(jobID, "formal", "Letter.", []string{"go"})
		require.NoError(t, err)
		svc := &stubLetterService{
			getFn: func(_ context.Context, _ uuid.UUID, template string) (*domain.CoverLetter, error) {
				if template != "formal" {
					return nil, store.ErrLetterNotFound
				}
				return letter, nil
			},
		}
		router := newLetterRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/jobs/"+jobID.String()+"/letter?template=formal", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var resp LetterResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Letter.", resp.Content)
	})

	t.Run("missing template query is 400", func(t *testing.T) {
		router := newLetterRouter(&stubLetterService{})

		req := httptest.NewRequest(http.MethodGet, "/api/jobs/"+uuid.New().String()+"/letter", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("404 until a worker has completed", func(t *testing.T) {
		svc := &stubLetterService{
			getFn: func(context.Context, uuid.UUID, string) (*domain.CoverLetter, error) {
				return nil, store.ErrLetterNotFound
			},
		}
		router := newLetterRouter(svc)

		req := httptest.NewRequest(http.MethodGet, "/api/jobs/"+uuid.New().String()+"/letter?template=formal", nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

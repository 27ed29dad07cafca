package service

import (
	"context"
	"testing"

	"github.com/dwalbeck/job-tracker/internal/domain"
	"github.com/dwalbeck/job-tracker/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJobServiceCreate(t *testing.T) {
	t.Run("creates a valid job", func(t *testing.T) {
		jobs := &mockJobStore{}
		svc, err := NewJobService(jobs, testLogger())
		require.NoError(t, err)

		job, err := svc.Create(context.Background(), "Acme", "Backend Engineer", "Posting text.", "https://example.com/j/1", "Remote")

		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, job.ID)
		assert.Equal(t, jobs.created, job)
	})

	t.Run("rejects a job without a company", func(t *testing.T) {
		svc, err := NewJobService(&mockJobStore{}, testLogger())
		require.NoError(t, err)

		_, err = svc.Create(context.Background(), "", "Backend Engineer", "", "", "")
		assert.ErrorIs(t, err, domain.ErrEmptyJobCompany)
	})
}

func TestJobServiceGet(t *testing.T) {
	job := testJob(t)
	svc, err := NewJobService(&mockJobStore{job: job}, testLogger())
	require.NoError(t, err)

	got, err := svc.Get(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, job, got)

	_, err = svc.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrJobNotFound)
}

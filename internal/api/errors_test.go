package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dwalbeck/job-tracker/internal/service"
	"github.com/dwalbeck/job-tracker/internal/store"
	"github.com/dwalbeck/job-tracker/internal/task"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"job not found", store.ErrJobNotFound, http.StatusNotFound},
		{"analysis not found", store.ErrAnalysisNotFound, http.StatusNotFound},
		{"letter not found", store.ErrLetterNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", store.ErrLetterNotFound), http.StatusNotFound},
		{"task record not found", task.ErrRecordNotFound, http.StatusNotFound},
		{"missing description", service.ErrMissingDescription, http.StatusBadRequest},
		{"empty template", service.ErrEmptyTemplate, http.StatusBadRequest},
		{"empty keywords", service.ErrEmptyKeywords, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"unknown error", errors.New("disk on fire"), http.StatusInternalServerError},
		{"nil error", nil, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	assert.Equal(t, "Job not found", GetSafeErrorMessage(store.ErrJobNotFound))
	assert.Equal(t, "Letter not found", GetSafeErrorMessage(fmt.Errorf("lookup: %w", store.ErrLetterNotFound)))

	// Unrecognized errors must never leak their text.
	internal := errors.New("pq: connection refused on 10.0.0.5")
	msg := GetSafeErrorMessage(internal)
	assert.Equal(t, "An unexpected error occurred", msg)
	assert.NotContains(t, msg, "10.0.0.5")
}

package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for JobAnalysis.
var (
	ErrEmptyAnalysisJobID         = errors.New("analysis job ID cannot be empty")
	ErrEmptyAnalysisQualification = errors.New("analysis qualification cannot be empty")
)

// JobAnalysis is the materialized output of the job_analysis background
// operation: a qualification assessment and the keywords extracted from the
// posting. One analysis per job; regeneration overwrites it.
type JobAnalysis struct {
	JobID         uuid.UUID `json:"job_id"`
	Qualification string    `json:"qualification"`
	Keywords      []string  `json:"keywords"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// NewJobAnalysis creates a JobAnalysis for the given job.
func NewJobAnalysis(jobID uuid.UUID, qualification string, keywords []string) (*JobAnalysis, error) {
	now := time.Now().UTC()
	analysis := &JobAnalysis{
		JobID:         jobID,
		Qualification: qualification,
		Keywords:      keywords,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := analysis.Validate(); err != nil {
		return nil, err
	}

	return analysis, nil
}

// Validate checks the JobAnalysis fields.
func (a *JobAnalysis) Validate() error {
	if a.JobID == uuid.Nil {
		return ErrEmptyAnalysisJobID
	}
	if a.Qualification == "" {
		return ErrEmptyAnalysisQualification
	}
	return nil
}

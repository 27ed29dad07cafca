package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Job.
var (
	ErrEmptyJobID      = errors.New("job ID cannot be empty")
	ErrEmptyJobCompany = errors.New("job company cannot be empty")
	ErrEmptyJobTitle   = errors.New("job title cannot be empty")
)

// Job represents a tracked job posting. The Description field is the raw
// posting text that analysis and letter generation operate on; it may be
// empty until the user pastes it in, which is why the analysis trigger
// validates it separately.
type Job struct {
	ID          uuid.UUID `json:"id"`
	Company     string    `json:"company"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PostingURL  string    `json:"posting_url"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewJob creates a new Job with a generated ID and creation timestamps.
// Returns an error if validation fails.
func NewJob(company, title, description, postingURL, location string) (*Job, error) {
	now := time.Now().UTC()
	job := &Job{
		ID:          uuid.New(),
		Company:     company,
		Title:       title,
		Description: description,
		PostingURL:  postingURL,
		Location:    location,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := job.Validate(); err != nil {
		return nil, err
	}

	return job, nil
}

// Validate checks that the Job carries the minimum required data.
func (j *Job) Validate() error {
	if j.ID == uuid.Nil {
		return ErrEmptyJobID
	}
	if j.Company == "" {
		return ErrEmptyJobCompany
	}
	if j.Title == "" {
		return ErrEmptyJobTitle
	}
	return nil
}

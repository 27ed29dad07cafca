package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for CoverLetter.
var (
	ErrEmptyLetterJobID    = errors.New("letter job ID cannot be empty")
	ErrEmptyLetterTemplate = errors.New("letter template cannot be empty")
	ErrEmptyLetterContent  = errors.New("letter content cannot be empty")
)

// CoverLetter is the materialized output of the letter_generation background
// operation for one job and baseline template. Keywords records the key
// material the letter was generated from; when the caller's requested keyword
// set diverges from it, the stored key material is updated without
// regenerating Content, which stays stale until an explicit regenerate.
type CoverLetter struct {
	JobID     uuid.UUID `json:"job_id"`
	Template  string    `json:"template"`
	Content   string    `json:"content"`
	Keywords  []string  `json:"keywords"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewCoverLetter creates a CoverLetter for the given job and template.
func NewCoverLetter(jobID uuid.UUID, template, content string, keywords []string) (*CoverLetter, error) {
	now := time.Now().UTC()
	letter := &CoverLetter{
		JobID:     jobID,
		Template:  template,
		Content:   content,
		Keywords:  keywords,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := letter.Validate(); err != nil {
		return nil, err
	}

	return letter, nil
}

// Validate checks the CoverLetter fields.
func (l *CoverLetter) Validate() error {
	if l.JobID == uuid.Nil {
		return ErrEmptyLetterJobID
	}
	if l.Template == "" {
		return ErrEmptyLetterTemplate
	}
	if l.Content == "" {
		return ErrEmptyLetterContent
	}
	return nil
}

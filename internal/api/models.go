package api

import (
	"time"

	"github.com/dwalbeck/job-tracker/internal/domain"
	"github.com/dwalbeck/job-tracker/internal/task"
)

// CreateJobRequest is the request body for creating a job.
type CreateJobRequest struct {
	Company     string `json:"company"     validate:"required"`
	Title       string `json:"title"       validate:"required"`
	Description string `json:"description"`
	PostingURL  string `json:"posting_url" validate:"omitempty,url"`
	Location    string `json:"location"`
}

// JobResponse is the response body for a job.
type JobResponse struct {
	ID          string    `json:"id"`
	Company     string    `json:"company"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	PostingURL  string    `json:"posting_url"`
	Location    string    `json:"location"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func jobToResponse(job *domain.Job) JobResponse {
	return JobResponse{
		ID:          job.ID.String(),
		Company:     job.Company,
		Title:       job.Title,
		Description: job.Description,
		PostingURL:  job.PostingURL,
		Location:    job.Location,
		CreatedAt:   job.CreatedAt,
		UpdatedAt:   job.UpdatedAt,
	}
}

// AnalysisResponse is the response body for a materialized job analysis.
type AnalysisResponse struct {
	JobID         string    `json:"job_id"`
	Qualification string    `json:"job_qualification"`
	Keywords      []string  `json:"keywords"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func analysisToResponse(analysis *domain.JobAnalysis) AnalysisResponse {
	return AnalysisResponse{
		JobID:         analysis.JobID.String(),
		Qualification: analysis.Qualification,
		Keywords:      analysis.Keywords,
		UpdatedAt:     analysis.UpdatedAt,
	}
}

// TaskAcceptedResponse is the 202 body returned when a background operation
// was dispatched; the id is valid for polling immediately.
type TaskAcceptedResponse struct {
	TaskID string `json:"task_id"`
}

// LetterRequest is the request body for requesting or regenerating a letter.
type LetterRequest struct {
	Template string   `json:"template" validate:"required"`
	Keywords []string `json:"keywords" validate:"required,min=1"`
}

// LetterResponse is the response body for a materialized cover letter.
type LetterResponse struct {
	JobID     string    `json:"job_id"`
	Template  string    `json:"template"`
	Content   string    `json:"letter_content"`
	Keywords  []string  `json:"keywords"`
	UpdatedAt time.Time `json:"updated_at"`
}

func letterToResponse(letter *domain.CoverLetter) LetterResponse {
	return LetterResponse{
		JobID:     letter.JobID.String(),
		Template:  letter.Template,
		Content:   letter.Content,
		Keywords:  letter.Keywords,
		UpdatedAt: letter.UpdatedAt,
	}
}

// LetterReuseResponse is the 200 body returned when the idempotency guard
// short-circuited generation. Reused is true when the stored key material
// matched; false when the keywords were updated and the content is stale.
type LetterReuseResponse struct {
	Reused bool           `json:"reused"`
	Letter LetterResponse `json:"letter"`
}

// TaskStatusResponse is the poll response body.
type TaskStatusResponse struct {
	ID            string     `json:"id"`
	OperationName string     `json:"operation_name"`
	State         task.State `json:"state"`
	StartedAt     time.Time  `json:"started_at"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
}

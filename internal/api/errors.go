package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dwalbeck/job-tracker/internal/domain"
	"github.com/dwalbeck/job-tracker/internal/service"
	"github.com/dwalbeck/job-tracker/internal/store"
	"github.com/dwalbeck/job-tracker/internal/task"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// leaking internal error types or messages to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	// Not found
	case store.IsNotFoundError(err),
		errors.Is(err, task.ErrRecordNotFound):
		return http.StatusNotFound

	// Bad request
	case errors.Is(err, service.ErrMissingDescription),
		errors.Is(err, service.ErrEmptyTemplate),
		errors.Is(err, service.ErrEmptyKeywords),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, domain.ErrEmptyJobCompany),
		errors.Is(err, domain.ErrEmptyJobTitle):
		return http.StatusBadRequest

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for an error.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"

	case errors.Is(err, store.ErrJobNotFound):
		return "Job not found"
	case errors.Is(err, store.ErrAnalysisNotFound):
		return "Analysis not found"
	case errors.Is(err, store.ErrLetterNotFound):
		return "Letter not found"
	case errors.Is(err, task.ErrRecordNotFound):
		return "Task not found"

	case errors.Is(err, service.ErrMissingDescription):
		return "Job has no description"
	case errors.Is(err, service.ErrEmptyTemplate):
		return "Template is required"
	case errors.Is(err, service.ErrEmptyKeywords):
		return "At least one keyword is required"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid entity data"
	case errors.Is(err, domain.ErrEmptyJobCompany):
		return "Company is required"
	case errors.Is(err, domain.ErrEmptyJobTitle):
		return "Title is required"

	default:
		return "An unexpected error occurred"
	}
}

// SanitizeValidationError reduces a validator error to a user-friendly
// message naming the failing field without echoing submitted values.
func SanitizeValidationError(err error) string {
	errMsg := err.Error()

	if strings.Contains(errMsg, "Field validation") {
		// Format: "Key: 'CreateJobRequest.Company' Error:Field validation for 'Company' failed on the 'required' tag"
		parts := strings.Split(errMsg, "Error:")
		if len(parts) >= 2 {
			fieldParts := strings.Split(parts[1], "'")
			if len(fieldParts) >= 3 {
				field := fieldParts[1]
				if len(fieldParts) >= 5 {
					return fmt.Sprintf("Invalid %s: %s", field, validationTagMessage(fieldParts[3]))
				}
				return fmt.Sprintf("Invalid %s", field)
			}
		}
	}

	return "Validation error"
}

func validationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "url":
		return "invalid URL"
	default:
		return "validation failed"
	}
}

// Package service implements the application use cases: job CRUD, the two
// background operations (job analysis and letter generation), and the
// idempotency guard that decides whether letter generation runs at all.
package service

import "errors"

// Sentinel errors returned by the services.
var (
	// ErrMissingDescription indicates an operation that reads the posting
	// text was triggered for a job whose description is still empty.
	ErrMissingDescription = errors.New("job has no description")

	// ErrEmptyKeywords indicates a letter generation request without any
	// keyword key material.
	ErrEmptyKeywords = errors.New("keywords cannot be empty")

	// ErrEmptyTemplate indicates a letter generation request without a
	// baseline template name.
	ErrEmptyTemplate = errors.New("template cannot be empty")

	// ErrNilDependency indicates a service constructor was given a nil
	// collaborator.
	ErrNilDependency = errors.New("dependency cannot be nil")
)

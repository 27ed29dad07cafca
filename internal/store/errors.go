package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist.
	// Entity-specific variants below wrap it so errors.Is(err, ErrNotFound)
	// matches any of them.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored, or references a row that does not exist.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrJobNotFound indicates the requested job does not exist.
	ErrJobNotFound = fmt.Errorf("%w: job", ErrNotFound)

	// ErrAnalysisNotFound indicates no analysis has been materialized for
	// the job yet.
	ErrAnalysisNotFound = fmt.Errorf("%w: job analysis", ErrNotFound)

	// ErrLetterNotFound indicates no cover letter has been materialized for
	// the job and template yet.
	ErrLetterNotFound = fmt.Errorf("%w: cover letter", ErrNotFound)
)

// IsNotFoundError reports whether err is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

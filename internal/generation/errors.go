package generation

import (
	"errors"
	"fmt"
)

// InvokeErrorKind classifies a failed model invocation.
type InvokeErrorKind string

// Possible invocation failure kinds.
const (
	// InvokeTimeout means the bounded call deadline elapsed.
	InvokeTimeout InvokeErrorKind = "timeout"

	// InvokeTransport means the request never produced a service response
	// (connection failures, client-side errors).
	InvokeTransport InvokeErrorKind = "transport"

	// InvokeUpstream means the service responded with an error or an
	// unusable response (non-2xx, empty candidates, safety block).
	InvokeUpstream InvokeErrorKind = "upstream"
)

// Sentinel errors for invocation validation.
var (
	ErrInvalidTimeout = errors.New("timeout must be a positive duration")
	ErrEmptyPrompt    = errors.New("user prompt cannot be empty")
)

// InvokeError is the typed failure returned by an Invoker.
type InvokeError struct {
	Kind   InvokeErrorKind
	Detail string
	Err    error
}

func (e *InvokeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("model invocation failed (%s): %s: %v", e.Kind, e.Detail, e.Err)
	}
	return fmt.Sprintf("model invocation failed (%s): %s", e.Kind, e.Detail)
}

func (e *InvokeError) Unwrap() error {
	return e.Err
}

// NewInvokeError creates an InvokeError of the given kind.
func NewInvokeError(kind InvokeErrorKind, detail string, err error) *InvokeError {
	return &InvokeError{Kind: kind, Detail: detail, Err: err}
}

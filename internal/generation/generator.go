// Package generation defines the contract between background workers and the
// external text-generation service, decoupled from any concrete provider.
package generation

import (
	"context"
	"time"
)

// Invoker issues a single request to an external text-generation service.
//
// Implementations must enforce the timeout and must not retry: callers run
// inside background workers, and silently retrying a multi-minute call would
// keep the task's poll state at running long after the first failure.
type Invoker interface {
	// Invoke sends one prompt pair to the given model and returns the raw
	// response text. Failures are returned as *InvokeError.
	Invoke(ctx context.Context, modelID, systemPrompt, userPrompt string, timeout time.Duration) (string, error)
}

// Package gemini implements the generation.Invoker contract using Google's
// Gemini API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dwalbeck/job-tracker/internal/config"
	"github.com/dwalbeck/job-tracker/internal/generation"
	"google.golang.org/genai"
)

// ErrInvalidConfig indicates the invoker was constructed with unusable
// configuration.
var ErrInvalidConfig = errors.New("invalid gemini configuration")

// Invoker issues single, bounded-timeout requests to the Gemini API. It
// performs no retries: a failed call surfaces immediately so the background
// worker that owns it can mark its task record failed instead of silently
// blocking the poller through repeated multi-minute attempts.
type Invoker struct {
	logger *slog.Logger
	client *genai.Client
}

// Ensure Invoker satisfies the generation contract.
var _ generation.Invoker = (*Invoker)(nil)

// NewInvoker creates a Gemini-backed Invoker from LLM configuration.
func NewInvoker(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Invoker, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}
	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create gemini client: %v", ErrInvalidConfig, err)
	}

	return &Invoker{
		logger: logger,
		client: client,
	}, nil
}

// Invoke implements generation.Invoker. It sends one request to the given
// model with the deadline applied and returns the raw response text.
func (i *Invoker) Invoke(
	ctx context.Context,
	modelID, systemPrompt, userPrompt string,
	timeout time.Duration,
) (string, error) {
	if timeout <= 0 {
		return "", generation.ErrInvalidTimeout
	}
	if userPrompt == "" {
		return "", generation.ErrEmptyPrompt
	}

	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	log := i.logger.With("model", modelID, "timeout", timeout.String())
	log.InfoContext(ctx, "invoking model")
	start := time.Now()

	cfg := &genai.GenerateContentConfig{}
	if systemPrompt != "" {
		cfg.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	resp, err := i.client.Models.GenerateContent(callCtx, modelID, genai.Text(userPrompt), cfg)
	if err != nil {
		return "", i.classify(ctx, callCtx, err, log)
	}

	if len(resp.Candidates) == 0 {
		return "", generation.NewInvokeError(generation.InvokeUpstream, "no candidates in response", nil)
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", generation.NewInvokeError(generation.InvokeUpstream, "content blocked by safety filters", nil)
	}

	text := resp.Text()
	if text == "" {
		return "", generation.NewInvokeError(generation.InvokeUpstream, "empty response text", nil)
	}

	log.InfoContext(ctx, "model invocation succeeded",
		"duration", time.Since(start).String(),
		"response_length", len(text))
	return text, nil
}

// classify maps a transport-level failure to the InvokeError taxonomy.
func (i *Invoker) classify(ctx, callCtx context.Context, err error, log *slog.Logger) error {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || callCtx.Err() == context.DeadlineExceeded:
		log.WarnContext(ctx, "model invocation timed out", "error", err)
		return generation.NewInvokeError(generation.InvokeTimeout, "call deadline elapsed", err)
	default:
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			log.ErrorContext(ctx, "model invocation rejected upstream",
				"status_code", apiErr.Code,
				"error", err)
			return generation.NewInvokeError(
				generation.InvokeUpstream,
				fmt.Sprintf("service returned status %d", apiErr.Code),
				err,
			)
		}

		log.ErrorContext(ctx, "model invocation transport failure", "error", err)
		return generation.NewInvokeError(generation.InvokeTransport, "request failed", err)
	}
}

package generate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"time"
)

// Backend is a single JSON-mode completion call against a text-generation
// service. Implementations hold connection state only, never per-call state.
type Backend interface {
	CompleteJSON(ctx context.Context, system, user string) (string, error)
}

// GenerationError reports a structured generation call that exhausted its
// retry budget. Err holds the failure of the final attempt.
type GenerationError struct {
	Attempts int
	Err      error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("generation failed after %d attempts: %v", e.Attempts, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

type RetryConfig struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  3,
		InitialDelay: 2 * time.Second,
		MaxDelay:     10 * time.Second,
		Multiplier:   2.0,
	}
}

type Client struct {
	backend Backend
	retry   RetryConfig
	sleep   func(time.Duration)
}

func NewClient(backend Backend, retry RetryConfig) *Client {
	if retry.MaxAttempts == 0 {
		retry.MaxAttempts = 3
	}
	if retry.InitialDelay == 0 {
		retry.InitialDelay = 2 * time.Second
	}
	if retry.MaxDelay == 0 {
		retry.MaxDelay = 10 * time.Second
	}
	if retry.Multiplier == 0 {
		retry.Multiplier = 2.0
	}

	return &Client{
		backend: backend,
		retry:   retry,
		sleep:   time.Sleep,
	}
}

// Validator lets target types reject responses whose shape is wrong even
// though they decoded as JSON. A validation failure consumes a retry attempt
// like any other parse failure.
type Validator interface {
	Validate() error
}

// Object issues one structured generation call: complete, decode into T,
// validate. Every failure kind is retried until the attempt budget runs out.
func Object[T any](ctx context.Context, c *Client, system, user string) (T, error) {
	var zero T
	var lastErr error
	delay := c.retry.InitialDelay

	for attempt := 1; attempt <= c.retry.MaxAttempts; attempt++ {
		if attempt > 1 {
			slog.Warn("Generation failed, retrying", "attempt", attempt, "error", lastErr)
			c.sleep(applyJitter(delay))
			delay = min(time.Duration(float64(delay)*c.retry.Multiplier), c.retry.MaxDelay)
		}

		if err := ctx.Err(); err != nil {
			return zero, &GenerationError{Attempts: attempt, Err: err}
		}

		value, err := objectOnce[T](ctx, c, system, user)
		if err != nil {
			lastErr = err
			continue
		}
		return value, nil
	}

	return zero, &GenerationError{Attempts: c.retry.MaxAttempts, Err: lastErr}
}

func objectOnce[T any](ctx context.Context, c *Client, system, user string) (T, error) {
	var value T

	content, err := c.backend.CompleteJSON(ctx, system, user)
	if err != nil {
		return value, fmt.Errorf("complete: %w", err)
	}

	if err := json.Unmarshal([]byte(content), &value); err != nil {
		return value, fmt.Errorf("parse response: %w", err)
	}

	if v, ok := any(&value).(Validator); ok {
		if err := v.Validate(); err != nil {
			return value, fmt.Errorf("validate response: %w", err)
		}
	}

	return value, nil
}

func applyJitter(delay time.Duration) time.Duration {
	jitterFactor := 0.9 + rand.Float64()*0.2
	return time.Duration(float64(delay) * jitterFactor)
}

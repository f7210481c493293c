package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrRateLimit indicates the provider returned a rate limit error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrRequestRejected indicates the provider answered with a 4xx status other
// than 429, typically a bad credential, unknown model or malformed request.
type ErrRequestRejected struct {
	StatusCode int
	Err        error
}

func (e *ErrRequestRejected) Error() string {
	return fmt.Sprintf("LLM request rejected (HTTP %d): %v", e.StatusCode, e.Err)
}

func (e *ErrRequestRejected) Unwrap() error { return e.Err }

// ErrProviderUnavailable indicates the provider is down or unreachable.
type ErrProviderUnavailable struct {
	StatusCode int // 0 when no HTTP response was received
	Err        error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// IsTransport reports whether err came from the transport layer of a
// provider call: any of the error types above or a context error.
func IsTransport(err error) bool {
	var (
		rl       *ErrRateLimit
		rejected *ErrRequestRejected
		unavail  *ErrProviderUnavailable
	)
	return errors.As(err, &rl) || errors.As(err, &rejected) || errors.As(err, &unavail) ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// classifyStatus maps an HTTP status from a provider SDK error to one of the
// transport error types.
func classifyStatus(code int, err error) error {
	switch {
	case code == http.StatusTooManyRequests:
		return &ErrRateLimit{Err: err}
	case code >= 400 && code < 500:
		return &ErrRequestRejected{StatusCode: code, Err: err}
	default:
		return &ErrProviderUnavailable{StatusCode: code, Err: err}
	}
}

package questiongen

import (
	"encoding/json"
	"errors"
	"fmt"
)

// TransportError means the call to the LLM endpoint failed: a network
// error, a non-2xx status or a cancelled context.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("Error contacting LLM API: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// Reasons reported by UpstreamShapeError.
const (
	ShapeNoCandidates = "no candidates"
	ShapeEmptyText    = "empty text"
)

// UpstreamShapeError means the endpoint answered but the reply held no
// candidate, or its first candidate had no text.
type UpstreamShapeError struct {
	Reason string
	Raw    json.RawMessage
}

func (e *UpstreamShapeError) Error() string {
	if e.Reason == ShapeEmptyText {
		return fmt.Sprintf("No text returned by LLM API: %s", e.Raw)
	}
	return fmt.Sprintf("Invalid response from LLM API: %s", e.Raw)
}

// ExtractionError means no usable JSON object was found in the reply text.
// Err is set when an object was found but failed validation.
type ExtractionError struct {
	Text string
	Err  error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Failed to parse JSON from AI response: %v", e.Err)
	}
	return fmt.Sprintf("Failed to parse JSON from AI response: %s", e.Text)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// UnexpectedError wraps any other failure, including recovered panics.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string { return e.Err.Error() }

func (e *UnexpectedError) Unwrap() error { return e.Err }

// ErrorKind returns a short label for err's category, for logs and metrics.
func ErrorKind(err error) string {
	var (
		transport  *TransportError
		shape      *UpstreamShapeError
		extraction *ExtractionError
		unexpected *UnexpectedError
	)
	switch {
	case err == nil:
		return ""
	case errors.As(err, &transport):
		return "transport"
	case errors.As(err, &shape):
		return "upstream_shape"
	case errors.As(err, &extraction):
		return "extraction"
	case errors.As(err, &unexpected):
		return "unexpected"
	default:
		return "unknown"
	}
}

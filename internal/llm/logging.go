package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/synapt/synapt/internal/logging"
	"github.com/synapt/synapt/internal/store"
)

// recordTimeout bounds a single insert into the request log.
const recordTimeout = 5 * time.Second

// LoggingProvider is a decorator that logs every LLM request and, when an
// event repo is configured, records it in the request log.
type LoggingProvider struct {
	inner     Provider
	name      string
	eventRepo store.EventRepo
}

// WithLogging wraps a Provider with request logging. name is the provider
// name recorded with each event; repo may be nil.
func WithLogging(p Provider, name string, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, name: name, eventRepo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	info := CallInfoFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latencyMs := time.Since(start).Milliseconds()

	data := store.LLMRequestEventData{
		Provider:    l.name,
		Model:       l.inner.ModelID(),
		Purpose:     info.Purpose,
		LatencyMs:   latencyMs,
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = string(resp.Raw)
	}

	if err != nil {
		data.ErrorMessage = err.Error()
	}

	log := logging.WithContext(ctx).WithFields(logrus.Fields{
		"model":         data.Model,
		"purpose":       info.Purpose,
		"section":       info.Section,
		"latency_ms":    latencyMs,
		"input_tokens":  data.InputTokens,
		"output_tokens": data.OutputTokens,
	})
	if err != nil {
		log.WithError(err).Warn("LLM request failed")
	} else {
		log.WithField("candidates", len(resp.Candidates)).Info("LLM request completed")
	}

	// Record the event but don't fail the request if recording fails. The
	// caller's context may already be done after a timeout or disconnect.
	if l.eventRepo != nil {
		recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
		logErr := l.eventRepo.AppendLLMRequest(recordCtx, data)
		cancel()
		if logErr != nil {
			logging.WithContext(ctx).WithError(logErr).Warn("failed to record LLM request event")
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.JSONOutput {
		b.WriteString("[response format: json]\n")
	}

	return b.String()
}

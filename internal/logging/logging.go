// Package logging configures the process-wide logrus logger and hands out
// request-scoped entries.
package logging

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

// Setup configures the standard logrus logger. level is one of debug, info,
// warn, error; format is text or json.
func Setup(level, format string, out io.Writer) error {
	lvl, err := logrus.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}

	var formatter logrus.Formatter
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json":
		formatter = &logrus.JSONFormatter{}
	case "text", "":
		formatter = &logrus.TextFormatter{FullTimestamp: true}
	default:
		return fmt.Errorf("unknown log format %q (want text or json)", format)
	}

	logrus.SetLevel(lvl)
	logrus.SetFormatter(formatter)
	if out != nil {
		logrus.SetOutput(out)
	}
	return nil
}

// WithContext returns a log entry tagged with the request id chi stored in
// ctx, if any.
func WithContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(logrus.StandardLogger())
	if ctx == nil {
		return entry
	}
	if id := middleware.GetReqID(ctx); id != "" {
		entry = entry.WithField("request_id", id)
	}
	return entry.WithContext(ctx)
}

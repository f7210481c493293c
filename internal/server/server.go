// Package server exposes question generation over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/synapt/synapt/internal/questiongen"
)

// Generator produces a question envelope for a request.
// *questiongen.Service satisfies it.
type Generator interface {
	Generate(ctx context.Context, req questiongen.Request) (*questiongen.Envelope, error)
	ModelID() string
}

// Options configures the HTTP surface.
type Options struct {
	// AllowedOrigins lists the origins allowed by CORS. Empty or "*"
	// allows any origin.
	AllowedOrigins []string

	// MaxBodyBytes caps the request body size.
	MaxBodyBytes int64

	// WriteTimeout bounds a whole request, including the LLM call.
	WriteTimeout time.Duration

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// DefaultOptions returns Options suitable for local use.
func DefaultOptions() Options {
	return Options{
		AllowedOrigins:  []string{"*"},
		MaxBodyBytes:    1 << 20,
		WriteTimeout:    90 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// New builds the router: request ids, real IPs, panic recovery, request
// logging and CORS wrap every route.
func New(gen Generator, opts Options) http.Handler {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultOptions().MaxBodyBytes
	}
	h := &handler{gen: gen, maxBody: opts.MaxBodyBytes}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(corsHandler(opts.AllowedOrigins))

	r.Post("/generate_question", h.generateQuestion)
	r.Get("/healthz", h.health)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	return r
}

// Run serves h on addr until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, addr string, h http.Handler, opts Options) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}
	return Serve(ctx, ln, h, opts)
}

// Serve is Run on an existing listener.
func Serve(ctx context.Context, ln net.Listener, h http.Handler, opts Options) error {
	srv := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.WithField("addr", ln.Addr().String()).Info("starting server")
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	timeout := opts.ShutdownTimeout
	if timeout <= 0 {
		timeout = DefaultOptions().ShutdownTimeout
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	logrus.Info("shutting down server")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

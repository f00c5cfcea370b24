// Package server exposes the drawing pipeline over HTTP.
//
// # Routes
//
//	GET  /healthz             liveness and build version
//	GET  /v1/examples         catalogue, optionally ?group=venn
//	GET  /v1/examples/{name}  one catalogue entry
//	GET  /v1/strategies       registered decomposition strategies
//	POST /v1/draw             draw and render; body is a pipeline.Options
//	POST /v1/decompose        components and steps without drawing
//
// Errors are JSON objects {code, message, request_id}. Every response
// carries an X-Request-ID header, taken from the request when present.
package server

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/eulerdraw/pkg/errors"
	"github.com/matzehuels/eulerdraw/pkg/pipeline"
)

const (
	// MaxBodyBytes bounds request bodies.
	MaxBodyBytes = 64 << 10

	shutdownTimeout = 10 * time.Second
)

// Server serves the HTTP API.
type Server struct {
	runner   *pipeline.Runner
	defaults pipeline.Options
	logger   *log.Logger
}

// Option configures a [Server].
type Option func(*Server)

// WithLogger sets the logger for server errors.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithDefaults sets the options every request body is decoded over, so
// fields a client leaves out keep these values.
func WithDefaults(opts pipeline.Options) Option {
	return func(s *Server) { s.defaults = opts }
}

// New returns a server running the pipeline through runner.
func New(runner *pipeline.Runner, opts ...Option) *Server {
	s := &Server{
		runner: runner,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(middleware.Recoverer)

	s.route(r, http.MethodGet, "/healthz", s.handleHealth)
	s.route(r, http.MethodGet, "/v1/examples", s.handleExamples)
	s.route(r, http.MethodGet, "/v1/examples/{name}", s.handleExample)
	s.route(r, http.MethodGet, "/v1/strategies", s.handleStrategies)
	s.route(r, http.MethodPost, "/v1/draw", s.handleDraw)
	s.route(r, http.MethodPost, "/v1/decompose", s.handleDecompose)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, errorBody{Code: errors.ErrCodeNotFound, Message: "no such route", RequestID: RequestID(r.Context())})
	})
	return r
}

// ListenAndServe serves on addr until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Package server exposes the planning pipeline over HTTP.
//
// Routes:
//
//	GET  /healthz   liveness probe
//	POST /v1/plan   raw image body, returns one artifact
//
// /v1/plan accepts the query parameters background (hex color, default
// #ffffff), format (json, mcfunction or png, default json), scale and
// caption (png only). Every response carries the run ID in the X-Run-ID
// header; failures are reported as JSON {"code": ..., "error": ...}.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/cannon/pkg/errors"
	"github.com/matzehuels/cannon/pkg/observability"
	"github.com/matzehuels/cannon/pkg/pipeline"
)

// HeaderRunID carries the pipeline run ID on every /v1/plan response.
const HeaderRunID = "X-Run-ID"

// DefaultMaxUpload bounds request bodies when Options.MaxUpload is zero.
const DefaultMaxUpload = 8 << 20

// Options configures a Server.
type Options struct {
	// Defaults holds pipeline options applied before query parameters.
	Defaults pipeline.Options

	// MaxUpload is the largest accepted request body in bytes.
	MaxUpload int64

	Logger *log.Logger
}

// Server serves the HTTP API.
type Server struct {
	runner    *pipeline.Runner
	defaults  pipeline.Options
	maxUpload int64
	logger    *log.Logger
	router    chi.Router
}

// New builds a server around runner.
func New(runner *pipeline.Runner, opts Options) *Server {
	s := &Server{
		runner:    runner,
		defaults:  opts.Defaults,
		maxUpload: opts.MaxUpload,
		logger:    opts.Logger,
	}
	if s.maxUpload <= 0 {
		s.maxUpload = DefaultMaxUpload
	}
	if s.logger == nil {
		s.logger = log.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)
	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/plan", s.handlePlan)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	opts, format, err := s.planOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	body := http.MaxBytesReader(w, r.Body, s.maxUpload)
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(body); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body"))
		return
	}

	res, err := s.runner.Execute(r.Context(), &buf, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set(HeaderRunID, res.RunID)
	w.Header().Set("Content-Type", contentType(format))
	w.Header().Set("X-Plan-Cache", strconv.FormatBool(res.CacheInfo.PlanHit))
	_, _ = w.Write(res.Artifacts[format])
}

// planOptions merges query parameters over the server defaults. Exactly one
// format is rendered per request.
func (s *Server) planOptions(r *http.Request) (pipeline.Options, string, error) {
	q := r.URL.Query()
	opts := s.defaults
	opts.Logger = s.logger
	opts.OnScored = nil

	if bg := q.Get("background"); bg != "" {
		opts.Background = bg
	}
	format := q.Get("format")
	if format == "" {
		format = pipeline.FormatJSON
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		return opts, "", err
	}
	opts.Formats = []string{format}

	if v := q.Get("scale"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "scale")
		}
		opts.Scale = n
	}
	if v := q.Get("caption"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return opts, "", errors.Wrap(errors.ErrCodeInvalidInput, err, "caption")
		}
		opts.Caption = b
	}
	return opts, format, opts.ValidateAndSetDefaults()
}

func contentType(format string) string {
	switch format {
	case pipeline.FormatPNG:
		return "image/png"
	case pipeline.FormatJSON:
		return "application/json"
	default:
		return "text/plain; charset=utf-8"
	}
}

// =============================================================================
// Errors
// =============================================================================

type errorBody struct {
	Code  errors.Code `json:"code,omitempty"`
	Error string      `json:"error"`
}

// StatusOf maps an error to an HTTP status code.
func StatusOf(err error) int {
	switch {
	case errors.As(err, new(*http.MaxBytesError)):
		return http.StatusRequestEntityTooLarge
	case errors.IsInput(err):
		return http.StatusBadRequest
	case errors.Is(err, errors.ErrCodeNotFound), errors.Is(err, errors.ErrCodeFileNotFound):
		return http.StatusNotFound
	case errors.Is(err, errors.ErrCodeUnsupported):
		return http.StatusNotImplemented
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := StatusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	} else {
		s.logger.Debug("request rejected", "status", status, "error", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorBody{
		Code:  errors.GetCode(err),
		Error: errors.UserMessage(err),
	})
}

// =============================================================================
// Middleware
// =============================================================================

// instrument reports every request to the HTTP observability hooks.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, time.Since(start))
	})
}

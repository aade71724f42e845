// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server exposes the normalization engine over HTTP.
//
//	GET  /health   liveness probe
//	POST /extract  {"html": "...", "type": "flight"} -> result envelope
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/pdiddy/reservation-engine/internal/engine"
	"github.com/pdiddy/reservation-engine/internal/history"
	"github.com/pdiddy/reservation-engine/pkg/logger"
	"github.com/pdiddy/reservation-engine/pkg/types"
)

// ServiceName is reported by the health endpoint.
const ServiceName = "reservation-engine"

const (
	defaultAddr         = ":8001"
	defaultMaxBodyBytes = 5 << 20
	defaultReadTimeout  = 30 * time.Second
	defaultWriteTimeout = 30 * time.Second
	shutdownTimeout     = 10 * time.Second
)

// Normalizer turns candidates into a result. *engine.Engine implements it.
type Normalizer interface {
	Normalize(c engine.Candidates, rt types.ReservationType) types.Result
}

// Recorder persists extraction attempts. *history.Store implements it.
type Recorder interface {
	Record(ctx context.Context, a history.Attempt) error
}

// Option configures a Server.
type Option func(*Server)

// WithRecorder logs every extraction to r.
func WithRecorder(r Recorder) Option {
	return func(s *Server) { s.recorder = r }
}

// Server is the HTTP front end of the engine.
type Server struct {
	normalizer Normalizer
	recorder   Recorder
	cfg        types.ServerConfig
	middleware *Middleware
	logger     *logger.Logger
}

// New creates a Server. Zero config values fall back to defaults.
func New(n Normalizer, cfg types.ServerConfig, log *logger.Logger, opts ...Option) *Server {
	if log == nil {
		log = logger.Nop()
	}
	if cfg.Addr == "" {
		cfg.Addr = defaultAddr
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if cfg.ReadTimeout <= 0 {
		cfg.ReadTimeout = defaultReadTimeout
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}

	s := &Server{
		normalizer: n,
		cfg:        cfg,
		middleware: NewMiddleware(log),
		logger:     log.Named("server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Routes returns the HTTP handler.
func (s *Server) Routes() http.Handler {
	router := chi.NewRouter()

	router.Use(s.middleware.RequestID)
	router.Use(s.middleware.Logger)
	router.Use(s.middleware.Recoverer)
	router.Use(s.middleware.CORS(s.cfg.CORSAllowedOrigins))

	router.Get("/health", s.handleHealth)
	router.Post("/extract", s.handleExtract)

	return router
}

// ListenAndServe serves until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.cfg.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:      s.Routes(),
		ReadTimeout:  s.cfg.ReadTimeout,
		WriteTimeout: s.cfg.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", logger.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serving HTTP: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

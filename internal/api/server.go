// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api assembles the Voyara HTTP surface: the middleware chain, the
health probes and the guide discovery routes under /api/v1/guides.

Routes:

  - GET /health, GET /ready: liveness and readiness probes.
  - /api/v1/guides: search, history and admin catalogue edits.
  - Anything else: a JSON 404 or 405 in the standard error envelope.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/voyara/internal/core/guide"
	"github.com/taibuivan/voyara/internal/platform/apperr"
	"github.com/taibuivan/voyara/internal/platform/config"
	"github.com/taibuivan/voyara/internal/platform/constants"
	"github.com/taibuivan/voyara/internal/platform/middleware"
	"github.com/taibuivan/voyara/internal/platform/respond"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server] it is served by.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups the handler sets built in cmd/api.
type Handlers struct {
	// Liveness is the /health handler. It returns 200 while the process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler. It returns 200 when every configured backend answers.
	Readiness http.HandlerFunc

	// Guide handles guide discovery, search history, and catalogue edits.
	Guide *guide.Handler
}

// # Server Initialization

// NewServer builds the router and the [http.Server].
//
// context bounds background work started by middleware (the rate limiter sweeper).
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context, cfg.RateLimitRPS, cfg.RateLimitBurst))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	r.NotFound(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, apperr.NotFound("Route"))
	})
	r.MethodNotAllowed(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, &apperr.AppError{
			Code:       "METHOD_NOT_ALLOWED",
			Message:    request.Method + " is not supported on " + request.URL.Path,
			HTTPStatus: http.StatusMethodNotAllowed,
		})
	})

	// # Probes
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Guide Discovery
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/guides", h.Guide.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Handler returns the fully wired router, for use with httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}

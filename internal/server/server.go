package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/me/cpusim/internal/batch"
	"github.com/me/cpusim/internal/config"
	"github.com/me/cpusim/internal/scheduler"
	"github.com/me/cpusim/pkg/model"
)

// Version is reported by the health endpoint.
const Version = "0.3.0"

// Server is the cpusim REST API server.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.Config
	startTime time.Time
	scheduler scheduler.Scheduler
	runner    *batch.Runner
}

// New creates a new Server with all routes registered.
func New(cfg config.Config, sched scheduler.Scheduler, logger *slog.Logger) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		scheduler: sched,
		runner:    batch.NewRunner(sched, cfg.Workers, logger),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, RequestIDFromContext(r.Context()), http.StatusNotFound, &model.APIError{
			Code:    model.ErrNotFound,
			Message: "no route for " + r.Method + " " + r.URL.Path,
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/", s.handleDiscovery)
		r.Get("/health", s.handleHealth)
		r.Get("/policies", s.handleListPolicies)
		r.Post("/schedules", s.handleCreateSchedule)
		r.Post("/batches", s.handleRunBatch)
	})
}

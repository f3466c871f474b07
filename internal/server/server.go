// Package server exposes assignments, play sessions and the stateless
// tutor over HTTP.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/abhisek/homeworkpal/internal/assignment"
	"github.com/abhisek/homeworkpal/internal/play"
	"github.com/abhisek/homeworkpal/internal/questgen"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Deps are the services behind the API.
type Deps struct {
	Assignments *assignment.Service
	Sessions    *play.Registry
	Tutor       play.Responder

	// Designer is optional; without it assignments need explicit content.
	Designer *questgen.Designer

	Logger *zap.Logger
}

// Options configure the listener.
type Options struct {
	Addr        string
	CORSOrigins []string

	// MaxUploadBytes caps voice uploads. Default 10 MiB.
	MaxUploadBytes int64
}

// Server is the HTTP API.
type Server struct {
	deps   Deps
	opts   Options
	logger *zap.Logger
	router chi.Router
}

// New creates a Server and its routes.
func New(deps Deps, opts Options) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = 10 << 20
	}
	s := &Server{deps: deps, opts: opts, logger: deps.Logger}
	s.router = s.routes()
	return s
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	r.Use(s.observe)

	origins := s.opts.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/assignments", func(r chi.Router) {
			r.Get("/", s.listAssignments)
			r.Post("/", s.createAssignment)
			r.Get("/{id}", s.getAssignment)
			r.Delete("/{id}", s.deleteAssignment)
			r.Put("/{id}/status", s.setStatus)
			r.Post("/{id}/sessions", s.startSession)
		})
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", s.getSession)
			r.Post("/turns", s.submitTurn)
			r.Post("/voice", s.submitVoice)
		})
		r.Post("/tutor", s.tutorTurn)
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", zap.String("addr", s.opts.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.logger.Info("http server stopped")
	return nil
}

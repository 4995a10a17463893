// Package api exposes the diagram store over HTTP.
//
// Routes:
//
//	GET    /health                    liveness probe
//	GET    /                          service info
//	GET    /templates                 registered shape templates
//	GET    /diagrams                  list diagrams
//	POST   /diagrams                  create a diagram
//	GET    /diagrams/{id}             get a diagram
//	PUT    /diagrams/{id}             replace a diagram
//	DELETE /diagrams/{id}             delete a diagram
//	GET    /diagrams/{id}/render      render as svg (default) or json (?format=)
//	POST   /diagrams/{id}/nodes       add or replace a node
//	POST   /diagrams/{id}/edges       add or replace an edge
//
// Request and response bodies use the structural diagram form of
// [diagram.Spec]. Errors are returned as {"code": ..., "error": ...} with a
// status derived from the error code.
//
// DELETE answers {"id": ..., "removed": true} for an existing diagram. An
// unknown id, including a repeated delete, is 404 NOT_FOUND rather than
// {"removed": false}; Store.Delete reports the same case as false.
//
// [diagram.Spec]: github.com/matzehuels/strategos/pkg/diagram.Spec
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/strategos/pkg/config"
	"github.com/matzehuels/strategos/pkg/shape"
	"github.com/matzehuels/strategos/pkg/store"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Server serves the HTTP API.
type Server struct {
	store    *store.Store
	registry *shape.Registry
	cors     config.CORSConfig
	logger   *log.Logger
	started  time.Time
}

// Option configures a Server.
type Option func(*Server)

// WithRegistry sets the registry listed by GET /templates.
func WithRegistry(r *shape.Registry) Option { return func(s *Server) { s.registry = r } }

// WithCORS sets the cross-origin policy.
func WithCORS(c config.CORSConfig) Option { return func(s *Server) { s.cors = c } }

// WithLogger sets the request logger.
func WithLogger(l *log.Logger) Option { return func(s *Server) { s.logger = l } }

// New creates a server backed by st.
func New(st *store.Store, opts ...Option) *Server {
	s := &Server{
		store:   st,
		cors:    config.Default().CORS,
		started: time.Now(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.registry == nil {
		s.registry = shape.Default()
	}
	if s.logger == nil {
		s.logger = log.Default()
	}
	return s
}

// Handler returns the routed handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(cors(s.cors))

	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleInfo)
	r.Get("/templates", s.handleTemplates)

	r.Route("/diagrams", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handleUpdate)
			r.Delete("/", s.handleDelete)
			r.Get("/render", s.handleRender)
			r.Post("/nodes", s.handleAddNode)
			r.Post("/edges", s.handleAddEdge)
		})
	})
	return r
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context, cfg config.ServerConfig) error {
	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

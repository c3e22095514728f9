package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/davidbz/howl/internal/config"
	"github.com/davidbz/howl/internal/httpserver/middleware"
	"github.com/davidbz/howl/internal/observability"
)

// Server represents the HTTP server.
type Server struct {
	config      *config.ServerConfig
	handler     *Handler
	documents   *DocumentHandler
	middlewares middleware.Middleware

	mu  sync.Mutex
	srv *http.Server
}

// NewServer creates a new HTTP server.
func NewServer(
	cfg *config.ServerConfig,
	handler *Handler,
	documents *DocumentHandler,
	middlewares middleware.Middleware,
) *Server {
	if middlewares == nil {
		middlewares = middleware.Chain()
	}

	return &Server{
		config:      cfg,
		handler:     handler,
		documents:   documents,
		middlewares: middlewares,
		mu:          sync.Mutex{},
		srv:         nil,
	}
}

// Routes builds the routed handler with the middleware chain applied.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Not Found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method Not Allowed")
	})

	r.Get("/", s.handler.HandleRoot)
	r.Get("/health", s.handler.HandleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/chat", func(r chi.Router) {
		r.Post("/", s.handler.HandleChat)
		r.Get("/models", s.handler.HandleModels)
	})

	r.Route("/api/documents", func(r chi.Router) {
		r.Get("/", s.documents.HandleList)
		r.Post("/upload", s.documents.HandleUpload)
		r.Get("/{documentID}", s.documents.HandleGet)
		r.Delete("/{documentID}", s.documents.HandleDelete)
		r.Post("/{documentID}/summarize", s.documents.HandleSummarize)
		r.Post("/{documentID}/ask", s.documents.HandleAsk)
	})

	return s.middlewares(r)
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.config.Port),
		Handler:           s.Routes(),
		ReadHeaderTimeout: time.Duration(s.config.ReadTimeout) * time.Second,
		ReadTimeout:       time.Duration(s.config.ReadTimeout) * time.Second,
		WriteTimeout:      time.Duration(s.config.WriteTimeout) * time.Second,
	}

	s.mu.Lock()
	s.srv = srv
	s.mu.Unlock()

	ctx := context.Background()
	observability.FromContext(ctx).Info("starting HTTP server", observability.Int("port", s.config.Port))

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	observability.FromContext(ctx).Info("shutting down HTTP server")

	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()

	if srv == nil {
		return nil
	}

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}

	return nil
}

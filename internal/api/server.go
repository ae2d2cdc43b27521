// Package api provides the HTTP API server and handlers for the TrackStash application.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/trackstash/trackstash-server/internal/auth"
	"github.com/trackstash/trackstash-server/internal/http/response"
	"github.com/trackstash/trackstash-server/internal/ratelimit"
	"github.com/trackstash/trackstash-server/internal/service"
	"github.com/trackstash/trackstash-server/internal/validation"
)

// Options controls optional server behavior.
type Options struct {
	// AllowedOrigins configures CORS; empty means same-origin only.
	AllowedOrigins []string
	// RateLimiter, when non-nil, throttles requests per client IP.
	RateLimiter *ratelimit.KeyedRateLimiter
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	resourceService *service.ResourceService
	verifier        auth.Verifier
	validator       *validation.Validator
	router          *chi.Mux
	logger          *slog.Logger
	opts            Options
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(resourceService *service.ResourceService, verifier auth.Verifier, logger *slog.Logger, opts Options) *Server {
	s := &Server{
		resourceService: resourceService,
		verifier:        verifier,
		validator:       validation.New(),
		router:          chi.NewRouter(),
		logger:          logger,
		opts:            opts,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))

	if len(s.opts.AllowedOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.opts.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}

	if s.opts.RateLimiter != nil {
		s.router.Use(RateLimitMiddleware(s.opts.RateLimiter, s.logger))
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check (public).
	s.router.Get("/health", s.handleHealthCheck)

	// Resources (require auth).
	s.router.Route("/resources", func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Post("/", s.handleCreateResource)
		r.Get("/", s.handleListResources)
		r.Get("/{id}", s.handleGetResource)
		r.Put("/{id}", s.handleUpdateResource)
		r.Delete("/{id}", s.handleDeleteResource)
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status":    "UP",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}, s.logger)
}

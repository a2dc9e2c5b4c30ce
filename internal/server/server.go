package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"tubepost/internal/config"
	"tubepost/internal/core"
	"tubepost/internal/logger"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// BlogGenerator runs the full URL-to-persisted-blog flow and returns the
// new blog's identifier.
type BlogGenerator interface {
	Generate(ctx context.Context, youtubeURL string, opts core.GenerationOptions) (string, error)
}

// BlogReader serves persisted blogs and store health.
type BlogReader interface {
	GetBlog(ctx context.Context, id string) (*core.Blog, error)
	ListRecent(ctx context.Context, limit int) ([]core.Blog, error)
	Counts(ctx context.Context) (blogs, sections int, err error)
	Ping(ctx context.Context) error
}

// Server represents the HTTP server
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	generator  BlogGenerator
	store      BlogReader
	config     config.Server
	log        *slog.Logger
}

// New creates a new HTTP server instance
func New(generator BlogGenerator, store BlogReader, cfg config.Server) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		generator: generator,
		store:     store,
		config:    cfg,
		log:       logger.Get(),
	}

	s.setupMiddleware()
	s.setupRoutes()

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return s
}

// setupMiddleware configures middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	// Generation runs acquisition plus one model call, so the request
	// timeout has to cover the slowest path.
	s.router.Use(middleware.Timeout(120 * time.Second))

	if s.config.CORS.Enabled {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.config.CORS.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
			AllowCredentials: false,
			MaxAge:           300,
		}))
	}
}

// setupRoutes configures routes for the server
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Post("/generate-blog", s.handleGenerateBlog)
		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", s.handleListBlogs)
			r.Get("/{id}", s.handleGetBlog)
		})
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info("Starting HTTP server",
		"addr", s.httpServer.Addr,
		"read_timeout", s.config.ReadTimeout,
		"write_timeout", s.config.WriteTimeout,
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed to start: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("Shutting down HTTP server gracefully...")

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.log.Info("HTTP server stopped")
	return nil
}

// Router returns the chi router instance (useful for testing)
func (s *Server) Router() *chi.Mux {
	return s.router
}

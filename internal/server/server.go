// Package server exposes the string analysis service over HTTP with gin.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/roach88/stringvault/internal/config"
	"github.com/roach88/stringvault/internal/service"
)

// Server represents the HTTP server.
type Server struct {
	config  config.ServerConfig
	svc     *service.Service
	logger  *slog.Logger
	router  *gin.Engine
	limiter *RateLimiter
	server  *http.Server
}

// New creates a new server instance.
func New(cfg config.ServerConfig, svc *service.Service, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		config: cfg,
		svc:    svc,
		logger: logger,
	}
}

// Setup sets up the server routes and middleware.
func (s *Server) Setup() {
	if s.config.Mode != "" {
		gin.SetMode(s.config.Mode)
	}

	s.router = gin.New()
	// Values may contain encoded slashes; route on the raw path and unescape
	// the captured value.
	s.router.UseRawPath = true
	s.router.UnescapePathValues = true

	s.router.Use(requestIDMiddleware())
	s.router.Use(loggingMiddleware(s.logger))
	s.router.Use(recoveryMiddleware(s.logger))

	if s.config.RateLimitRPM > 0 {
		s.limiter = NewRateLimiter(s.config.RateLimitRPM, s.config.RateLimitBurst, s.logger)
		s.router.Use(rateLimitMiddleware(s.limiter))
	}

	s.setupRoutes()

	s.server = &http.Server{
		Addr:    s.config.Addr(),
		Handler: s.router,
	}
}

// setupRoutes sets up all the routes.
func (s *Server) setupRoutes() {
	h := &stringsHandler{svc: s.svc}

	s.router.GET("/health", healthCheck)

	strs := s.router.Group("/strings")
	{
		strs.POST("", h.Create)
		strs.GET("", h.List)
		strs.GET("/filter-by-natural-language", h.Query)
		strs.GET("/:value", h.Get)
		strs.DELETE("/:value", h.Delete)
	}
}

// Handler returns the configured router. Setup must be called first.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves until Stop is called. http.ErrServerClosed is not an error.
func (s *Server) Start() error {
	s.logger.Info("starting server", "addr", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop stops the server gracefully.
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("stopping server")
	if s.limiter != nil {
		s.limiter.Close()
	}
	return s.server.Shutdown(ctx)
}

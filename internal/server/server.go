// Package server implements the HTTP server for the review form.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/sevigo/code-reviewer/internal/config"
	"github.com/sevigo/code-reviewer/internal/core"
	"github.com/sevigo/code-reviewer/internal/server/handler"
)

// Server wraps an HTTP server with graceful shutdown capabilities.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates a new HTTP server serving the review form and API.
func NewServer(cfg *config.Config, reviewer core.Reviewer, logger *slog.Logger) (*Server, error) {
	reviewHandler, err := handler.NewReviewHandler(reviewer, cfg.AI.Language, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create review handler: %w", err)
	}

	// Model calls can be slow, so the write timeout follows the request timeout.
	writeTimeout := cfg.Server.RequestTimeout + 10*time.Second

	return &Server{
		server: &http.Server{
			Addr:         ":" + cfg.Server.Port,
			Handler:      NewRouter(cfg, reviewHandler, logger),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: writeTimeout,
			IdleTimeout:  120 * time.Second,
		},
		logger: logger,
	}, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server and blocks until shutdown or error.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", "address", s.server.Addr)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed to start: %w", err)
	}
	return nil
}

// Serve accepts connections on l until shutdown.
func (s *Server) Serve(l net.Listener) error {
	s.logger.Info("starting HTTP server", "address", l.Addr().String())

	if err := s.server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop gracefully shuts down the server with a 30-second timeout.
func (s *Server) Stop() error {
	s.logger.Info("shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

// Package app holds the long-running form server and its lifecycle.
package app

import (
	"log/slog"

	"github.com/sevigo/code-reviewer/internal/config"
	"github.com/sevigo/code-reviewer/internal/server"
)

// App holds the main application components.
type App struct {
	cfg    *config.Config
	server *server.Server
	logger *slog.Logger
}

// NewApp assembles the application from already constructed components.
func NewApp(cfg *config.Config, srv *server.Server, logger *slog.Logger) *App {
	logger.Info("code reviewer initialized",
		"provider", cfg.AI.LLMProvider,
		"model", cfg.AI.ModelName(),
		"language", cfg.AI.Language)
	return &App{
		cfg:    cfg,
		server: srv,
		logger: logger,
	}
}

// Start runs the HTTP server and blocks until it stops.
func (a *App) Start() error {
	a.logger.Info("starting code reviewer", "server_port", a.cfg.Server.Port)

	if err := a.server.Start(); err != nil {
		a.logger.Error("failed to start HTTP server", "error", err)
		return err
	}
	return nil
}

// Stop shuts down the application cleanly.
func (a *App) Stop() error {
	a.logger.Info("shutting down code reviewer")

	if err := a.server.Stop(); err != nil {
		a.logger.Error("error during HTTP server shutdown", "error", err)
		return err
	}

	a.logger.Info("code reviewer stopped successfully")
	return nil
}

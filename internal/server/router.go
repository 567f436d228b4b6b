package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/sevigo/code-reviewer/internal/config"
	"github.com/sevigo/code-reviewer/internal/server/handler"
)

// NewRouter creates and configures a new HTTP router with middleware, the
// review form and the API routes.
func NewRouter(cfg *config.Config, reviewHandler *handler.ReviewHandler, logger *slog.Logger) *chi.Mux {
	r := chi.NewRouter()

	timeout := cfg.Server.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{
		Logger:  slog.NewLogLogger(logger.Handler(), slog.LevelInfo),
		NoColor: true,
	}))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Get("/", reviewHandler.Index)
	r.Post("/review", reviewHandler.SubmitForm)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/review", reviewHandler.SubmitJSON)
	})

	return r
}

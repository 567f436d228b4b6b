// Command server runs the code review web form.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/sevigo/code-reviewer/internal/wire"
)

// lifecycle is the part of app.App that main drives.
type lifecycle interface {
	Start() error
	Stop() error
}

func main() {
	if err := run(); err != nil {
		slog.Error("code review form server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := wire.InitializeApp(ctx)
	if err != nil {
		return fmt.Errorf("build review app: %w", err)
	}
	defer cleanup()

	return serve(ctx, app)
}

// serve runs app until ctx is cancelled or the listener fails, then stops it.
func serve(ctx context.Context, app lifecycle) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- app.Start()
	}()

	var runErr error
	select {
	case <-ctx.Done():
		slog.Info("interrupt received, draining review requests")
	case runErr = <-serveErr:
		if runErr == nil {
			// Start returns nil only after a shutdown it did not initiate.
			return nil
		}
		slog.Error("review form listener stopped", "error", runErr)
	}

	if err := app.Stop(); err != nil {
		return errors.Join(runErr, fmt.Errorf("stop review app: %w", err))
	}
	return runErr
}

//go:build wireinject
// +build wireinject

package wire

import (
	"context"

	"github.com/google/wire"

	"github.com/sevigo/code-reviewer/internal/app"
	"github.com/sevigo/code-reviewer/internal/config"
	"github.com/sevigo/code-reviewer/internal/core"
)

// InitializeApp creates the form server application.
func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	wire.Build(AppSet)
	return &app.App{}, nil, nil
}

// InitializeReviewer creates a reviewer for the CLI and terminal front ends.
func InitializeReviewer(ctx context.Context, cfg *config.Config) (core.Reviewer, func(), error) {
	wire.Build(ReviewerSet)
	return nil, nil, nil
}

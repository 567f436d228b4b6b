// Code generated manually. DO NOT EDIT.

//go:generate go run -mod=mod github.com/google/wire/cmd/wire
//go:build !wireinject
// +build !wireinject

package wire

import (
	"context"
	"fmt"

	"github.com/sevigo/code-reviewer/internal/app"
	"github.com/sevigo/code-reviewer/internal/config"
	"github.com/sevigo/code-reviewer/internal/core"
	"github.com/sevigo/code-reviewer/internal/corrector"
	"github.com/sevigo/code-reviewer/internal/llm"
	"github.com/sevigo/code-reviewer/internal/review"
	"github.com/sevigo/code-reviewer/internal/server"
	"github.com/sevigo/code-reviewer/internal/syntax"
)

// InitializeApp creates the form server application.
func InitializeApp(ctx context.Context) (*app.App, func(), error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	// Logger
	loggerConfig := provideLoggerConfig(cfg)
	writer, cleanup, err := provideLogWriter(loggerConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log output: %w", err)
	}
	slogLogger := provideSlogLogger(loggerConfig, writer)

	// Generator LLM
	model, err := provideGeneratorLLM(ctx, cfg, slogLogger)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create generator LLM: %w", err)
	}
	generator := llm.NewGenerator(model, slogLogger)

	// Prompt Manager
	promptMgr, err := llm.NewPromptManager()
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create prompt manager: %w", err)
	}

	// Review pipeline
	validator := syntax.NewValidator()
	fixer := corrector.Default()
	reviewer := review.NewService(cfg, validator, fixer, promptMgr, generator, slogLogger)

	// Server
	srv, err := server.NewServer(cfg, reviewer, slogLogger)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create server: %w", err)
	}

	application := app.NewApp(cfg, srv, slogLogger)
	return application, cleanup, nil
}

// InitializeReviewer creates a reviewer for the CLI and terminal front ends.
func InitializeReviewer(ctx context.Context, cfg *config.Config) (core.Reviewer, func(), error) {
	loggerConfig := provideLoggerConfig(cfg)
	writer, cleanup, err := provideLogWriter(loggerConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log output: %w", err)
	}
	slogLogger := provideSlogLogger(loggerConfig, writer)

	model, err := provideGeneratorLLM(ctx, cfg, slogLogger)
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create generator LLM: %w", err)
	}
	generator := llm.NewGenerator(model, slogLogger)

	promptMgr, err := llm.NewPromptManager()
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to create prompt manager: %w", err)
	}

	validator := syntax.NewValidator()
	fixer := corrector.Default()
	reviewer := review.NewService(cfg, validator, fixer, promptMgr, generator, slogLogger)
	return reviewer, cleanup, nil
}

// Package review runs one submission through the review pipeline: syntax
// check, then either the corrector or the model round trip.
package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sevigo/code-reviewer/internal/config"
	"github.com/sevigo/code-reviewer/internal/core"
	"github.com/sevigo/code-reviewer/internal/llm"
)

// PromptRenderer renders a named prompt for a model provider.
type PromptRenderer interface {
	Render(key llm.PromptKey, provider llm.ModelProvider, data any) (string, error)
}

type service struct {
	validator core.SyntaxValidator
	corrector core.ErrorCorrector
	prompts   PromptRenderer
	generator core.ResponseGenerator
	provider  llm.ModelProvider
	language  string
	logger    *slog.Logger
}

// NewService creates the reviewer. The generator is shared across submissions.
func NewService(
	cfg *config.Config,
	validator core.SyntaxValidator,
	corrector core.ErrorCorrector,
	prompts PromptRenderer,
	generator core.ResponseGenerator,
	logger *slog.Logger,
) core.Reviewer {
	language := cfg.AI.Language
	if language == "" {
		language = validator.Language()
	}
	return &service{
		validator: validator,
		corrector: corrector,
		prompts:   prompts,
		generator: generator,
		provider:  llm.ModelProvider(cfg.AI.LLMProvider),
		language:  language,
		logger:    logger,
	}
}

// Review checks source and, when it parses, asks the model for a review.
//
// A syntax failure is a normal outcome: the returned submission carries the
// error and the corrected source, and the model is not called. Generation
// failures are returned as errors wrapping core.ErrGenerationFailed or
// core.ErrEmptyResponse.
func (s *service) Review(ctx context.Context, source string) (*core.Submission, error) {
	if strings.TrimSpace(source) == "" {
		return nil, core.ErrEmptySource
	}

	start := time.Now()
	sub := &core.Submission{
		ID:       uuid.NewString(),
		Language: s.validator.Language(),
		Source:   source,
	}
	logger := s.logger.With("submission_id", sub.ID)

	syntaxErr, err := s.validator.Validate(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("syntax check failed: %w", err)
	}
	if syntaxErr != nil {
		logger.Info("submission failed syntax check", "error", syntaxErr.Message, "line", syntaxErr.Line)
		sub.SyntaxError = syntaxErr
		sub.Correction = s.corrector.Correct(source, syntaxErr)
		sub.Duration = time.Since(start)
		return sub, nil
	}

	prompt, err := s.prompts.Render(llm.CodeReviewPrompt, s.provider, core.ReviewPromptData{
		Language: s.language,
		Code:     source,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render review prompt: %w", err)
	}

	logger.Info("requesting review from model", "provider", s.provider, "prompt_chars", len(prompt))
	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		if !errors.Is(err, core.ErrGenerationFailed) && !errors.Is(err, core.ErrEmptyResponse) {
			err = fmt.Errorf("%w: %w", core.ErrGenerationFailed, err)
		}
		logger.Warn("review generation failed", "error", err)
		return nil, err
	}

	parsed := llm.ParseReview(raw)
	sub.Review = &parsed
	sub.RawResponse = raw
	sub.Duration = time.Since(start)
	logger.Info("review completed", "duration", sub.Duration)
	return sub, nil
}

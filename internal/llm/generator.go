// Package llm provides the pieces of the review pipeline that talk to, or
// about, the language model: prompt rendering, the model client adapter and
// the reply parser.
package llm

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sevigo/goframe/llms"

	"github.com/sevigo/code-reviewer/internal/core"
)

// Generator adapts a goframe model to core.ResponseGenerator.
type Generator struct {
	call   func(ctx context.Context, prompt string) (string, error)
	logger *slog.Logger
}

var _ core.ResponseGenerator = (*Generator)(nil)

// NewGenerator wraps model. The model is created once at startup and shared
// by all submissions.
func NewGenerator(model llms.Model, logger *slog.Logger) *Generator {
	return &Generator{
		call: func(ctx context.Context, prompt string) (string, error) {
			return model.Call(ctx, prompt)
		},
		logger: logger,
	}
}

// Generate sends prompt to the model. A client error is wrapped in
// core.ErrGenerationFailed, a blank reply yields core.ErrEmptyResponse.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	start := time.Now()
	resp, err := g.call(ctx, prompt)
	if err != nil {
		g.logger.Error("model call failed", "error", err, "elapsed", time.Since(start))
		return "", fmt.Errorf("%w: %w", core.ErrGenerationFailed, err)
	}

	if strings.TrimSpace(resp) == "" {
		g.logger.Warn("model returned an empty response", "elapsed", time.Since(start))
		return "", core.ErrEmptyResponse
	}

	g.logger.Debug("model call completed",
		"elapsed", time.Since(start),
		"prompt_chars", len(prompt),
		"response_chars", len(resp),
	)
	return resp, nil
}

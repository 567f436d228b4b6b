// Package wire assembles the application's object graph.
package wire

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/google/wire"
	"github.com/sevigo/goframe/llms"
	"github.com/sevigo/goframe/llms/gemini"
	"github.com/sevigo/goframe/llms/ollama"

	"github.com/sevigo/code-reviewer/internal/app"
	"github.com/sevigo/code-reviewer/internal/config"
	"github.com/sevigo/code-reviewer/internal/core"
	"github.com/sevigo/code-reviewer/internal/corrector"
	"github.com/sevigo/code-reviewer/internal/llm"
	"github.com/sevigo/code-reviewer/internal/logger"
	"github.com/sevigo/code-reviewer/internal/review"
	"github.com/sevigo/code-reviewer/internal/server"
	"github.com/sevigo/code-reviewer/internal/syntax"
)

// ReviewerSet builds a core.Reviewer from a loaded configuration.
var ReviewerSet = wire.NewSet(
	provideLoggerConfig,
	provideLogWriter,
	provideSlogLogger,
	provideGeneratorLLM,
	llm.NewGenerator,
	wire.Bind(new(core.ResponseGenerator), new(*llm.Generator)),
	llm.NewPromptManager,
	wire.Bind(new(review.PromptRenderer), new(*llm.PromptManager)),
	syntax.NewValidator,
	wire.Bind(new(core.SyntaxValidator), new(*syntax.Validator)),
	corrector.Default,
	wire.Bind(new(core.ErrorCorrector), new(*corrector.Corrector)),
	review.NewService,
)

// AppSet builds the form server on top of ReviewerSet.
var AppSet = wire.NewSet(
	config.LoadConfig,
	ReviewerSet,
	server.NewServer,
	app.NewApp,
)

func provideGeneratorLLM(ctx context.Context, cfg *config.Config, logger *slog.Logger) (llms.Model, error) {
	switch cfg.AI.LLMProvider {
	case "gemini":
		if cfg.AI.GeminiAPIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is not set in environment for gemini provider")
		}
		logger.Info("using Gemini LLM provider", "model", cfg.AI.GeminiModel)
		return gemini.New(ctx,
			gemini.WithModel(cfg.AI.GeminiModel),
			gemini.WithAPIKey(cfg.AI.GeminiAPIKey),
		)
	case "ollama":
		logger.Info("using Ollama LLM provider", "model", cfg.AI.GeneratorModel, "host", cfg.AI.OllamaHost)
		return ollama.New(
			ollama.WithServerURL(cfg.AI.OllamaHost),
			ollama.WithHTTPClient(newOllamaHTTPClient(cfg.AI.RequestTimeout)),
			ollama.WithModel(cfg.AI.GeneratorModel),
			ollama.WithLogger(logger),
		)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.AI.LLMProvider)
	}
}

// newOllamaHTTPClient creates an HTTP client with generous timeouts, since a
// local model can take minutes on a cold start.
func newOllamaHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 5 * time.Minute
	}
	return &http.Client{
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   30 * time.Second,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			MaxIdleConns:        100,
			MaxConnsPerHost:     10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
		Timeout: timeout,
	}
}

func provideLoggerConfig(cfg *config.Config) logger.Config {
	return cfg.Logging
}

func provideLogWriter(cfg logger.Config) (io.Writer, func(), error) {
	return logger.Writer(cfg)
}

func provideSlogLogger(cfg logger.Config, writer io.Writer) *slog.Logger {
	return logger.NewLogger(cfg, writer)
}

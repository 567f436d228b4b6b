package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sevigo/code-reviewer/internal/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "reviewer-cli",
	Short: "reviewer-cli reviews code snippets with a language model.",
	Long: `A CLI for the code reviewer. It checks snippets for syntax errors,
suggests corrections for broken code and asks the configured model for
issues, suggestions and a fixed version of valid code.`,
	SilenceUsage: true,
}

// flagBindings maps persistent flags onto configuration keys.
var flagBindings = map[string]string{
	"provider":     "ai.llm_provider",
	"ollama-host":  "ai.ollama_host",
	"ollama-model": "ai.generator_model",
	"gemini-model": "ai.gemini_model",
	"language":     "ai.language",
	"log-level":    "logging.level",
	"log-format":   "logging.format",
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default ./config.yaml or $HOME/.code-reviewer/config.yaml)")
	flags.String("provider", "", "LLM provider: ollama or gemini")
	flags.String("ollama-host", "", "Ollama server URL")
	flags.String("ollama-model", "", "model used with the ollama provider")
	flags.String("gemini-model", "", "model used with the gemini provider")
	flags.String("language", "", "language name used in the review prompt")
	flags.String("log-level", "", "log level: debug, info, warn or error")
	flags.String("log-format", "", "log format: text or json")

	for name, key := range flagBindings {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			slog.Error("Error binding flag", "flag", name, "error", err)
			os.Exit(1)
		}
	}
}

// initConfig points viper at an explicit config file when one was given.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// loadCLIConfig loads the configuration for a command that writes its results
// to stdout. Logs written to stdout are moved to stderr so they cannot mix
// with machine-readable output.
func loadCLIConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w\n\nTip: check config.yaml and REVIEWER_* environment variables", err)
	}
	if cfg.Logging.Output == "" || cfg.Logging.Output == "stdout" {
		cfg.Logging.Output = "stderr"
	}
	return cfg, nil
}

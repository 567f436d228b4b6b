package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/code-reviewer/internal/logger"
)

const envPrefix = "REVIEWER"

// Config holds the application's configuration values.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	AI      AIConfig      `mapstructure:"ai"`
	Logging logger.Config `mapstructure:"logging"`
}

// ServerConfig configures the HTTP form server.
type ServerConfig struct {
	Port           string        `mapstructure:"port"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// AIConfig selects and configures the response generator.
type AIConfig struct {
	LLMProvider    string        `mapstructure:"llm_provider"`
	OllamaHost     string        `mapstructure:"ollama_host"`
	GeneratorModel string        `mapstructure:"generator_model"`
	GeminiModel    string        `mapstructure:"gemini_model"`
	GeminiAPIKey   string        `mapstructure:"gemini_api_key"`
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	Language       string        `mapstructure:"language"`
}

// ModelName returns the model used by the configured provider.
func (c AIConfig) ModelName() string {
	if c.LLMProvider == "gemini" {
		return c.GeminiModel
	}
	return c.GeneratorModel
}

// Validate checks the provider selection and its required settings.
func (c AIConfig) Validate() error {
	switch c.LLMProvider {
	case "ollama":
		if c.OllamaHost == "" {
			return errors.New("ai.ollama_host must be set for the ollama provider")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY is not set in environment for gemini provider")
		}
	default:
		return fmt.Errorf("unsupported LLM provider: %q", c.LLMProvider)
	}
	if c.ModelName() == "" {
		return fmt.Errorf("no model configured for provider %q", c.LLMProvider)
	}
	if c.RequestTimeout < 0 {
		return errors.New("ai.request_timeout must not be negative")
	}
	return nil
}

// Validate checks the server settings.
func (c ServerConfig) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port <= 0 || port > 65535 {
		return fmt.Errorf("invalid server port %q", c.Port)
	}
	return nil
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	return c.AI.Validate()
}

// SetDefaults registers the default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.request_timeout", 5*time.Minute)
	v.SetDefault("ai.llm_provider", "ollama")
	v.SetDefault("ai.ollama_host", "http://localhost:11434")
	v.SetDefault("ai.generator_model", "gemma3:latest")
	v.SetDefault("ai.gemini_model", "gemini-2.5-flash")
	v.SetDefault("ai.request_timeout", 5*time.Minute)
	v.SetDefault("ai.language", "Python")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stdout")
}

// LoadConfig reads configuration from the global viper instance, which the
// CLI binds its flags into.
func LoadConfig() (*Config, error) {
	return Load(viper.GetViper())
}

// Load reads an optional config.yaml and REVIEWER_* environment variables
// into a Config, applies defaults and validates the result. The gemini key is
// also picked up from a plain GEMINI_API_KEY variable.
func Load(v *viper.Viper) (*Config, error) {
	if err := Read(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Read layers defaults, the optional config file and the environment into v
// without decoding or validating. Commands that need a single setting use it
// directly.
func Read(v *viper.Viper) error {
	SetDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.code-reviewer")

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := v.BindEnv("ai.gemini_api_key", envPrefix+"_AI_GEMINI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return fmt.Errorf("failed to bind gemini key: %w", err)
	}
	return nil
}

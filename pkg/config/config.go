// Package config provides centralized configuration management for the vocab MCP server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
	"github.com/susan8213/vocab-mcp/pkg/provider"
)

// ErrMissingCredential is returned by Validate when the selected provider has no API key.
var ErrMissingCredential = errors.New("missing API credential")

// ConfigFileEnv names the environment variable pointing at an optional config file.
const ConfigFileEnv = "VOCAB_MCP_CONFIG"

// Default model per provider, used when no model is configured.
var defaultModels = map[string]string{
	provider.Gemini:    "gemini-2.5-flash",
	provider.OpenAI:    "gpt-4o-mini",
	provider.Anthropic: "claude-sonnet-4-5",
}

// Config holds the complete configuration for the application
type Config struct {
	// Provider selects the model service: gemini, openai or anthropic.
	Provider string

	Gemini struct {
		APIKey string
	}

	OpenAI struct {
		APIKey string
	}

	Anthropic struct {
		APIKey string
	}

	// Expansion pipeline settings
	Expand struct {
		Model     string
		MaxTokens int
		Delay     time.Duration
	}

	// Extraction pipeline settings
	Extract struct {
		Model     string
		MaxTokens int
	}

	Log struct {
		Level  string
		Format string
	}

	// Debug dumps prompts and raw model answers to the log.
	Debug bool

	fileErr error
}

var (
	once   sync.Once
	config *Config
)

// Load initializes and loads the configuration from environment variables
// and, when VOCAB_MCP_CONFIG is set, from that file.
func Load() *Config {
	once.Do(func() {
		config = load(viper.New())
	})

	return config
}

func load(v *viper.Viper) *Config {
	v.SetDefault("provider", provider.Gemini)
	v.SetDefault("expand.max_tokens", 2048)
	v.SetDefault("expand.delay", 500*time.Millisecond)
	v.SetDefault("extract.max_tokens", 4096)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("debug", false)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("provider", "LLM_PROVIDER")
	_ = v.BindEnv("expand.model", "EXPAND_MODEL", "GEMINI_EXPAND_MODEL")
	_ = v.BindEnv("extract.model", "EXTRACT_MODEL", "GEMINI_EXTRACT_MODEL")

	cfg := &Config{}

	if path := os.Getenv(ConfigFileEnv); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			cfg.fileErr = fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(v.GetString("provider")))

	cfg.Gemini.APIKey = v.GetString("gemini.api_key")
	cfg.OpenAI.APIKey = v.GetString("openai.api_key")
	cfg.Anthropic.APIKey = v.GetString("anthropic.api_key")

	cfg.Expand.Model = v.GetString("expand.model")
	if cfg.Expand.Model == "" {
		cfg.Expand.Model = defaultModels[cfg.Provider]
	}
	cfg.Expand.MaxTokens = v.GetInt("expand.max_tokens")
	cfg.Expand.Delay = v.GetDuration("expand.delay")

	cfg.Extract.Model = v.GetString("extract.model")
	if cfg.Extract.Model == "" {
		cfg.Extract.Model = defaultModels[cfg.Provider]
	}
	cfg.Extract.MaxTokens = v.GetInt("extract.max_tokens")

	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")
	cfg.Debug = v.GetBool("debug")

	return cfg
}

// APIKey returns the credential of the selected provider.
func (c *Config) APIKey() string {
	switch c.Provider {
	case provider.Gemini:
		return c.Gemini.APIKey
	case provider.OpenAI:
		return c.OpenAI.APIKey
	case provider.Anthropic:
		return c.Anthropic.APIKey
	}
	return ""
}

// Validate checks if all required configuration values are set
func (c *Config) Validate() error {
	var errs []error

	if c.fileErr != nil {
		errs = append(errs, c.fileErr)
	}

	if _, ok := defaultModels[c.Provider]; !ok {
		errs = append(errs, fmt.Errorf("unknown provider %q", c.Provider))
	} else if strings.TrimSpace(c.APIKey()) == "" {
		errs = append(errs, fmt.Errorf("%w: set %s_API_KEY for provider %s",
			ErrMissingCredential, strings.ToUpper(c.Provider), c.Provider))
	}

	if c.Expand.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("expand max tokens must be positive, got %d", c.Expand.MaxTokens))
	}
	if c.Extract.MaxTokens <= 0 {
		errs = append(errs, fmt.Errorf("extract max tokens must be positive, got %d", c.Extract.MaxTokens))
	}
	if c.Expand.Delay < 0 {
		errs = append(errs, fmt.Errorf("expand delay must not be negative, got %s", c.Expand.Delay))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %w", errors.Join(errs...))
	}

	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/quocvuong92/operator-console/internal/constants"
)

// Environment variable names
const (
	// Upstream credentials, one per provider
	EnvGroqAPIKey   = "GROQ_API_KEY"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
	EnvGeminiAPIKey = "GEMINI_API_KEY"

	// Upstream selection
	EnvProvider = "OPERATOR_PROVIDER"
	EnvModel    = "OPERATOR_MODEL"
	EnvBaseURL  = "OPERATOR_BASE_URL"

	// Gateway settings
	EnvPort      = "PORT"
	EnvPublicDir = "OPERATOR_PUBLIC_DIR"

	// Console settings
	EnvServerURL = "OPERATOR_SERVER_URL"
	EnvTheme     = "OPERATOR_THEME"

	// Logging
	EnvLogLevel  = "OPERATOR_LOG_LEVEL"
	EnvLogFormat = "OPERATOR_LOG_FORMAT"
)

// Supported upstream providers
const (
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Defaults - re-exported from constants for convenience
const (
	DefaultProvider  = constants.DefaultProvider
	DefaultModel     = constants.DefaultModel
	DefaultPort      = constants.DefaultPort
	DefaultPublicDir = constants.DefaultPublicDir
	DefaultServerURL = constants.DefaultServerURL
	DefaultTheme     = constants.DefaultTheme
	DefaultLogLevel  = constants.DefaultLogLevel
	DefaultLogFormat = constants.DefaultLogFormat
)

// Timeout constants - re-exported from constants for convenience
const (
	DefaultAPITimeout   = constants.DefaultAPITimeout
	DefaultFetchTimeout = constants.DefaultFetchTimeout
)

// Errors
var (
	ErrAPIKeyNotFound  = errors.New("upstream API key not found")
	ErrInvalidProvider = errors.New("invalid provider. Use 'groq', 'openai', or 'gemini'")
	ErrInvalidPort     = errors.New("invalid port. PORT must be a number between 1 and 65535")
	ErrInvalidLogLevel = errors.New("invalid log level. Use 'debug', 'info', 'warn', 'error', or 'none'")
)

// Config holds the application configuration
type Config struct {
	// Upstream language model
	Provider string // "groq", "openai", or "gemini"
	APIKey   string
	BaseURL  string // OpenAI-compatible providers only
	Model    string

	// Gateway
	Port      int
	PublicDir string

	// Console
	ServerURL string
	Theme     string
	Render    bool
	NoBoot    bool

	// Logging
	LogLevel  string
	LogFormat string
	Debug     bool // Log upstream HTTP traffic
}

// NewConfig creates a new Config with defaults
func NewConfig() *Config {
	return &Config{}
}

// APIKeyEnv returns the environment variable holding the key for a provider
func APIKeyEnv(provider string) string {
	switch provider {
	case ProviderOpenAI:
		return EnvOpenAIAPIKey
	case ProviderGemini:
		return EnvGeminiAPIKey
	default:
		return EnvGroqAPIKey
	}
}

// Load layers flags (already set on c), the environment, an optional .env
// file, and the config file, then fills defaults. It does not require
// credentials.
func (c *Config) Load() error {
	// .env never overrides variables that are already set
	_ = godotenv.Load()

	if err := c.applyEnv(); err != nil {
		return err
	}

	fileConfig, err := LoadConfigFile()
	if err != nil {
		return err
	}
	c.ApplyFileConfig(fileConfig)

	return c.applyDefaults()
}

// applyEnv fills fields not set by flags from the environment
func (c *Config) applyEnv() error {
	setIfEmpty(&c.Provider, os.Getenv(EnvProvider))
	setIfEmpty(&c.Model, os.Getenv(EnvModel))
	setIfEmpty(&c.BaseURL, os.Getenv(EnvBaseURL))
	setIfEmpty(&c.PublicDir, os.Getenv(EnvPublicDir))
	setIfEmpty(&c.ServerURL, os.Getenv(EnvServerURL))
	setIfEmpty(&c.Theme, os.Getenv(EnvTheme))
	setIfEmpty(&c.LogLevel, os.Getenv(EnvLogLevel))
	setIfEmpty(&c.LogFormat, os.Getenv(EnvLogFormat))

	if env := strings.TrimSpace(os.Getenv(EnvPort)); env != "" && c.Port == 0 {
		port, err := strconv.Atoi(env)
		if err != nil {
			return ErrInvalidPort
		}
		c.Port = port
	}
	return nil
}

// applyDefaults fills remaining gaps and validates the values that have a
// closed set of options
func (c *Config) applyDefaults() error {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = DefaultProvider
	}
	if c.Provider != ProviderGroq && c.Provider != ProviderOpenAI && c.Provider != ProviderGemini {
		return ErrInvalidProvider
	}

	// The provider's key variable wins over a key stored in the config file
	if key := strings.TrimSpace(os.Getenv(APIKeyEnv(c.Provider))); key != "" {
		c.APIKey = key
	}

	if c.Model == "" {
		c.Model = constants.DefaultModels[c.Provider]
	}

	if c.BaseURL == "" {
		switch c.Provider {
		case ProviderGroq:
			c.BaseURL = constants.GroqBaseURL
		case ProviderOpenAI:
			c.BaseURL = constants.OpenAIBaseURL
		}
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")

	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Port < 1 || c.Port > 65535 {
		return ErrInvalidPort
	}

	if c.PublicDir == "" {
		c.PublicDir = DefaultPublicDir
	}

	if c.ServerURL == "" {
		c.ServerURL = DefaultServerURL
	}
	c.ServerURL = strings.TrimSuffix(c.ServerURL, "/")

	if c.LogLevel == "" {
		c.LogLevel = DefaultLogLevel
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error", "none", "off":
	default:
		return ErrInvalidLogLevel
	}

	if c.LogFormat == "" {
		c.LogFormat = DefaultLogFormat
	}

	return nil
}

func setIfEmpty(field *string, value string) {
	if *field == "" {
		*field = strings.TrimSpace(value)
	}
}

// Validate loads the configuration and checks everything the gateway needs
// before it may bind a port.
func (c *Config) Validate() error {
	if err := c.Load(); err != nil {
		return err
	}
	if c.APIKey == "" {
		return fmt.Errorf("%w. Set %s in your environment or .env file", ErrAPIKeyNotFound, APIKeyEnv(c.Provider))
	}
	return nil
}

// Addr returns the listen address for the gateway
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// GetChatURL builds the full chat completions URL for OpenAI-compatible providers
func (c *Config) GetChatURL() string {
	return fmt.Sprintf("%s/chat/completions", c.BaseURL)
}

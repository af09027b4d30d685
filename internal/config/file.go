package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the config file
const ConfigFileName = "config.yaml"

// appDirName is the directory name used under config roots
const appDirName = "operator"

// FileConfig represents the configuration file structure
type FileConfig struct {
	// Upstream settings
	Provider string `yaml:"provider,omitempty"` // "groq", "openai", "gemini"
	Model    string `yaml:"model,omitempty"`
	BaseURL  string `yaml:"base_url,omitempty"`
	APIKey   string `yaml:"api_key,omitempty"`

	// Gateway settings
	Server *ServerConfig `yaml:"server,omitempty"`

	// Console settings
	Console *ConsoleConfig `yaml:"console,omitempty"`

	// Logging settings
	Log *LogConfig `yaml:"log,omitempty"`
}

// ServerConfig holds gateway configuration
type ServerConfig struct {
	Port      int    `yaml:"port,omitempty"`
	PublicDir string `yaml:"public_dir,omitempty"`
}

// ConsoleConfig holds interactive console configuration
type ConsoleConfig struct {
	ServerURL string `yaml:"server_url,omitempty"`
	Theme     string `yaml:"theme,omitempty"`
	Render    bool   `yaml:"render,omitempty"`
	NoBoot    bool   `yaml:"no_boot,omitempty"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"` // "text" or "json"
	Debug  bool   `yaml:"debug,omitempty"`
}

// GetConfigPaths returns the paths to check for config files (in order of priority)
func GetConfigPaths() []string {
	var paths []string

	// 1. Current directory
	paths = append(paths, filepath.Join(".", "."+appDirName, ConfigFileName))

	// 2. User config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, appDirName, ConfigFileName))
	}

	// 3. Home directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", appDirName, ConfigFileName))
	}

	return paths
}

// LoadConfigFile attempts to load configuration from the first file found
func LoadConfigFile() (*FileConfig, error) {
	for _, path := range GetConfigPaths() {
		if _, err := os.Stat(path); err == nil {
			return loadConfigFromPath(path)
		}
	}

	// No config file found, return empty config
	return &FileConfig{}, nil
}

// loadConfigFromPath loads config from a specific path
func loadConfigFromPath(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// ApplyFileConfig applies file configuration to the main Config.
// File config has lower priority than environment variables and CLI flags,
// so only empty fields are filled.
func (c *Config) ApplyFileConfig(fc *FileConfig) {
	if fc == nil {
		return
	}

	setIfEmpty(&c.Provider, fc.Provider)
	setIfEmpty(&c.Model, fc.Model)
	setIfEmpty(&c.BaseURL, fc.BaseURL)
	setIfEmpty(&c.APIKey, fc.APIKey)

	if fc.Server != nil {
		if c.Port == 0 && fc.Server.Port != 0 {
			c.Port = fc.Server.Port
		}
		setIfEmpty(&c.PublicDir, fc.Server.PublicDir)
	}

	if fc.Console != nil {
		setIfEmpty(&c.ServerURL, fc.Console.ServerURL)
		setIfEmpty(&c.Theme, fc.Console.Theme)
		// A false flag cannot be told apart from an unset one, so the file
		// can only switch these on
		if fc.Console.Render {
			c.Render = true
		}
		if fc.Console.NoBoot {
			c.NoBoot = true
		}
	}

	if fc.Log != nil {
		setIfEmpty(&c.LogLevel, fc.Log.Level)
		setIfEmpty(&c.LogFormat, fc.Log.Format)
		if fc.Log.Debug {
			c.Debug = true
		}
	}
}

// CreateDefaultConfigFile creates a default config file at the user config directory
func CreateDefaultConfigFile() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine config directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	dir := filepath.Join(configDir, appDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists at %s", path)
	}

	defaultConfig := `# Operator Console Configuration
# Location: ~/.config/operator/config.yaml
# Environment variables and flags take precedence over this file.

# Upstream language model: "groq", "openai", or "gemini" (default: groq)
# provider: groq
# model: llama3-8b-8192
# base_url: https://api.groq.com/openai/v1

# Prefer GROQ_API_KEY / OPENAI_API_KEY / GEMINI_API_KEY over storing a key here
# api_key: your-api-key

# Gateway (operator serve)
# server:
#   port: 3000
#   public_dir: public

# Console (operator)
# console:
#   server_url: http://localhost:3000
#   theme: matrix_green  # matrix_green, amber, sentinel_blue
#   render: true
#   no_boot: false

# Logging
# log:
#   level: info   # debug, info, warn, error, none
#   format: text  # text or json
#   debug: false  # log upstream HTTP traffic
`

	if err := os.WriteFile(path, []byte(defaultConfig), 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}

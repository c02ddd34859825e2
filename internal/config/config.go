// Package config loads templechat's runtime configuration. Values are
// resolved with the following precedence: environment variables, then a
// local .env file, then a .env file in the user configuration directory,
// then built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"templechat/internal/logger"
)

// Defaults for the completion request. These are configuration constants,
// not per-call tunables: the temperature and token cap bound response
// length and cost.
const (
	DefaultProvider    = "openai"
	DefaultModel       = "gpt-3.5-turbo"
	DefaultTemperature = 0.8
	DefaultMaxTokens   = 150
	DefaultPersona     = "nun"
)

const envPrefix = "TEMPLECHAT"

// Config holds the resolved runtime configuration for a templechat run.
// API keys are kept out of this struct on purpose; they are resolved on
// demand via APIKeyFor and never logged.
type Config struct {
	Provider    string
	Model       string
	BaseURL     string
	Persona     string
	StateDir    string
	Temperature float64
	MaxTokens   int
}

// Load resolves the configuration from env vars, .env files and defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("provider", DefaultProvider)
	v.SetDefault("model", DefaultModel)
	v.SetDefault("base-url", "")
	v.SetDefault("persona", DefaultPersona)
	v.SetDefault("temperature", DefaultTemperature)
	v.SetDefault("max-tokens", DefaultMaxTokens)

	stateDir, err := defaultStateDir()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve state directory: %w", err)
	}
	v.SetDefault("state-dir", stateDir)

	loadDotEnvFiles()

	cfg := &Config{
		Provider:    v.GetString("provider"),
		Model:       v.GetString("model"),
		BaseURL:     v.GetString("base-url"),
		Persona:     v.GetString("persona"),
		StateDir:    v.GetString("state-dir"),
		Temperature: v.GetFloat64("temperature"),
		MaxTokens:   v.GetInt("max-tokens"),
	}

	logger.Debug("configuration loaded",
		"provider", cfg.Provider,
		"model", cfg.Model,
		"persona", cfg.Persona,
		"state_dir", cfg.StateDir)
	return cfg, nil
}

// loadDotEnvFiles loads .env files into the process environment without
// overriding variables that are already set, preserving the precedence
// env > local .env > config-dir .env. Missing files are not an error.
func loadDotEnvFiles() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			logger.Warn("failed to load local .env", "error", err)
		}
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return
	}
	envPath := filepath.Join(configDir, "templechat", ".env")
	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			logger.Warn("failed to load config .env", "error", err, "path", envPath)
		}
	}
}

// defaultStateDir returns the directory holding templechat's durable state
// (the persisted turn counter).
func defaultStateDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "templechat"), nil
}

// APIKeyFor resolves the bearer credential for the given provider from the
// environment. The value is opaque and treated as a secret: callers must
// never log it.
func APIKeyFor(provider string) string {
	switch provider {
	case "openai", "openai-sdk":
		return os.Getenv("OPENAI_API_KEY")
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	case "gemini":
		return os.Getenv("GEMINI_API_KEY")
	default:
		return ""
	}
}

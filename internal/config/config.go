// Package config manages application configuration from environment
// variables and .env files. Nothing here is part of the shell's
// stdin/stdout contract; configuration only tunes the ambient surface
// (store backend, prompt, log verbosity).
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Store backends selectable via TASKTRACK_BACKEND.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// ValidBackends contains all selectable store backends.
var ValidBackends = []string{BackendMemory, BackendSQLite}

// ValidLogLevels contains all accepted TASKTRACK_LOG_LEVEL values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Config holds the application configuration.
type Config struct {
	Backend  string
	Prompt   string
	LogLevel string
}

// Load reads configuration from a .env file in the specified directory.
// Missing keys fall back to the global config (~/.tasktrack/config), then
// to environment variables and defaults.
func Load(dir string) (*Config, error) {
	envPath := GetConfigPath(dir)

	// Read local .env file if it exists
	localEnvMap, err := godotenv.Read(envPath)
	if err != nil {
		// If file doesn't exist, use empty map
		localEnvMap = make(map[string]string)
	}

	// Read global config file
	globalEnvMap, err := godotenv.Read(GetGlobalConfigPath())
	if err != nil {
		// If file doesn't exist, use empty map
		globalEnvMap = make(map[string]string)
	}

	// Helper to get value with precedence: local > global > env > default
	getValueWithFallback := func(key, defaultValue string) string {
		if value, ok := localEnvMap[key]; ok && value != "" {
			return value
		}
		if value, ok := globalEnvMap[key]; ok && value != "" {
			return value
		}
		if value := os.Getenv(key); value != "" {
			return value
		}
		return defaultValue
	}

	cfg := &Config{
		Backend:  getValueWithFallback("TASKTRACK_BACKEND", BackendMemory),
		Prompt:   getValueWithFallback("TASKTRACK_PROMPT", "> "),
		LogLevel: getValueWithFallback("TASKTRACK_LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that all configuration fields hold accepted values.
func (c *Config) Validate() error {
	if !contains(ValidBackends, c.Backend) {
		return fmt.Errorf("invalid TASKTRACK_BACKEND '%s', expected one of: %s",
			c.Backend, strings.Join(ValidBackends, ", "))
	}
	if !contains(ValidLogLevels, c.LogLevel) {
		return fmt.Errorf("invalid TASKTRACK_LOG_LEVEL '%s', expected one of: %s",
			c.LogLevel, strings.Join(ValidLogLevels, ", "))
	}
	return nil
}

// SlogLevel maps the configured log level onto a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// GetConfigPath returns the full path to the .env file in the given directory.
func GetConfigPath(dir string) string {
	return filepath.Join(dir, ".env")
}

// Set updates or creates a configuration value in the .env file.
func Set(dir, key, value string) error {
	envPath := GetConfigPath(dir)

	// Load existing config
	envMap, err := godotenv.Read(envPath)
	if err != nil {
		// If file doesn't exist, create new map
		envMap = make(map[string]string)
	}

	envMap[key] = value

	return godotenv.Write(envMap, envPath)
}

// Get retrieves a configuration value from the .env file.
func Get(dir, key string) (string, error) {
	envPath := GetConfigPath(dir)

	envMap, err := godotenv.Read(envPath)
	if err != nil {
		return "", fmt.Errorf("failed to read config: %w", err)
	}

	value, ok := envMap[key]
	if !ok {
		return "", fmt.Errorf("key '%s' not found in configuration", key)
	}

	return value, nil
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}

// getValueOrDefault gets a value from env map, falling back to system env var, then default.
func getValueOrDefault(envMap map[string]string, key, defaultValue string) string {
	if value, ok := envMap[key]; ok && value != "" {
		return value
	}
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

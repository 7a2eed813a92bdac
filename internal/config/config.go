// Package config loads sheetgen settings from the environment
package config

import (
	"log/slog"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/KirkDiggler/sheetgen/internal/errors"
)

// Log levels accepted by LogLevel
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Environment variables read by Parse
const (
	EnvTemplate = "SHEETGEN_TEMPLATE"
	EnvOutput   = "SHEETGEN_OUTPUT"
	EnvSort     = "SHEETGEN_SORT"
	EnvLogLevel = "SHEETGEN_LOG_LEVEL"
)

// Config holds settings that flags fall back to when not given
type Config struct {
	TemplatePath string `env:"SHEETGEN_TEMPLATE"`
	OutputPath   string `env:"SHEETGEN_OUTPUT"`
	SortByName   bool   `env:"SHEETGEN_SORT" envDefault:"false"`
	LogLevel     string `env:"SHEETGEN_LOG_LEVEL" envDefault:"warn"`
}

// Overrides are explicitly given settings keyed by environment variable.
// They replace the environment value before anything is parsed, so a bad
// environment value never fails a run that overrides it.
type Overrides map[string]string

// Load reads an optional .env file and then the process environment.
// Variables already set in the environment win over the file, and
// overrides win over both.
func Load(overrides Overrides, envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil {
		slog.Debug("No .env file loaded", "error", err)
	}

	return Parse(overrides)
}

// Parse reads the process environment with overrides applied, then
// validates the result once
func Parse(overrides Overrides) (*Config, error) {
	environment := env.ToMap(os.Environ())
	for key, value := range overrides {
		environment[key] = value
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environment}); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeInvalidArgument, "failed to parse environment")
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("log_level", c.LogLevel, []string{
		LogLevelDebug, LogLevelInfo, LogLevelWarn, LogLevelError,
	}, vb)

	return vb.Build()
}

// SlogLevel maps LogLevel to a slog level, defaulting to warn
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelInfo:
		return slog.LevelInfo
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

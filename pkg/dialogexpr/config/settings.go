package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v10"
	"golang.org/x/text/language"
)

// EnvPrefix is prepended to every environment variable read by ApplyEnv.
const EnvPrefix = "DIALOGEXPR_"

// ErrInvalidSettings indicates a settings value failed validation.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings configures an Engine.
type Settings struct {
	// Locale is the default BCP 47 tag for locale-sensitive functions.
	Locale string `yaml:"locale" json:"locale" env:"LOCALE"`

	// NullSubstitution is a template rendered for paths that resolve to
	// nothing; ${path} names the missing path. Empty disables substitution.
	NullSubstitution string `yaml:"null_substitution" json:"null_substitution" env:"NULL_SUBSTITUTION"`

	// Metrics enables OpenTelemetry metrics.
	Metrics bool `yaml:"metrics" json:"metrics" env:"METRICS"`

	// Tracing enables OpenTelemetry spans.
	Tracing bool `yaml:"tracing" json:"tracing" env:"TRACING"`

	// LogLevel is one of debug, info, warn or error.
	LogLevel string `yaml:"log_level" json:"log_level" env:"LOG_LEVEL"`
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{
		Locale:   "en-US",
		LogLevel: "info",
	}
}

// ApplyEnv overrides s with DIALOGEXPR_* environment variables. Unset
// variables leave the corresponding field unchanged.
func (s *Settings) ApplyEnv() error {
	if err := env.ParseWithOptions(s, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	return nil
}

// Level returns LogLevel as a slog.Level, defaulting to info.
func (s Settings) Level() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

// Validate checks the locale tag and log level.
func (s Settings) Validate() error {
	if s.Locale != "" {
		if _, err := language.Parse(s.Locale); err != nil {
			return fmt.Errorf("%w: locale %q: %v", ErrInvalidSettings, s.Locale, err)
		}
	}
	if !isValidLogLevel(s.LogLevel) {
		return fmt.Errorf("%w: log_level must be one of: debug, info, warn, error", ErrInvalidSettings)
	}
	return nil
}

func isValidLogLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "error":
		return true
	}
	return false
}

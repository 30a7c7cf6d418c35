// Package config loads driver settings for detlog from the environment.
package config

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/kelseyhightower/envconfig"
)

// Prefix is the environment variable prefix, e.g. DETLOG_PRECISION.
const Prefix = "DETLOG"

// ErrInvalid is returned by Validate for out-of-range settings.
var ErrInvalid = errors.New("config: invalid value")

// Config holds all driver configuration. The sections are embedded so that
// every variable sits directly under Prefix (DETLOG_PRECISION, not
// DETLOG_FORMAT_PRECISION).
type Config struct {
	FormatConfig
	InputConfig
	LogConfig
}

// FormatConfig controls the scientific rendering of the determinant.
type FormatConfig struct {
	Precision int  `envconfig:"PRECISION" default:"15"`
	Verify    bool `envconfig:"VERIFY" default:"false"`
}

// InputConfig controls matrix loading.
type InputConfig struct {
	Delimiter string `envconfig:"DELIMITER" default:","`
	MaxDim    int    `envconfig:"MAX_DIM" default:"0"`
}

// LogConfig holds logging configuration. An empty Level keeps the preset's
// own level: warn, or debug when Development is set.
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

// Load loads configuration from DETLOG_* environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns default configuration.
func Default() *Config {
	return &Config{
		FormatConfig: FormatConfig{
			Precision: 15,
			Verify:    false,
		},
		InputConfig: InputConfig{
			Delimiter: ",",
			MaxDim:    0,
		},
		LogConfig: LogConfig{
			Level:       "",
			Development: false,
		},
	}
}

// Validate checks ranges that envconfig cannot express.
func (c *Config) Validate() error {
	if c.Precision < 0 || c.Precision > 17 {
		return fmt.Errorf("%w: precision %d not in [0, 17]", ErrInvalid, c.Precision)
	}
	if utf8.RuneCountInString(c.Delimiter) != 1 {
		return fmt.Errorf("%w: delimiter %q must be a single character", ErrInvalid, c.Delimiter)
	}
	if c.MaxDim < 0 {
		return fmt.Errorf("%w: max dim %d is negative", ErrInvalid, c.MaxDim)
	}
	return nil
}

// DelimiterRune returns the configured delimiter as a rune.
// Call Validate first; an invalid delimiter yields ','.
func (c *Config) DelimiterRune() rune {
	r, size := utf8.DecodeRuneInString(c.Delimiter)
	if size == 0 || size != len(c.Delimiter) {
		return ','
	}
	return r
}

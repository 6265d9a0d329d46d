// Package config loads runtime settings for the circles CLI.
//
// Settings come from built-in defaults, then an optional YAML file, then
// CIRCLES_* environment variables. Command-line flags are applied by the
// caller after Load returns.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is the environment variable prefix, e.g. CIRCLES_PAGE_SIZE.
const EnvPrefix = "circles"

const (
	DefaultPageSize     = 12
	DefaultHistoryCap   = 100
	DefaultDatabasePath = "circles.db"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// Config is the full runtime configuration.
type Config struct {
	PageSize     int     `yaml:"pageSize"     split_words:"true"`
	HistoryCap   int     `yaml:"historyCap"   split_words:"true"`
	DatabasePath string  `yaml:"databasePath" split_words:"true"`
	// Profile keys stored state when the fixture names no profile.
	Profile      string  `yaml:"profile"`
	Logging      Logging `yaml:"logging"`
}

// Logging configures the slog handler.
type Logging struct {
	Level     string `yaml:"level"`
	Format    string `yaml:"format"`
	AddSource bool   `yaml:"addSource" split_words:"true"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		PageSize:     DefaultPageSize,
		HistoryCap:   DefaultHistoryCap,
		DatabasePath: DefaultDatabasePath,
		Logging: Logging{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		buf, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		if err := decode(buf, cfg); err != nil {
			return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("error processing environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// decode overlays YAML onto cfg. Unknown keys are rejected.
func decode(buf []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(buf))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.PageSize < 1 {
		return fmt.Errorf("invalid pageSize %d: must be at least 1", c.PageSize)
	}
	if c.HistoryCap < 2 {
		return fmt.Errorf("invalid historyCap %d: must be at least 2", c.HistoryCap)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("invalid databasePath: must not be empty")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid logging format %q: must be text or json", c.Logging.Format)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid logging level %q: must be debug, info, warn, or error", c.Logging.Level)
	}
	return nil
}

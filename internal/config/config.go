// Package config provides configuration management for the listing parser.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrInvalidSink        = errors.New("output.sink must be one of: dat, sqlite, postgres")
	ErrMissingOutputDir   = errors.New("output.dir is required for the dat sink")
	ErrInvalidDelimiter   = errors.New("output.delimiter must be exactly one character")
	ErrMissingSQLitePath  = errors.New("output.sqlite_path is required for the sqlite sink")
	ErrMissingDatabaseURL = errors.New("output.database_url is required for the postgres sink")
	ErrMissingItemsKey    = errors.New("input.items_key is required")
	ErrMissingExtension   = errors.New("input.extension must start with '.'")
	ErrInvalidPreviewRows = errors.New("features.preview_rows must be non-negative")
	ErrInvalidLogLevel    = errors.New("logging.level must be one of: debug, info, warn, error")
	ErrInvalidLogFormat   = errors.New("logging.format must be 'text' or 'json'")
)

// Environment variables applied over the file configuration.
const (
	EnvSink        = "AUCTIONLOAD_SINK"
	EnvOutputDir   = "AUCTIONLOAD_OUTPUT_DIR"
	EnvSQLitePath  = "AUCTIONLOAD_SQLITE_PATH"
	EnvLogLevel    = "AUCTIONLOAD_LOG_LEVEL"
	EnvDatabaseURL = "DATABASE_URL"
)

// Config represents the complete parser configuration.
type Config struct {
	Parser   ParserConfig   `yaml:"parser"`
	Features FeaturesConfig `yaml:"features"`
}

// ParserConfig contains parser-specific settings.
type ParserConfig struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
	Sources []string      `yaml:"sources"`
}

// InputConfig describes how sources are recognized and read.
type InputConfig struct {
	Extension string `yaml:"extension"`
	ItemsKey  string `yaml:"items_key"`
}

// OutputConfig defines where relations are written.
type OutputConfig struct {
	Sink        string `yaml:"sink"`
	Dir         string `yaml:"dir"`
	Delimiter   string `yaml:"delimiter"`
	SQLitePath  string `yaml:"sqlite_path"`
	DatabaseURL string `yaml:"database_url"`
}

// LoggingConfig defines logging behavior.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// FeaturesConfig contains feature flags.
type FeaturesConfig struct {
	PreviewRows int  `yaml:"preview_rows"`
	FailFast    bool `yaml:"fail_fast"`
}

// Default returns a configuration that writes .dat files to the working directory.
func Default() *Config {
	return &Config{
		Parser: ParserConfig{
			Input: InputConfig{
				Extension: ".json",
				ItemsKey:  "Items",
			},
			Output: OutputConfig{
				Sink:       "dat",
				Dir:        ".",
				Delimiter:  "|",
				SQLitePath: "auctions.db",
			},
			Logging: LoggingConfig{
				Level:  "info",
				Format: "text",
			},
		},
	}
}

// LoadConfig loads configuration from a YAML file on top of the defaults.
// An empty path yields the defaults. Environment overrides are applied last.
// The result is not validated; callers apply their own overrides first and
// then call Validate.
func LoadConfig(filepath string) (*Config, error) {
	cfg := Default()

	if filepath != "" {
		data, err := os.ReadFile(filepath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
	}

	cfg.ApplyEnv()

	return cfg, nil
}

// LoadEnvFile loads a .env file into the process environment if it exists.
// It reports whether a file was loaded.
func LoadEnvFile(path string) bool {
	if path == "" {
		path = ".env"
	}

	return godotenv.Load(path) == nil
}

// ApplyEnv overrides settings with any environment variables that are set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvSink); v != "" {
		c.Parser.Output.Sink = v
	}

	if v := os.Getenv(EnvOutputDir); v != "" {
		c.Parser.Output.Dir = v
	}

	if v := os.Getenv(EnvSQLitePath); v != "" {
		c.Parser.Output.SQLitePath = v
	}

	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Parser.Logging.Level = strings.ToLower(v)
	}

	if v := os.Getenv(EnvDatabaseURL); v != "" {
		c.Parser.Output.DatabaseURL = v
	}
}

// SaveConfig saves configuration to YAML file.
func (c *Config) SaveConfig(filepath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filepath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	in := c.Parser.Input

	if in.ItemsKey == "" {
		return ErrMissingItemsKey
	}

	if !strings.HasPrefix(in.Extension, ".") {
		return ErrMissingExtension
	}

	out := c.Parser.Output

	switch out.Sink {
	case "dat":
		if out.Dir == "" {
			return ErrMissingOutputDir
		}

		if utf8.RuneCountInString(out.Delimiter) != 1 {
			return ErrInvalidDelimiter
		}
	case "sqlite":
		if out.SQLitePath == "" {
			return ErrMissingSQLitePath
		}
	case "postgres":
		if out.DatabaseURL == "" {
			return ErrMissingDatabaseURL
		}
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidSink, out.Sink)
	}

	if c.Features.PreviewRows < 0 {
		return ErrInvalidPreviewRows
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Parser.Logging.Level] {
		return ErrInvalidLogLevel
	}

	if c.Parser.Logging.Format != "text" && c.Parser.Logging.Format != "json" {
		return ErrInvalidLogFormat
	}

	return nil
}

// String returns a string representation of the config.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Config{Sink: %s, Output: %s, Sources: %d}",
		c.Parser.Output.Sink,
		c.Parser.Output.Dir,
		len(c.Parser.Sources),
	)
}

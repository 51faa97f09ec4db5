// Package config loads pairxl configuration from defaults, an optional
// YAML file, and PAIRXL_* environment variables, in that order of
// precedence (environment wins).
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server" envconfig:"SERVER"`
	Logging  LoggingConfig  `yaml:"logging" envconfig:"LOGGING"`
	Matching MatchingConfig `yaml:"matching" envconfig:"MATCHING"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int             `yaml:"port" envconfig:"PORT"`
	ReadTimeout     time.Duration   `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout    time.Duration   `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
	IdleTimeout     time.Duration   `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT"`
	ShutdownTimeout time.Duration   `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	RateLimit       RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// RateLimitConfig contains rate limiting configuration.
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED"`
	RPS     float64 `yaml:"rps" envconfig:"RPS"`
	Burst   int     `yaml:"burst" envconfig:"BURST"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// MatchingConfig contains default options for reconciliation runs.
type MatchingConfig struct {
	ColumnPattern   string `yaml:"column_pattern" envconfig:"COLUMN_PATTERN"`
	RowStart        int    `yaml:"row_start" envconfig:"ROW_START"`
	RowStop         string `yaml:"row_stop" envconfig:"ROW_STOP"`
	ResultPlacement string `yaml:"result_placement" envconfig:"RESULT_PLACEMENT"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			RateLimit: RateLimitConfig{
				Enabled: true,
				RPS:     50,
				Burst:   25,
			},
		},
		Logging: LoggingConfig{
			Level:    "info",
			Format:   "json",
			Output:   "stdout",
			FilePath: "logs/pairxl.log",
		},
		Matching: MatchingConfig{
			ColumnPattern:   "^Amount.*",
			RowStart:        2,
			RowStop:         "on_blank",
			ResultPlacement: "insert_right",
		},
	}
}

// Load builds the configuration. The optional YAML file overrides the
// defaults and environment variables override the file. The file path
// comes from PAIRXL_CONFIG_FILE, falling back to ./config.yaml.
func Load() (*Config, error) {
	cfg := Default()

	path := os.Getenv("PAIRXL_CONFIG_FILE")
	if path == "" {
		path = "config.yaml"
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := envconfig.Process("PAIRXL", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// validate checks configuration consistency before use.
func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level: %s", c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Output) {
	case "stdout", "file", "both":
	default:
		return fmt.Errorf("invalid log output: %s", c.Logging.Output)
	}
	if c.Logging.Output != "stdout" && c.Logging.FilePath == "" {
		return fmt.Errorf("log output %q requires a file path", c.Logging.Output)
	}

	if c.Matching.RowStart < 1 {
		return fmt.Errorf("matching row_start must be at least 1, got %d", c.Matching.RowStart)
	}
	switch c.Matching.RowStop {
	case "on_blank", "end_of_sheet", "at_row":
	default:
		return fmt.Errorf("invalid row_stop strategy: %s", c.Matching.RowStop)
	}
	switch c.Matching.ResultPlacement {
	case "insert_right", "append_end", "at_column":
	default:
		return fmt.Errorf("invalid result_placement strategy: %s", c.Matching.ResultPlacement)
	}

	if c.Server.RateLimit.Enabled {
		if c.Server.RateLimit.RPS <= 0 {
			return fmt.Errorf("rate limit rps must be positive, got %f", c.Server.RateLimit.RPS)
		}
		if c.Server.RateLimit.Burst < 1 {
			return fmt.Errorf("rate limit burst must be at least 1, got %d", c.Server.RateLimit.Burst)
		}
	}

	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level scotia.yaml configuration.
type Config struct {
	Ledger     LedgerConfig     `yaml:"ledger"`
	Categories CategoriesConfig `yaml:"categories"`
	Output     OutputConfig     `yaml:"output"`
	Log        LogConfig        `yaml:"log"`
}

// LedgerConfig controls how ledger files are read.
type LedgerConfig struct {
	Format  string `yaml:"format"`
	Workers int    `yaml:"workers"` // files parsed concurrently
}

// CategoriesConfig points at a category table file. Empty means built-in.
type CategoriesConfig struct {
	Path string `yaml:"path,omitempty"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Color bool `yaml:"color"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Environment variables that override file settings.
const (
	EnvFormat     = "SCOTIA_FORMAT"
	EnvCategories = "SCOTIA_CATEGORIES"
	EnvLogLevel   = "SCOTIA_LOG_LEVEL"
	EnvWorkers    = "SCOTIA_WORKERS"
)

var logLevels = []string{"trace", "debug", "info", "warn", "error", "disabled"}

// Load reads a scotia.yaml file from disk. Missing keys keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with the built-in defaults.
func Default() *Config {
	return &Config{
		Ledger: LedgerConfig{
			Format:  "scotia",
			Workers: 4,
		},
		Output: OutputConfig{
			Color: true,
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

// ApplyEnv overrides cfg with any set environment variables. lookup is
// usually os.LookupEnv.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvFormat); ok && v != "" {
		cfg.Ledger.Format = v
	}
	if v, ok := lookup(EnvCategories); ok && v != "" {
		cfg.Categories.Path = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		cfg.Log.Level = v
	}
	if v, ok := lookup(EnvWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s %q: %w", EnvWorkers, v, err)
		}
		cfg.Ledger.Workers = n
	}
	return nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Ledger.Format) == "" {
		errs = append(errs, errors.New("ledger.format is empty"))
	}
	if c.Ledger.Workers < 1 {
		errs = append(errs, fmt.Errorf("ledger.workers must be at least 1, got %d", c.Ledger.Workers))
	}
	if !validLevel(c.Log.Level) {
		errs = append(errs, fmt.Errorf("log.level %q is not one of %s", c.Log.Level, strings.Join(logLevels, ", ")))
	}
	return errors.Join(errs...)
}

func validLevel(level string) bool {
	level = strings.ToLower(level)
	for _, l := range logLevels {
		if l == level {
			return true
		}
	}
	return false
}

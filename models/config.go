// Package models defines data structures for configuration and crawling.
package models

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Configuration validation errors.
var (
	ErrMissingTemplate     = errors.New("url_template is required")
	ErrTemplatePlaceholder = errors.New("url_template must contain the {n} placeholder")
	ErrMissingOutputDir    = errors.New("output_dir is required")
	ErrMissingManifest     = errors.New("manifest_path is required")
	ErrInvalidTimeout      = errors.New("timeout_sec must be at least 1")
)

// Config holds the runtime configuration for a crawl. The page range itself
// comes from CLI flags; everything here is site and filesystem layout.
type Config struct {
	URLTemplate  string        `yaml:"url_template"`
	OutputDir    string        `yaml:"output_dir"`
	ManifestPath string        `yaml:"manifest_path"`
	TimeoutSec   int           `yaml:"timeout_sec"`
	UserAgent    string        `yaml:"user_agent"`
	History      HistoryConfig `yaml:"history"`
}

// HistoryConfig controls the optional run-history database.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// DefaultConfig returns the compiled-in defaults used when no config file
// is present.
func DefaultConfig() *Config {
	return &Config{
		URLTemplate:  "https://ilibrary.ru/text/1099/p.{n}/index.html",
		OutputDir:    "dump",
		ManifestPath: "index.txt",
		TimeoutSec:   20,
		UserAgent:    "Mozilla/5.0 (compatible; pagedump/1.0)",
		History: HistoryConfig{
			Enabled: true,
			Path:    "pagedump.db",
		},
	}
}

// DefaultConfigFile is picked up from the working directory when no
// --config flag is given.
const DefaultConfigFile = "config.yaml"

// ResolveConfig loads the config file at path when given, otherwise
// config.yaml from the working directory when present, otherwise the
// compiled-in defaults.
func ResolveConfig(path string) (*Config, error) {
	if path != "" {
		return LoadConfig(path)
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return LoadConfig(DefaultConfigFile)
	}
	return DefaultConfig(), nil
}

// LoadConfig reads a YAML config file, applies it over the defaults and
// validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration for fatal mistakes.
func (c *Config) Validate() error {
	if c.URLTemplate == "" {
		return ErrMissingTemplate
	}
	if !strings.Contains(c.URLTemplate, "{n}") {
		return ErrTemplatePlaceholder
	}
	if c.OutputDir == "" {
		return ErrMissingOutputDir
	}
	if c.ManifestPath == "" {
		return ErrMissingManifest
	}
	if c.TimeoutSec < 1 {
		return ErrInvalidTimeout
	}
	return nil
}

// String gives a compact one-line form for logs.
func (c *Config) String() string {
	return fmt.Sprintf("template=%s out=%s manifest=%s timeout=%ds",
		c.URLTemplate, c.OutputDir, c.ManifestPath, c.TimeoutSec)
}

package models

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
url_template: "https://example.com/p.{n}/index.html"
output_dir: pages
manifest_path: manifest.txt
timeout_sec: 10
user_agent: "test-agent/1.0"
history:
  enabled: false
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	if cfg.URLTemplate != "https://example.com/p.{n}/index.html" {
		t.Errorf("URLTemplate = %q", cfg.URLTemplate)
	}
	if cfg.OutputDir != "pages" {
		t.Errorf("OutputDir = %q, want pages", cfg.OutputDir)
	}
	if cfg.TimeoutSec != 10 {
		t.Errorf("TimeoutSec = %d, want 10", cfg.TimeoutSec)
	}
	if cfg.History.Enabled {
		t.Error("History.Enabled = true, want false")
	}
}

func TestLoadConfig_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
url_template: "https://example.com/p.{n}/index.html"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}

	def := DefaultConfig()
	if cfg.OutputDir != def.OutputDir {
		t.Errorf("OutputDir = %q, want default %q", cfg.OutputDir, def.OutputDir)
	}
	if cfg.TimeoutSec != def.TimeoutSec {
		t.Errorf("TimeoutSec = %d, want default %d", cfg.TimeoutSec, def.TimeoutSec)
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("LoadConfig() on a missing file should fail")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"missing template", func(c *Config) { c.URLTemplate = "" }, ErrMissingTemplate},
		{"no placeholder", func(c *Config) { c.URLTemplate = "https://example.com/fixed" }, ErrTemplatePlaceholder},
		{"missing output dir", func(c *Config) { c.OutputDir = "" }, ErrMissingOutputDir},
		{"missing manifest", func(c *Config) { c.ManifestPath = "" }, ErrMissingManifest},
		{"zero timeout", func(c *Config) { c.TimeoutSec = 0 }, ErrInvalidTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
}

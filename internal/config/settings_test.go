package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromPathMissingFileUsesDefaults(t *testing.T) {
	cfg, err := loadFromPath(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("loadFromPath: %v", err)
	}
	if cfg.BaseURL() != defaultBaseURL {
		t.Fatalf("expected default base url, got %q", cfg.BaseURL())
	}
	if cfg.PageSize() != defaultPageSize {
		t.Fatalf("expected default page size, got %d", cfg.PageSize())
	}
	if cfg.LogLevel() != "info" {
		t.Fatalf("expected default log level, got %q", cfg.LogLevel())
	}
}

func TestLoadFromPathOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[api]\nbase_url = \"https://orders.example.com/api/\"\ntimeout_seconds = 30\n\n[ui]\npage_size = 25\n\n[logging]\nlevel = \"debug\"\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := loadFromPath(path)
	if err != nil {
		t.Fatalf("loadFromPath: %v", err)
	}
	if cfg.BaseURL() != "https://orders.example.com/api" {
		t.Fatalf("expected trimmed base url, got %q", cfg.BaseURL())
	}
	if cfg.RequestTimeoutSeconds() != 30 {
		t.Fatalf("expected timeout 30, got %d", cfg.RequestTimeoutSeconds())
	}
	if cfg.PageSize() != 25 {
		t.Fatalf("expected page size 25, got %d", cfg.PageSize())
	}
	if cfg.LogLevel() != "debug" {
		t.Fatalf("expected debug level, got %q", cfg.LogLevel())
	}
}

func TestLoadFromPathMalformedTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[api\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadFromPath(path); err == nil {
		t.Fatalf("expected error for malformed settings")
	}
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default("/tmp/stride.db")
	if cfg.Database.Path != "/tmp/stride.db" {
		t.Fatalf("unexpected db path %q", cfg.Database.Path)
	}
	if cfg.Logging.Level != "info" {
		t.Fatalf("unexpected log level %q", cfg.Logging.Level)
	}
	if cfg.UI.OwnerID != "default" || cfg.UI.ActivityLimit != 20 {
		t.Fatalf("unexpected ui defaults %#v", cfg.UI)
	}
	if cfg.Server.Bind != "127.0.0.1:8080" {
		t.Fatalf("unexpected bind %q", cfg.Server.Bind)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	defaults := Default("/tmp/stride.db")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"), defaults)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Path != defaults.Database.Path {
		t.Fatalf("expected default db path, got %q", cfg.Database.Path)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[database]
path = "/custom/stride.db"

[logging]
level = "debug"

[ui]
owner_id = "sam"
show_descriptions = false
activity_limit = 50
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path, Default("/tmp/default.db"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Database.Path != "/custom/stride.db" {
		t.Fatalf("unexpected db path %q", cfg.Database.Path)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected log level %q", cfg.Logging.Level)
	}
	if cfg.UI.OwnerID != "sam" || cfg.UI.ActivityLimit != 50 {
		t.Fatalf("unexpected ui config %#v", cfg.UI)
	}
	if cfg.UI.ShowDescriptions {
		t.Fatal("expected descriptions hidden from config override")
	}
	// Untouched sections keep their defaults.
	if cfg.Server.Bind != "127.0.0.1:8080" {
		t.Fatalf("unexpected bind %q", cfg.Server.Bind)
	}
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[database]
path = "/custom/stride.db"

[logging]
level = "loud"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if _, err := Load(path, Default("/tmp/default.db")); err == nil {
		t.Fatal("expected invalid log level error")
	}
}

func TestValidateRejectsEndpointCollision(t *testing.T) {
	cfg := Default("/tmp/stride.db")
	cfg.Server.APIEndpoint = "/same"
	cfg.Server.MCPEndpoint = "/same"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected endpoint collision error")
	}
}

func TestValidateRejectsNegativeActivityLimit(t *testing.T) {
	cfg := Default("/tmp/stride.db")
	cfg.UI.ActivityLimit = -1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected negative activity limit error")
	}
}

func TestEnsureConfigDir(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")
	if err := EnsureConfigDir(path); err != nil {
		t.Fatalf("EnsureConfigDir() error = %v", err)
	}
	info, err := os.Stat(filepath.Dir(path))
	if err != nil || !info.IsDir() {
		t.Fatalf("expected config dir, got %v %v", info, err)
	}
}

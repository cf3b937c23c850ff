package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadFromMissingReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	def := Default()
	if *cfg != *def {
		t.Errorf("got %+v, want defaults %+v", cfg, def)
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("default backend: got %q, want sqlite", cfg.Storage.Backend)
	}
}

func TestLoadFromOverridesAndExpands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[storage]
backend = "file"
path = "~/todo-data"

[log]
level = "debug"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	home, _ := os.UserHomeDir()
	if cfg.Storage.Backend != "file" {
		t.Errorf("Backend: got %q, want file", cfg.Storage.Backend)
	}
	if cfg.Storage.Path != filepath.Join(home, "todo-data") {
		t.Errorf("Path: got %q, want expanded home path", cfg.Storage.Path)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Level: got %q, want debug", cfg.Log.Level)
	}
	// unset keys keep their defaults
	if cfg.Log.Path != Default().Log.Path {
		t.Errorf("Log.Path: got %q, want default", cfg.Log.Path)
	}
}

func TestLoadFromInvalidTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	os.WriteFile(path, []byte("[storage\nbackend ="), 0644)

	_, err := LoadFrom(path)
	if err == nil || !strings.Contains(err.Error(), "parsing config file") {
		t.Errorf("LoadFrom invalid: got %v", err)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	cfg := &Config{
		Storage: StorageConfig{Backend: "memory", Path: "/tmp/unused"},
		Log:     LogConfig{Level: "warn", Path: "/tmp/todos.log"},
	}

	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if *loaded != *cfg {
		t.Errorf("got %+v, want %+v", loaded, cfg)
	}
}

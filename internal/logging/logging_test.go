package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdxmph/todos-tui/internal/config"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "todos.log")

	logger, closeFn, err := New(config.LogConfig{Level: "warn", Path: path}, false)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown", "key", "todos")
	if err := closeFn(); err != nil {
		t.Fatalf("close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "hidden") {
		t.Errorf("info line written at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "key=todos") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestNewDebugOverridesLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todos.log")

	logger, closeFn, err := New(config.LogConfig{Level: "error", Path: path}, true)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	logger.Debug("verbose")
	closeFn()

	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "verbose") {
		t.Errorf("debug line missing: %q", data)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, _, err := New(config.LogConfig{Level: "loud"}, false); err == nil {
		t.Error("expected error for unknown level")
	}
}

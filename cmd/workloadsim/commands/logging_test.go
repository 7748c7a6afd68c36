package commands

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MEKXH/workloadsim/internal/config"
)

func TestParseLogLevel(t *testing.T) {
	cases := []struct {
		config   string
		override string
		want     slog.Level
	}{
		{"", "", slog.LevelInfo},
		{"debug", "", slog.LevelDebug},
		{"info", "error", slog.LevelError},
		{"warn", "  ", slog.LevelWarn},
		{"WARNING", "", slog.LevelWarn},
	}
	for _, tc := range cases {
		got, err := parseLogLevel(tc.config, tc.override)
		if err != nil {
			t.Fatalf("parseLogLevel(%q, %q): %v", tc.config, tc.override, err)
		}
		if got != tc.want {
			t.Fatalf("parseLogLevel(%q, %q) = %v, want %v", tc.config, tc.override, got, tc.want)
		}
	}

	if _, err := parseLogLevel("loud", ""); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestConfigureLogger_WritesToFile(t *testing.T) {
	t.Cleanup(closeLogFile)
	path := filepath.Join(t.TempDir(), "logs", "workloadsim.log")

	cfg := config.DefaultConfig()
	cfg.Log.File = path
	if err := configureLogger(cfg, "debug", true); err != nil {
		t.Fatalf("configureLogger: %v", err)
	}
	slog.Debug("frame processed", "frame", 3)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	for _, want := range []string{"frame processed", "frame=3", "app=workloadsim"} {
		if !strings.Contains(string(data), want) {
			t.Fatalf("expected %q in log file, got:\n%s", want, data)
		}
	}
}

func TestConfigureLogger_InvalidOverride(t *testing.T) {
	if err := configureLogger(config.DefaultConfig(), "chatty", false); err == nil {
		t.Fatal("expected error for invalid override")
	}
}

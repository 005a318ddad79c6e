package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewDiscardsByDefault(t *testing.T) {
	log := Config{}.New()
	if log == nil {
		t.Fatal("expected a logger even with empty config")
	}
	// Must not panic and must not touch std streams.
	log.Info("hello", "k", "v")
}

func TestNewWritesToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "diag.log")
	log := Config{Path: path, Level: "debug"}.New()
	log.Debug("visible at debug level", "component", "test")

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("diagnostics file not created: %v", err)
	}
	if !strings.Contains(string(b), "visible at debug level") {
		t.Fatalf("message missing from diagnostics: %s", b)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

package factory

import (
	"path/filepath"
	"testing"
)

func TestNewSinkFromDSNEmpty(t *testing.T) {
	if _, err := NewSinkFromDSN("   "); err == nil {
		t.Fatal("expected error for empty DSN")
	}
}

func TestNewSinkFromDSNUnsupported(t *testing.T) {
	if _, err := NewSinkFromDSN("kafka://broker:9092/topic"); err == nil {
		t.Fatal("expected error for unsupported scheme")
	}
}

func TestNewSinkFromDSNSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.db")
	for _, dsn := range []string{"sqlite://" + path, path, "sqlite://:memory:"} {
		s, err := NewSinkFromDSN(dsn)
		if err != nil {
			t.Fatalf("NewSinkFromDSN(%q): %v", dsn, err)
		}
		if s == nil {
			t.Fatalf("nil sink for %q", dsn)
		}
		if c, ok := s.(interface{ Close() error }); ok {
			_ = c.Close()
		}
	}
}

func TestNewSinkFromDSNOpenSearch(t *testing.T) {
	s, err := NewSinkFromDSN("opensearch://localhost:9200/fleet-inventory")
	if err != nil {
		t.Fatalf("NewSinkFromDSN: %v", err)
	}
	if s == nil {
		t.Fatal("nil sink")
	}
}

func TestNewSinkFromDSNOpenSearchMissingHost(t *testing.T) {
	if _, err := NewSinkFromDSN("opensearch://"); err == nil {
		t.Fatal("expected error for missing host")
	}
}

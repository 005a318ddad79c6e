package sqlite

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/loykin/modsnoop/internal/record"
)

func testRecord() record.Record {
	return record.Record{
		Timestamp:  "03-01-2024 10:15:22.123456",
		Executable: "/usr/bin/app",
		JobID:      "12345",
		Host:       record.Host{Hostname: "node07"},
		Modules: map[string]string{
			"github.com/loykin/modsnoop": "(devel)",
			"modernc.org/sqlite":         "v1.39.0",
		},
	}
}

func TestSinkSendAndQuery(t *testing.T) {
	sink, err := New(":memory:")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer func() { _ = sink.Close() }()

	if err := sink.Send(context.Background(), testRecord()); err != nil {
		t.Fatalf("Send: %v", err)
	}

	var jobID, hostname, mods string
	row := sink.db.QueryRow(`SELECT job_id, hostname, modules FROM module_inventory`)
	if err := row.Scan(&jobID, &hostname, &mods); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if jobID != "12345" || hostname != "node07" {
		t.Errorf("row = %q/%q", jobID, hostname)
	}
	var decoded map[string]string
	if err := json.Unmarshal([]byte(mods), &decoded); err != nil {
		t.Fatalf("modules column not JSON: %v", err)
	}
	if decoded["modernc.org/sqlite"] != "v1.39.0" {
		t.Errorf("modules not preserved: %v", decoded)
	}
}

func TestNewEmptyDSN(t *testing.T) {
	if _, err := New("  "); err == nil {
		t.Fatal("expected error for empty DSN")
	}
}

func TestNewPrefixedDSN(t *testing.T) {
	sink, err := New("sqlite://:memory:")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	_ = sink.Close()
}

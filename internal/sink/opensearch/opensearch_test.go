package opensearch

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/loykin/modsnoop/internal/record"
)

func TestSinkSend(t *testing.T) {
	var gotPath string
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	s := New(srv.URL, "module-inventory")
	rec := record.Record{
		Timestamp: "03-01-2024 10:15:22.123456",
		JobID:     "12345",
		Host:      record.Host{Hostname: "node07"},
		Modules:   map[string]string{"github.com/loykin/modsnoop": "(devel)"},
	}
	if err := s.Send(context.Background(), rec); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if gotPath != "/module-inventory/_doc" {
		t.Errorf("path = %q", gotPath)
	}
	var decoded map[string]any
	if err := json.Unmarshal(gotBody, &decoded); err != nil {
		t.Fatalf("body not JSON: %v", err)
	}
	if decoded["job_id"] != "12345" {
		t.Errorf("job_id = %v", decoded["job_id"])
	}
}

func TestSinkSendErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	s := New(srv.URL, "module-inventory")
	if err := s.Send(context.Background(), record.Record{}); err == nil {
		t.Fatal("expected error for non-2xx status")
	}
}

package record

import (
	"encoding/json"

	"github.com/loykin/modsnoop/internal/env"
)

// TimestampFormat is the wall-clock layout used in the record body
// (MM-DD-YYYY HH:MM:SS.microseconds). Downstream analysis tooling
// parses this exact layout; do not change it.
const TimestampFormat = "01-02-2006 15:04:05.000000"

// Host describes the machine the record was produced on.
type Host struct {
	Hostname string `json:"hostname"`
	Platform string `json:"platform,omitempty"`
	Kernel   string `json:"kernel,omitempty"`
}

// Record is the single JSON envelope written at process shutdown.
// Key names are a persisted contract: external consumers parse this
// schema, so fields must remain stable once released.
type Record struct {
	Timestamp    string            `json:"timestamp"`
	Executable   string            `json:"executable"`
	SearchPath   []string          `json:"search_path"`
	SchedulerEnv env.Var           `json:"scheduler_env"`
	JobID        string            `json:"job_id"`
	GoVersion    string            `json:"go_version,omitempty"`
	Host         Host              `json:"host"`
	Modules      map[string]string `json:"modules"`
}

// Encode serializes the record as one compact JSON object terminated
// by a newline. The result is self-contained: no array wrapper, no
// trailing data.
func (r Record) Encode() ([]byte, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

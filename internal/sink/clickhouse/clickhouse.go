package clickhouse

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/loykin/modsnoop/internal/record"
)

// Sink sends inventory records to ClickHouse using the official Go
// client. The target table is expected to carry String columns
// (recorded_at, job_id, hostname, executable, modules).
type Sink struct {
	conn  driver.Conn
	table string
}

func New(addr, table string) (*Sink, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: "default",
			Username: "default",
			Password: "",
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	if err := conn.Ping(context.Background()); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &Sink{conn: conn, table: table}, nil
}

func (s *Sink) Send(ctx context.Context, r record.Record) error {
	mods, err := json.Marshal(r.Modules)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(
		`INSERT INTO %s (recorded_at, job_id, hostname, executable, modules) VALUES (?, ?, ?, ?, ?)`,
		s.table,
	)
	if err := s.conn.Exec(ctx, query,
		r.Timestamp, r.JobID, r.Host.Hostname, r.Executable, string(mods),
	); err != nil {
		return fmt.Errorf("failed to insert record into ClickHouse: %w", err)
	}
	return nil
}

func (s *Sink) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Package snooper implements the shutdown-time inventory collection:
// decide whether to log, snapshot process metadata, gather the module
// inventory, and write one JSON record under the shared log tree.
package snooper

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/shirou/gopsutil/v4/host"

	"github.com/loykin/modsnoop/internal/config"
	"github.com/loykin/modsnoop/internal/env"
	"github.com/loykin/modsnoop/internal/inventory"
	"github.com/loykin/modsnoop/internal/metrics"
	"github.com/loykin/modsnoop/internal/rank"
	"github.com/loykin/modsnoop/internal/record"
	"github.com/loykin/modsnoop/internal/sink"
)

// sinkTimeout bounds each secondary sink delivery; the process is
// already shutting down and must not hang on a slow aggregator.
const sinkTimeout = 5 * time.Second

// Options configures a Snooper. The zero value of every field has a
// working default.
type Options struct {
	Config   config.Config
	Logger   *slog.Logger
	Sinks    []sink.Sink
	Detector rank.Detector

	// Now overrides the wall clock, for tests.
	Now func() time.Time
	// Hostname overrides os.Hostname, for tests.
	Hostname func() (string, error)
}

// Snooper collects and writes the inventory record. It is invoked at
// most once per process, synchronously, on the shutdown path.
type Snooper struct {
	cfg      config.Config
	log      *slog.Logger
	sinks    []sink.Sink
	det      rank.Detector
	now      func() time.Time
	hostname func() (string, error)
}

func New(o Options) *Snooper {
	s := &Snooper{
		cfg:      o.Config,
		log:      o.Logger,
		sinks:    o.Sinks,
		det:      o.Detector,
		now:      o.Now,
		hostname: o.Hostname,
	}
	if s.log == nil {
		s.log = s.cfg.Log.New()
	}
	if s.det == nil {
		s.det = rank.EnvDetector{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.hostname == nil {
		s.hostname = os.Hostname
	}
	return s
}

// Collect runs the full pipeline: suppression checks, umask
// relaxation, metadata snapshot, destination resolution, inventory
// assembly, serialization. Any returned error is diagnostic only;
// callers on the shutdown path drop it.
func (s *Snooper) Collect(ctx context.Context) error {
	if s.cfg.Disabled() {
		metrics.IncSkip(metrics.ReasonDisabled)
		s.log.Debug("collection suppressed by toggle", "var", s.cfg.DisableVar)
		return nil
	}
	if rank.IsNonzero(s.det) {
		metrics.IncSkip(metrics.ReasonRank)
		s.log.Debug("collection suppressed on nonzero rank")
		return nil
	}

	// Files created below must stay appendable for other users
	// sharing the job directory. Must precede any create.
	relaxUmask()

	started := time.Now()
	now := s.now()

	rec := s.snapshot(now)
	rec.Modules = inventory.Collect()

	path, err := s.write(now, rec)
	if err != nil {
		metrics.IncCollectError()
		s.log.Warn("inventory record not written", "error", err)
		return err
	}
	metrics.IncRecordWritten()
	metrics.ObserveCollect(time.Since(started).Seconds())
	s.log.Debug("inventory record written", "path", path, "modules", len(rec.Modules))

	s.dispatch(ctx, rec)
	return nil
}

// snapshot captures the metadata envelope as of now.
func (s *Snooper) snapshot(now time.Time) record.Record {
	exe, err := os.Executable()
	if err != nil {
		exe = os.Args[0]
	}
	name, err := s.hostname()
	if err != nil {
		name = "unknown-host"
	}
	return record.Record{
		Timestamp:    now.Format(record.TimestampFormat),
		Executable:   exe,
		SearchPath:   filepath.SplitList(os.Getenv("PATH")),
		SchedulerEnv: env.FilterPrefix(os.Environ(), s.cfg.EnvPrefix),
		JobID:        s.cfg.JobID(),
		GoVersion:    inventory.GoVersion(),
		Host:         hostMeta(name),
	}
}

// write creates the dated job directory and the per-process file, and
// writes the encoded record. Directory creation is idempotent and
// tolerates concurrent creation by sibling processes.
func (s *Snooper) write(now time.Time, rec record.Record) (string, error) {
	dir := s.destDir(now)
	if err := os.MkdirAll(dir, 0o775); err != nil {
		return "", fmt.Errorf("create log dir %s: %w", dir, err)
	}

	path := filepath.Join(dir, fileName(rec.Host.Hostname, os.Getpid(), now))
	b, err := rec.Encode()
	if err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}

	// Append rather than truncate: pid reuse within one day on one
	// host could land on an existing name.
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o664)
	if err != nil {
		return "", fmt.Errorf("open log file %s: %w", path, err)
	}
	if _, err := f.Write(b); err != nil {
		_ = f.Close()
		return "", fmt.Errorf("write log file %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close log file %s: %w", path, err)
	}
	return path, nil
}

// dispatch delivers the record to secondary sinks. Failures are
// counted and logged, never returned: the file under the shared tree
// is the source of truth and has already been written.
func (s *Snooper) dispatch(ctx context.Context, rec record.Record) {
	for _, sk := range s.sinks {
		if sk == nil {
			continue
		}
		sctx, cancel := context.WithTimeout(ctx, sinkTimeout)
		if err := sk.Send(sctx, rec); err != nil {
			metrics.IncSinkError(fmt.Sprintf("%T", sk))
			s.log.Warn("sink delivery failed", "sink", fmt.Sprintf("%T", sk), "error", err)
		}
		cancel()
	}
}

func hostMeta(hostname string) record.Host {
	h := record.Host{Hostname: hostname}
	if info, err := host.Info(); err == nil && info != nil {
		h.Platform = info.Platform
		h.Kernel = info.KernelVersion
		if h.Hostname == "" {
			h.Hostname = info.Hostname
		}
	}
	return h
}

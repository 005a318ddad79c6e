// Package modsnoop records which software modules a process carried,
// once, at normal process shutdown. The record lands as one JSON file
// under a shared date/job-partitioned tree so fleet operators can
// audit actual library usage across scheduled jobs.
//
// The host entry point installs the hook during bootstrap and defers
// its firing:
//
//	h := modsnoop.Install(modsnoop.Options{})
//	defer h.Fire()
//
// Everything in this package is best-effort telemetry: no error,
// panic, or output ever reaches the host workload.
package modsnoop

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/loykin/modsnoop/internal/config"
	"github.com/loykin/modsnoop/internal/hook"
	"github.com/loykin/modsnoop/internal/metrics"
	"github.com/loykin/modsnoop/internal/rank"
	"github.com/loykin/modsnoop/internal/record"
	"github.com/loykin/modsnoop/internal/sink"
	"github.com/loykin/modsnoop/internal/sink/factory"
	"github.com/loykin/modsnoop/internal/snooper"
)

// Re-export core types for external consumers.
// These are aliases so conversions are zero-cost.

type Config = config.Config

type Record = record.Record

type Host = record.Host

type Sink = sink.Sink

type Hook = hook.Hook

// RankDetector is the optional parallel-runtime capability consulted
// for rank-zero-only logging.
type RankDetector = rank.Detector

// collectTimeout bounds the whole shutdown collection, sinks included.
const collectTimeout = 30 * time.Second

// DefaultConfig returns the zero-configuration defaults.
func DefaultConfig() Config { return config.Default() }

// LoadConfig reads a TOML configuration file over the defaults.
func LoadConfig(path string) (Config, error) { return config.Load(path) }

// NewSinkFromDSN builds a secondary record sink from a DSN string.
func NewSinkFromDSN(dsn string) (Sink, error) { return factory.NewSinkFromDSN(dsn) }

// RegisterMetrics registers the collector's Prometheus metrics on
// reg. The library never serves HTTP itself; exposure is the host's
// decision.
func RegisterMetrics(reg prometheus.Registerer) error { return metrics.Register(reg) }

// Options configures Install. The zero value gives the stock setup:
// default config, environment rank detection, file destination only.
type Options struct {
	// Config overrides the defaults. Contract fields left empty are
	// backfilled.
	Config Config
	// Sinks are extra destinations beyond Config's DSN list.
	Sinks []Sink
	// Detector overrides environment-based rank detection.
	Detector RankDetector
	// HandleInterrupts relays SIGINT through the hook so interrupted
	// jobs still leave a record.
	HandleInterrupts bool
}

// Install wires the collector and returns the process shutdown hook.
// It never fails: a sink DSN that cannot be resolved is logged to the
// diagnostics channel and dropped, and when the disable toggle is
// already set the returned hook is inert. Call once, from the process
// entry point, before the workload runs.
func Install(o Options) *Hook {
	cfg := o.Config.Normalized()
	log := cfg.Log.New()

	if cfg.Disabled() {
		// First toggle check: skip registration entirely. The hook
		// still exists so the host's defer stays unconditional.
		log.Debug("registration suppressed by toggle", "var", cfg.DisableVar)
		return hook.New(nil, nil, log)
	}

	sinks := o.Sinks
	for _, dsn := range cfg.Sinks {
		s, err := factory.NewSinkFromDSN(dsn)
		if err != nil {
			log.Warn("sink configuration dropped", "dsn", dsn, "error", err)
			continue
		}
		sinks = append(sinks, s)
	}

	sn := snooper.New(snooper.Options{
		Config:   cfg,
		Logger:   log,
		Sinks:    sinks,
		Detector: o.Detector,
	})

	collect := func(ctx context.Context) error {
		cctx, cancel := context.WithTimeout(ctx, collectTimeout)
		defer cancel()
		return sn.Collect(cctx)
	}

	// Second toggle check happens inside the hook at fire time.
	h := hook.New(collect, cfg.Disabled, log)
	if o.HandleInterrupts {
		h.HandleInterrupts()
	}
	return h
}

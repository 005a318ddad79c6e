// Package hook owns the process-wide shutdown callback. The callback
// fires at most once, on the normal termination path: the host entry
// point installs it during bootstrap and defers Fire in main. This is
// deliberately best-effort — a forced kill or runtime crash produces
// no record, and that trade-off is accepted over installing signal
// handlers that could fight with the host's own.
package hook

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
)

// interruptExitCode is the conventional exit status for a process
// terminated by SIGINT.
const interruptExitCode = 130

// Hook runs a single shutdown callback exactly once.
type Hook struct {
	once     sync.Once
	fn       func(context.Context) error
	disabled func() bool
	log      *slog.Logger

	sigCh chan os.Signal
}

// New builds a hook around fn. disabled is re-checked inside Fire, so
// a toggle set after installation still suppresses the callback; a
// nil disabled never suppresses. A nil log discards diagnostics.
func New(fn func(context.Context) error, disabled func() bool, log *slog.Logger) *Hook {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Hook{fn: fn, disabled: disabled, log: log}
}

// Fire runs the callback if it has not already run. Nothing escapes:
// errors are logged and dropped, panics are recovered. Safe to call
// from a defer in main and again from an interrupt relay.
func (h *Hook) Fire() {
	h.once.Do(func() {
		defer func() {
			if r := recover(); r != nil {
				h.log.Error("shutdown callback panicked", "panic", r)
			}
		}()
		if h.disabled != nil && h.disabled() {
			h.log.Debug("shutdown callback suppressed by toggle")
			return
		}
		if h.fn == nil {
			return
		}
		if err := h.fn(context.Background()); err != nil {
			h.log.Warn("shutdown callback failed", "error", err)
		}
	})
}

// HandleInterrupts relays SIGINT into the shutdown path so a handled
// interrupt still produces a record, then exits with the conventional
// interrupt status. signal.Notify is additive, so host-installed
// handlers keep receiving the signal too. Call at most once.
func (h *Hook) HandleInterrupts() {
	ch := make(chan os.Signal, 1)
	h.sigCh = ch
	signal.Notify(ch, os.Interrupt)
	go func() {
		if _, ok := <-ch; !ok {
			return
		}
		h.Fire()
		os.Exit(interruptExitCode)
	}()
}

// StopInterrupts detaches the interrupt relay, for hosts that install
// their own handling after bootstrap.
func (h *Hook) StopInterrupts() {
	if h.sigCh != nil {
		signal.Stop(h.sigCh)
		close(h.sigCh)
		h.sigCh = nil
	}
}

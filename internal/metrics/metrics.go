package metrics

import (
	"errors"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
)

// Skip reasons used as label values.
const (
	ReasonDisabled = "disabled"
	ReasonRank     = "rank"
)

// Package-level Prometheus collectors. The library never serves HTTP
// itself; hosts that expose a registry call Register against it.
var (
	regOK atomic.Bool

	recordsWritten = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "modsnoop",
			Name:      "records_written_total",
			Help:      "Number of inventory records successfully written.",
		},
	)
	skips = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "modsnoop",
			Name:      "skips_total",
			Help:      "Number of suppressed collections by reason.",
		}, []string{"reason"},
	)
	collectErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "modsnoop",
			Name:      "collect_errors_total",
			Help:      "Number of failed collection attempts.",
		},
	)
	sinkErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "modsnoop",
			Name:      "sink_errors_total",
			Help:      "Number of secondary sink delivery failures.",
		}, []string{"sink"},
	)
	collectDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "modsnoop",
			Name:      "collect_duration_seconds",
			Help:      "Observed duration of the shutdown collection.",
			Buckets:   prometheus.DefBuckets,
		},
	)
)

// Register registers all collectors on reg. Safe to call more than
// once; AlreadyRegisteredError is tolerated.
func Register(reg prometheus.Registerer) error {
	if reg == nil {
		return errors.New("nil registerer")
	}
	cs := []prometheus.Collector{recordsWritten, skips, collectErrors, sinkErrors, collectDuration}
	for _, c := range cs {
		if err := reg.Register(c); err != nil {
			are := prometheus.AlreadyRegisteredError{}
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	regOK.Store(true)
	return nil
}

// Registered reports whether Register completed at least once.
func Registered() bool { return regOK.Load() }

func IncRecordWritten()          { recordsWritten.Inc() }
func IncSkip(reason string)      { skips.WithLabelValues(reason).Inc() }
func IncCollectError()           { collectErrors.Inc() }
func IncSinkError(sink string)   { sinkErrors.WithLabelValues(sink).Inc() }
func ObserveCollect(sec float64) { collectDuration.Observe(sec) }

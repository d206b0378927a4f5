package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "tempconv"

// Metrics holds the Prometheus collectors for conversions, lookups and the usage log.
type Metrics struct {
	Conversions *prometheus.CounterVec // labels: scale={Celsius,Fahrenheit,Kelvin}
	ParseErrors *prometheus.CounterVec // labels: kind

	// Zip lookup metrics.
	Lookups        *prometheus.CounterVec // labels: outcome={success,error}
	LookupDuration prometheus.Histogram
	LookupCache    *prometheus.CounterVec // labels: result={hit,miss}

	UsageWrites *prometheus.CounterVec // labels: outcome={success,error}
}

func newMetrics() *Metrics {
	return &Metrics{
		Conversions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "conversions_total",
			Help:      "Successful conversions by input scale.",
		}, []string{"scale"}),
		ParseErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parse_errors_total",
			Help:      "Rejected temperature inputs by error kind.",
		}, []string{"kind"}),
		Lookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "zip_lookups_total",
			Help:      "Zip code temperature lookups by outcome.",
		}, []string{"outcome"}),
		LookupDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "zip_lookup_duration_seconds",
			Help:      "Weather API request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		LookupCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "zip_lookup_cache_total",
			Help:      "Zip lookup cache results.",
		}, []string{"result"}),
		UsageWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "usage_log_writes_total",
			Help:      "Usage history appends by outcome.",
		}, []string{"outcome"}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Conversions,
		m.ParseErrors,
		m.Lookups,
		m.LookupDuration,
		m.LookupCache,
		m.UsageWrites,
	)
	return m
}

// NewUnregisteredMetrics creates Metrics that no registry exposes. One-shot
// processes with no /metrics endpoint use it.
func NewUnregisteredMetrics() *Metrics {
	return newMetrics()
}

// NewMetricsForTesting creates unregistered Metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return NewUnregisteredMetrics()
}

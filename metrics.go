package ddns

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "r53ddns"

// Metrics records what a run did.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	ProviderAttempts *prometheus.CounterVec
	RecordUpdates    prometheus.Counter
	LastRunTimestamp prometheus.Gauge
	LastRunSuccess   prometheus.Gauge
	JitterSeconds    prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		ProviderAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "address_provider_attempts_total",
			Help:      "Requests made to public address providers, by provider URL and result.",
		}, []string{"provider", "result"}),
		RecordUpdates: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "record_updates_total",
			Help:      "Update calls issued to the DNS provider.",
		}),
		LastRunTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time at which the last run finished.",
		}),
		LastRunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_success",
			Help:      "1 if the last run left the record matching the public address.",
		}),
		JitterSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "jitter_seconds",
			Help:      "Seconds slept before contacting the network.",
		}),
	}
	m.registry.MustRegister(m.ProviderAttempts, m.RecordUpdates, m.LastRunTimestamp, m.LastRunSuccess, m.JitterSeconds)
	return m
}

// Gatherer exposes the metrics for a scrape handler or a test.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the metrics in the format read by node_exporter's textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}

func (m *Metrics) observeAttempt(url, result string) {
	if m == nil {
		return
	}
	m.ProviderAttempts.WithLabelValues(url, result).Inc()
}

func (m *Metrics) observeJitter(d time.Duration) {
	if m == nil {
		return
	}
	m.JitterSeconds.Set(d.Seconds())
}

func (m *Metrics) observeRun(outcome Outcome, err error) {
	if m == nil {
		return
	}
	m.LastRunTimestamp.SetToCurrentTime()
	if err != nil {
		m.LastRunSuccess.Set(0)
		return
	}
	m.LastRunSuccess.Set(1)
	if outcome == Updated {
		m.RecordUpdates.Inc()
	}
}

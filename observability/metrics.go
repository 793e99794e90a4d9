package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "weatherbot"

// Metrics holds the Prometheus collectors for message handling and provider calls.
type Metrics struct {
	MessagesHandled  *prometheus.CounterVec   // labels: outcome={ok,not_found,provider_error,start}
	RepliesFailed    prometheus.Counter
	ProviderRequests *prometheus.CounterVec   // labels: provider, outcome={success,not_found,error}
	ProviderDuration *prometheus.HistogramVec // labels: provider
	Enrichments      *prometheus.CounterVec   // labels: outcome={success,missing_sentinel,error}
	BotPolling       prometheus.Gauge
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.MessagesHandled,
		m.RepliesFailed,
		m.ProviderRequests,
		m.ProviderDuration,
		m.Enrichments,
		m.BotPolling,
	)
	return m
}

// NewMetricsForTesting creates unregistered metrics to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		MessagesHandled: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_handled_total",
			Help:      "Inbound messages handled, by outcome.",
		}, []string{"outcome"}),
		RepliesFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "replies_failed_total",
			Help:      "Outbound replies the transport failed to deliver.",
		}),
		ProviderRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "provider_requests_total",
			Help:      "External provider requests by provider and outcome.",
		}, []string{"provider", "outcome"}),
		ProviderDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "provider_request_duration_seconds",
			Help:      "External provider request duration in seconds.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"provider"}),
		Enrichments: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "enrichments_total",
			Help:      "Points-of-interest enrichment attempts by outcome.",
		}, []string{"outcome"}),
		BotPolling: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "bot_polling",
			Help:      "1 while the bot is polling for updates, 0 otherwise.",
		}),
	}
}

// ObserveProvider records one provider call.
func (m *Metrics) ObserveProvider(provider, outcome string, start time.Time) {
	if m == nil {
		return
	}
	m.ProviderRequests.WithLabelValues(provider, outcome).Inc()
	m.ProviderDuration.WithLabelValues(provider).Observe(time.Since(start).Seconds())
}

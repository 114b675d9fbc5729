package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// forecast service.
type Metrics struct {
	FetchRequests *prometheus.CounterVec // labels: outcome={success,error}
	FetchDuration prometheus.Histogram

	ParseOutcomes  *prometheus.CounterVec // labels: strategy={marker,heuristic,column,none}
	SlotsExtracted prometheus.Histogram
	UnknownIcons   prometheus.Counter

	SnapshotsPublished prometheus.Counter
	PublishErrors      prometheus.Counter

	RefresherRunning prometheus.Gauge

	ResolverCache    *prometheus.CounterVec // labels: result={hit,miss}
	ResolverRequests *prometheus.CounterVec // labels: outcome={success,error,empty}
}

// NewMetrics creates and registers all service metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "methu",
			Name:      "fetch_requests_total",
			Help:      "Forecast page fetches by outcome.",
		}, []string{"outcome"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "methu",
			Name:      "fetch_duration_seconds",
			Help:      "Duration of a forecast page fetch.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		ParseOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "methu",
			Name:      "parse_outcomes_total",
			Help:      "Parse results by the strategy that produced them; \"none\" means no forecast table was found.",
		}, []string{"strategy"}),
		SlotsExtracted: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "methu",
			Name:      "slots_extracted",
			Help:      "Number of forecast slots extracted per parse.",
			Buckets:   []float64{0, 1, 2, 4, 8, 16, 32, 64},
		}),
		UnknownIcons: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "methu",
			Name:      "unknown_icons_total",
			Help:      "Weather icon codes missing from the vocabulary.",
		}),
		SnapshotsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "methu",
			Name:      "snapshots_published_total",
			Help:      "Forecast snapshots written to Kafka.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "methu",
			Name:      "publish_errors_total",
			Help:      "Failed Kafka publishes.",
		}),
		RefresherRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "methu",
			Name:      "refresher_running",
			Help:      "1 when the refresh loop is active, 0 when shut down.",
		}),
		ResolverCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "methu",
			Name:      "resolver_cache_total",
			Help:      "Settlement resolver cache lookups by result.",
		}, []string{"result"}),
		ResolverRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "methu",
			Name:      "resolver_requests_total",
			Help:      "Settlement autocomplete requests by outcome.",
		}, []string{"outcome"}),
	}

	prometheus.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.ParseOutcomes,
		m.SlotsExtracted,
		m.UnknownIcons,
		m.SnapshotsPublished,
		m.PublishErrors,
		m.RefresherRunning,
		m.ResolverCache,
		m.ResolverRequests,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		FetchRequests:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "methu", Name: "fetch_requests_total"}, []string{"outcome"}),
		FetchDuration:      prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "methu", Name: "fetch_duration_seconds"}),
		ParseOutcomes:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "methu", Name: "parse_outcomes_total"}, []string{"strategy"}),
		SlotsExtracted:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "methu", Name: "slots_extracted"}),
		UnknownIcons:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "methu", Name: "unknown_icons_total"}),
		SnapshotsPublished: prometheus.NewCounter(prometheus.CounterOpts{Namespace: "methu", Name: "snapshots_published_total"}),
		PublishErrors:      prometheus.NewCounter(prometheus.CounterOpts{Namespace: "methu", Name: "publish_errors_total"}),
		RefresherRunning:   prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "methu", Name: "refresher_running"}),
		ResolverCache:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "methu", Name: "resolver_cache_total"}, []string{"result"}),
		ResolverRequests:   prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "methu", Name: "resolver_requests_total"}, []string{"outcome"}),
	}
}

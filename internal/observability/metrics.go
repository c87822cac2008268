package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "store_directory"

// Metrics holds the Prometheus counters, histograms, and gauges for a
// generation run.
type Metrics struct {
	RowsParsed   prometheus.Counter
	RowsDropped  prometheus.Counter
	Stores       prometheus.Gauge
	PagesWritten prometheus.Counter
	RunSuccess   prometheus.Gauge

	StageDuration *prometheus.HistogramVec // labels: stage={extract,parse,transform,render,load}

	// Geocoding metrics.
	GeocodeRequests *prometheus.CounterVec // labels: outcome={success,error,empty}
	GeocodeCache    *prometheus.CounterVec // labels: result={hit,miss}

	// Store feed metrics.
	FeedMessages prometheus.Counter
}

func newMetrics() *Metrics {
	return &Metrics{
		RowsParsed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_parsed_total",
			Help:      "Total CSV data rows parsed from the source sheet.",
		}),
		RowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_dropped_total",
			Help:      "Total rows dropped because no name column had a value.",
		}),
		Stores: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stores",
			Help:      "Number of stores in the last generated directory.",
		}),
		PagesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pages_written_total",
			Help:      "Total HTML pages written to the output directory.",
		}),
		RunSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_success",
			Help:      "1 when the last generation run succeeded, 0 otherwise.",
		}),
		StageDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "stage_duration_seconds",
			Help:      "Duration of each pipeline stage.",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"stage"}),
		GeocodeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_requests_total",
			Help:      "Geocoding API requests by outcome.",
		}, []string{"outcome"}),
		GeocodeCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "geocode_cache_total",
			Help:      "Geocoding cache lookups by result.",
		}, []string{"result"}),
		FeedMessages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_messages_total",
			Help:      "Total store records published to the Kafka feed.",
		}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.RowsParsed,
		m.RowsDropped,
		m.Stores,
		m.PagesWritten,
		m.RunSuccess,
		m.StageDuration,
		m.GeocodeRequests,
		m.GeocodeCache,
		m.FeedMessages,
	)
	return m
}

// NewMetricsForTesting creates unregistered Metrics to avoid "already
// registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

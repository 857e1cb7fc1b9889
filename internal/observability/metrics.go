package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "quakemap"

// Metrics holds the Prometheus counters, histograms, and gauges for the feed
// pipeline, the map presenter, and the marker publisher.
type Metrics struct {
	// Feed pipeline metrics.
	FeedFetches       *prometheus.CounterVec // labels: outcome={success,fetch_error,decode_error}
	FeedFetchDuration prometheus.Histogram
	RecordsDecoded    prometheus.Counter
	PointsByColor     *prometheus.CounterVec // labels: color

	// Presenter metrics.
	ViewPresented   prometheus.Gauge
	MarkersRendered prometheus.Gauge
	PageRenders     prometheus.Counter

	// Kafka publishing metrics.
	PointsPublished prometheus.Counter
	PublishErrors   prometheus.Counter
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()

	prometheus.MustRegister(
		m.FeedFetches,
		m.FeedFetchDuration,
		m.RecordsDecoded,
		m.PointsByColor,
		m.ViewPresented,
		m.MarkersRendered,
		m.PageRenders,
		m.PointsPublished,
		m.PublishErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		FeedFetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_fetches_total",
			Help:      "Feed fetch attempts by outcome.",
		}, []string{"outcome"}),
		FeedFetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "feed_fetch_duration_seconds",
			Help:      "Duration of a feed fetch including decode.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		RecordsDecoded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "records_decoded_total",
			Help:      "Earthquake records decoded from the feed.",
		}),
		PointsByColor: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_mapped_total",
			Help:      "Rendered points by depth color bucket.",
		}, []string{"color"}),
		ViewPresented: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "view_presented",
			Help:      "1 once the map view has been assembled, 0 before.",
		}),
		MarkersRendered: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "view_markers",
			Help:      "Number of markers in the presented view.",
		}),
		PageRenders: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "page_renders_total",
			Help:      "Map pages served.",
		}),
		PointsPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "points_published_total",
			Help:      "Rendered points written to the Kafka topic.",
		}),
		PublishErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "publish_errors_total",
			Help:      "Failed Kafka batch writes.",
		}),
	}
}

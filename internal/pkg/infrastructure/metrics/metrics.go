package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricPrefix = "smartbox_"

// Metrics is safe to use as a nil pointer, in which case nothing is recorded.
type Metrics struct {
	registry *prometheus.Registry

	readingsIngested  *prometheus.CounterVec
	readingsRejected  prometheus.Counter
	outOfOrder        prometheus.Counter
	ingestLatency     prometheus.Histogram
	alertsOpened      *prometheus.CounterVec
	alertsClosed      *prometheus.CounterVec
	alertWriteFailure prometheus.Counter
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		readingsIngested: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "readings_ingested_total",
				Help: "Total stored readings by verdict",
			},
			[]string{"verdict"},
		),
		readingsRejected: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "readings_rejected_total",
				Help: "Total readings rejected by validation",
			},
		),
		outOfOrder: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "readings_out_of_order_total",
				Help: "Total stored readings flagged as out of order",
			},
		),
		ingestLatency: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "ingest_latency_seconds",
				Help:    "Time spent storing and evaluating a reading",
				Buckets: prometheus.DefBuckets,
			},
		),
		alertsOpened: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "alerts_opened_total",
				Help: "Total alerts opened by source",
			},
			[]string{"source"},
		),
		alertsClosed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "alerts_acknowledged_total",
				Help: "Total alerts acknowledged by who acknowledged them",
			},
			[]string{"by"},
		),
		alertWriteFailure: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: metricPrefix + "alert_persistence_failures_total",
				Help: "Total failed alert writes",
			},
		),
	}

	m.registry.MustRegister(
		m.readingsIngested,
		m.readingsRejected,
		m.outOfOrder,
		m.ingestLatency,
		m.alertsOpened,
		m.alertsClosed,
		m.alertWriteFailure,
		prometheus.NewGoCollector(),
	)

	return m
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ReadingIngested(verdict string, outOfOrder bool, started time.Time) {
	if m == nil {
		return
	}
	m.readingsIngested.WithLabelValues(verdict).Inc()
	if outOfOrder {
		m.outOfOrder.Inc()
	}
	m.ingestLatency.Observe(time.Since(started).Seconds())
}

func (m *Metrics) ReadingRejected() {
	if m == nil {
		return
	}
	m.readingsRejected.Inc()
}

func (m *Metrics) AlertOpened(source string) {
	if m == nil {
		return
	}
	m.alertsOpened.WithLabelValues(source).Inc()
}

func (m *Metrics) AlertAcknowledged(by string) {
	if m == nil {
		return
	}
	m.alertsClosed.WithLabelValues(by).Inc()
}

func (m *Metrics) AlertPersistenceFailed() {
	if m == nil {
		return
	}
	m.alertWriteFailure.Inc()
}

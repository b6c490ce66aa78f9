// Package metrics exposes Prometheus collectors for the HTTP API,
// the live stream and the simulator.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "hydroponics"

// Metrics owns a private registry so several instances can coexist in tests.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal     *prometheus.CounterVec
	HTTPRequestDuration   *prometheus.HistogramVec
	MeasurementsRecorded  *prometheus.CounterVec
	StreamClients         prometheus.Gauge
	SimulatorTickDuration prometheus.Histogram
}

// New creates and registers all collectors, plus the Go and process collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by method, route and status code.",
		}, []string{"method", "route", "code"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP request handling in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		MeasurementsRecorded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "measurements_recorded_total",
			Help:      "Measurements stored, by source (api or simulator).",
		}, []string{"source"}),
		StreamClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "stream_clients",
			Help:      "Number of connected live-stream websocket clients.",
		}),
		SimulatorTickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "simulator_tick_duration_seconds",
			Help:      "Duration of one simulator tick in seconds.",
			Buckets:   prometheus.DefBuckets,
		}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.MeasurementsRecorded,
		m.StreamClients,
		m.SimulatorTickDuration,
	)
	return m
}

// Handler returns an HTTP handler that exposes the registered metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Middleware instruments gin routes. Unmatched paths share one label value
// to keep cardinality bounded.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.HTTPRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// MeasurementRecorded counts a stored reading. Safe on a nil receiver.
func (m *Metrics) MeasurementRecorded(source string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.MeasurementsRecorded.WithLabelValues(source).Add(float64(n))
}

// StreamOpened and StreamClosed track live websocket clients. Safe on a nil receiver.
func (m *Metrics) StreamOpened() {
	if m != nil {
		m.StreamClients.Inc()
	}
}

func (m *Metrics) StreamClosed() {
	if m != nil {
		m.StreamClients.Dec()
	}
}

// ObserveSimulatorTick records how long one simulator step took. Safe on a nil receiver.
func (m *Metrics) ObserveSimulatorTick(d time.Duration) {
	if m != nil {
		m.SimulatorTickDuration.Observe(d.Seconds())
	}
}

// Package metrics collects runtime memory statistics and exposes benchmark
// activity (spawned workers, operation durations, speedups) as Prometheus
// metrics.
package metrics

import (
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agbru/parbench/internal/algo"
)

const namespace = "parbench"

// Collector owns a private Prometheus registry, so that several collectors
// (one per test, for instance) never clash on registration.
type Collector struct {
	registry *prometheus.Registry
	workers  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	speedup  *prometheus.GaugeVec
	sizes    prometheus.Counter
	handler  http.Handler
}

var _ algo.Observer = (*Collector)(nil)

// NewCollector creates a Collector with Go runtime and process metrics
// registered next to the benchmark metrics.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		workers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "workers_spawned_total",
			Help:      "Goroutines spawned by parallel operations.",
		}, []string{"operation"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "operation_duration_seconds",
			Help:      "Wall-clock duration of timed operations.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 14),
		}, []string{"operation"}),
		speedup: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "speedup_ratio",
			Help:      "Baseline time divided by parallel time, per operation and size.",
		}, []string{"operation", "size"}),
		sizes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sizes_completed_total",
			Help:      "Dataset sizes fully benchmarked.",
		}),
	}
	c.registry.MustRegister(
		c.workers, c.duration, c.speedup, c.sizes,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.handler = promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
	return c
}

// WorkerSpawned implements algo.Observer.
func (c *Collector) WorkerSpawned(op algo.Operation) {
	c.workers.WithLabelValues(string(op)).Inc()
}

// ObserveOperation records the duration of one timed operation.
func (c *Collector) ObserveOperation(op string, d time.Duration) {
	c.duration.WithLabelValues(op).Observe(d.Seconds())
}

// SetSpeedup records the speedup of a parallel operation at a given size.
// Infinite ratios are not recorded.
func (c *Collector) SetSpeedup(op string, size int, ratio float64) {
	if math.IsInf(ratio, 0) || math.IsNaN(ratio) {
		return
	}
	c.speedup.WithLabelValues(op, strconv.Itoa(size)).Set(ratio)
}

// SizeCompleted counts a fully benchmarked dataset size.
func (c *Collector) SizeCompleted() {
	c.sizes.Inc()
}

// Handler returns the HTTP handler serving the registry in the Prometheus
// exposition format.
func (c *Collector) Handler() http.Handler {
	return c.handler
}

// WritePrometheus serves the metrics for a single request.
func (c *Collector) WritePrometheus(w http.ResponseWriter, r *http.Request) {
	c.handler.ServeHTTP(w, r)
}

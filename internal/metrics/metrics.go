// Package metrics collects the Prometheus metrics of the web server.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"net/http"
	"strconv"
	"time"
)

const namespace = "constellation"

// Collector holds the metrics of one server instance. Each collector has its own registry so that tests can create
// as many as they like.
type Collector struct {
	registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpDuration   *prometheus.HistogramVec
	interactions   *prometheus.CounterVec
	bursts         *prometheus.CounterVec
	contentReloads *prometheus.CounterVec
	viewers        prometheus.Gauge
}

func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		interactions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "interactions_total",
			Help:      "Total number of applied page interactions",
		}, []string{"action"}),
		bursts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "effect_bursts_total",
			Help:      "Total number of effect bursts by delivery outcome",
		}, []string{"outcome"}),
		contentReloads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "content_loads_total",
			Help:      "Total number of content document loads by result",
		}, []string{"result"}),
		viewers: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "effect_streams",
			Help:      "Number of open effect streams",
		}),
	}
	c.registry.MustRegister(
		c.httpRequests,
		c.httpDuration,
		c.interactions,
		c.bursts,
		c.contentReloads,
		c.viewers,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Handler serves the metrics in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// Registry returns the registry of the collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveRequest records a served request. route is the matched pattern, not the raw path, to bound cardinality.
func (c *Collector) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	c.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// Interaction counts an applied interaction.
func (c *Collector) Interaction(action string) {
	c.interactions.WithLabelValues(action).Inc()
}

// Bursts counts delivered and dropped effect bursts.
func (c *Collector) Bursts(delivered bool) {
	outcome := "dropped"
	if delivered {
		outcome = "delivered"
	}
	c.bursts.WithLabelValues(outcome).Inc()
}

// ContentLoad counts a content document load.
func (c *Collector) ContentLoad(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.contentReloads.WithLabelValues(result).Inc()
}

// StreamOpened tracks an open effect stream until the returned function is called.
func (c *Collector) StreamOpened() func() {
	c.viewers.Inc()
	return c.viewers.Dec
}

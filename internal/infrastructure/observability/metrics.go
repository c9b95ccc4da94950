// Package observability expone métricas Prometheus de HTTP y del catálogo.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/anbar/anbar-api/internal/application/catalog"
)

var _ catalog.Metrics = (*Collector)(nil)

// Collector agrupa las métricas de la aplicación sobre un registry propio.
type Collector struct {
	registry *prometheus.Registry

	// HTTP
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Catálogo
	CatalogReloads        prometheus.Counter
	CatalogReloadDuration prometheus.Histogram
	CatalogSize           *prometheus.GaugeVec
	MovesRejected         *prometheus.CounterVec
}

// NewCollector crea el collector con el namespace dado. Cada instancia tiene su registry.
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "route", "status"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
		CatalogReloads: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_reloads_total",
				Help:      "Total number of catalog snapshot reloads",
			},
		),
		CatalogReloadDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "catalog_reload_duration_seconds",
				Help:      "Catalog snapshot reload duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
		),
		CatalogSize: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "catalog_items",
				Help:      "Items in the current catalog snapshot",
			},
			[]string{"kind"},
		),
		MovesRejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "catalog_moves_rejected_total",
				Help:      "Catalog move requests rejected per item",
			},
			[]string{"reason"},
		),
	}

	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		c.HTTPRequests,
		c.HTTPDuration,
		c.CatalogReloads,
		c.CatalogReloadDuration,
		c.CatalogSize,
		c.MovesRejected,
	)
	return c
}

// Registry devuelve el registry del collector.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Handler expone las métricas en formato Prometheus.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveHTTP registra una petición atendida.
func (c *Collector) ObserveHTTP(method, route string, status int, d time.Duration) {
	c.HTTPRequests.WithLabelValues(method, route, http.StatusText(status)).Inc()
	c.HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// StoreReloaded implementa catalog.Metrics.
func (c *Collector) StoreReloaded(d time.Duration, categories, products int) {
	c.CatalogReloads.Inc()
	c.CatalogReloadDuration.Observe(d.Seconds())
	c.CatalogSize.WithLabelValues("categories").Set(float64(categories))
	c.CatalogSize.WithLabelValues("products").Set(float64(products))
}

// MoveRejected implementa catalog.Metrics.
func (c *Collector) MoveRejected(reason string) {
	c.MovesRejected.WithLabelValues(reason).Inc()
}

// Package metrics expone los contadores Prometheus del jardín.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics agrupa los colectores en un registry propio (no el global),
// así los tests pueden crear varios routers sin choques de registro.
type Metrics struct {
	Registry *prometheus.Registry

	ImageAttempts     *prometheus.CounterVec // stage, outcome
	ImageResolutions  *prometheus.CounterVec // stage final
	EnrichmentLookups *prometheus.CounterVec // kind, outcome
	StorageFailures   *prometheus.CounterVec // op
	Plants            prometheus.Gauge
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		ImageAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "garden",
			Name:      "image_stage_attempts_total",
			Help:      "Image resolution stage attempts by outcome.",
		}, []string{"stage", "outcome"}),
		ImageResolutions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "garden",
			Name:      "image_resolutions_total",
			Help:      "Resolved image references by winning stage.",
		}, []string{"stage"}),
		EnrichmentLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "garden",
			Name:      "enrichment_lookups_total",
			Help:      "Species database lookups by kind and outcome.",
		}, []string{"kind", "outcome"}),
		StorageFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "garden",
			Name:      "storage_failures_total",
			Help:      "Persistence slot failures by operation.",
		}, []string{"op"}),
		Plants: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "garden",
			Name:      "plants",
			Help:      "Plants currently in the collection.",
		}),
	}

	reg.MustRegister(
		m.ImageAttempts,
		m.ImageResolutions,
		m.EnrichmentLookups,
		m.StorageFailures,
		m.Plants,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Handler sirve /metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

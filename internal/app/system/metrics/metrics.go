// Package metrics holds the Prometheus collectors of the dashboard.
//
// Collectors live on a private registry so tests can create as many
// instances as they like. All methods are no-ops on a nil *Metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "cessionarios"

// Load results.
const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

// Metrics groups the collectors registered on Registry.
type Metrics struct {
	Registry *prometheus.Registry

	PortfolioLoads *prometheus.CounterVec
	CacheHits      prometheus.Counter
	LoadDuration   prometheus.Histogram
	StageDuration  *prometheus.HistogramVec
	Exports        prometheus.Counter
	ExportedRows   prometheus.Counter
}

// New creates the collectors on a fresh registry, together with the Go
// runtime and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		PortfolioLoads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "portfolio_loads_total",
			Help:      "Portfolio reads from storage by result.",
		}, []string{"result"}),
		CacheHits: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "portfolio_cache_hits_total",
			Help:      "Portfolio selections served from the loader cache.",
		}),
		LoadDuration: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "portfolio_load_duration_seconds",
			Help:      "Time to read and decode a portfolio file.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		StageDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "pipeline_stage_duration_seconds",
			Help:      "Duration of the normalize, filter and aggregate stages.",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"stage"}),
		Exports: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exports_total",
			Help:      "Spreadsheet exports served.",
		}),
		ExportedRows: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "exported_rows_total",
			Help:      "Rows written to spreadsheet exports.",
		}),
	}
}

// ObserveLoad records one storage read.
func (m *Metrics) ObserveLoad(result string, d time.Duration) {
	if m == nil {
		return
	}
	m.PortfolioLoads.WithLabelValues(result).Inc()
	if result == ResultOK {
		m.LoadDuration.Observe(d.Seconds())
	}
}

// CacheHit records a selection served from the cache.
func (m *Metrics) CacheHit() {
	if m == nil {
		return
	}
	m.CacheHits.Inc()
}

// ObserveStage records the duration of a pipeline stage.
func (m *Metrics) ObserveStage(stage string, d time.Duration) {
	if m == nil {
		return
	}
	m.StageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

// ObserveExport records one export of n rows.
func (m *Metrics) ObserveExport(n int) {
	if m == nil {
		return
	}
	m.Exports.Inc()
	m.ExportedRows.Add(float64(n))
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}

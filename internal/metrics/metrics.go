// Package metrics implements the observability hooks with Prometheus
// collectors.
//
// Collectors live on a private registry so tests and repeated CLI runs do
// not collide on the default one. A one-shot run can dump the registry in
// the node-exporter textfile format with WriteTextfile; the plot server
// exposes it through Handler.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/matzehuels/clawplot/pkg/observability"
)

const namespace = "clawplot"

// Metrics holds the collectors. It implements observability.PipelineHooks,
// observability.CacheHooks and observability.HTTPHooks.
type Metrics struct {
	reg *prometheus.Registry

	framesRead    *prometheus.CounterVec
	frameReadTime prometheus.Histogram
	frameCells    prometheus.Gauge
	figures       *prometheus.CounterVec
	renderTime    *prometheus.HistogramVec
	productFiles  *prometheus.CounterVec
	productBytes  *prometheus.CounterVec
	runs          *prometheus.CounterVec
	runDuration   prometheus.Gauge
	lastRunFiles  prometheus.Gauge
	cacheEvents   *prometheus.CounterVec
	cacheBytes    prometheus.Counter
	httpRequests  *prometheus.CounterVec
	httpLatency   *prometheus.HistogramVec
}

// New creates the collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		framesRead: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "frames_read_total",
			Help:      "Solver frames read, by result.",
		}, []string{"result"}),
		frameReadTime: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "frame_read_seconds",
			Help:      "Time spent reading and parsing one frame.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
		frameCells: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "frame_cells",
			Help:      "Number of cells in the most recently read frame.",
		}),
		figures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "figures_rendered_total",
			Help:      "Figures rendered, by figure number, format and result.",
		}, []string{"figno", "format", "result"}),
		renderTime: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "figure_render_seconds",
			Help:      "Time spent rendering one figure.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}, []string{"format"}),
		productFiles: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "products_written_total",
			Help:      "Files written to the plot directory, by kind.",
		}, []string{"kind"}),
		productBytes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "product_bytes_total",
			Help:      "Bytes written to the plot directory, by kind.",
		}, []string{"kind"}),
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "PrintFrames runs, by result.",
		}, []string{"result"}),
		runDuration: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_seconds",
			Help:      "Duration of the most recent run.",
		}),
		lastRunFiles: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_files",
			Help:      "Files written by the most recent run.",
		}),
		cacheEvents: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_events_total",
			Help:      "Cache lookups and writes, by key type and event.",
		}, []string{"key_type", "event"}),
		cacheBytes: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache.",
		}),
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Requests served, by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpLatency: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_seconds",
			Help:      "Request latency, by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// Register installs m as the global pipeline, cache and HTTP hooks.
func (m *Metrics) Register() {
	observability.SetPipelineHooks(m)
	observability.SetCacheHooks(m)
	observability.SetHTTPHooks(m)
}

// Registry returns the private registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{})
}

// WriteTextfile writes the registry to path in the node-exporter textfile
// format. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.reg)
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// OnFrameRead implements observability.PipelineHooks.
func (m *Metrics) OnFrameRead(_ context.Context, _ int, cells int, d time.Duration, err error) {
	m.framesRead.WithLabelValues(result(err)).Inc()
	if err == nil {
		m.frameReadTime.Observe(d.Seconds())
		m.frameCells.Set(float64(cells))
	}
}

// OnFigureRendered implements observability.PipelineHooks.
func (m *Metrics) OnFigureRendered(_ context.Context, figno int, format string, d time.Duration, err error) {
	m.figures.WithLabelValues(strconv.Itoa(figno), format, result(err)).Inc()
	if err == nil {
		m.renderTime.WithLabelValues(format).Observe(d.Seconds())
	}
}

// OnProductWritten implements observability.PipelineHooks.
func (m *Metrics) OnProductWritten(_ context.Context, kind string, size int) {
	m.productFiles.WithLabelValues(kind).Inc()
	m.productBytes.WithLabelValues(kind).Add(float64(size))
}

// OnRunComplete implements observability.PipelineHooks.
func (m *Metrics) OnRunComplete(_ context.Context, _ int, files int, d time.Duration, err error) {
	m.runs.WithLabelValues(result(err)).Inc()
	m.runDuration.Set(d.Seconds())
	m.lastRunFiles.Set(float64(files))
}

// OnCacheHit implements observability.CacheHooks.
func (m *Metrics) OnCacheHit(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "hit").Inc()
}

// OnCacheMiss implements observability.CacheHooks.
func (m *Metrics) OnCacheMiss(_ context.Context, keyType string) {
	m.cacheEvents.WithLabelValues(keyType, "miss").Inc()
}

// OnCacheSet implements observability.CacheHooks.
func (m *Metrics) OnCacheSet(_ context.Context, keyType string, size int) {
	m.cacheEvents.WithLabelValues(keyType, "set").Inc()
	m.cacheBytes.Add(float64(size))
}

// OnRequest implements observability.HTTPHooks.
func (m *Metrics) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpLatency.WithLabelValues(route).Observe(d.Seconds())
}

var (
	_ observability.PipelineHooks = (*Metrics)(nil)
	_ observability.CacheHooks    = (*Metrics)(nil)
	_ observability.HTTPHooks     = (*Metrics)(nil)
)

package metrics

import (
	"net/http"
	"strconv"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "docsite"

// PrometheusRecorder implements Recorder with Prometheus collectors
// registered on its own registry.
type PrometheusRecorder struct {
	reg *prom.Registry

	requests      *prom.CounterVec
	latency       *prom.HistogramVec
	renders       *prom.CounterVec
	indexDuration prom.Histogram
	indexRuns     *prom.CounterVec
	pagesIndexed  prom.Gauge
}

// NewPrometheusRecorder creates the collectors and registers them on reg.
// A nil reg gets a fresh registry.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	r := &PrometheusRecorder{
		reg: reg,
		requests: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by method, route and status code",
		}, []string{"method", "route", "code"}),
		latency: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route",
			Buckets:   prom.DefBuckets,
		}, []string{"route"}),
		renders: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "page_renders_total",
			Help:      "Documentation page renders by category and result",
		}, []string{"category", "result"}),
		indexDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "index_duration_seconds",
			Help:      "Duration of page index runs",
			Buckets:   prom.DefBuckets,
		}),
		indexRuns: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "index_runs_total",
			Help:      "Page index runs by outcome",
		}, []string{"outcome"}),
		pagesIndexed: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "pages_indexed",
			Help:      "Pages in the most recent successful index",
		}),
	}
	reg.MustRegister(r.requests, r.latency, r.renders, r.indexDuration, r.indexRuns, r.pagesIndexed)
	return r
}

// Registry returns the registry holding the collectors.
func (r *PrometheusRecorder) Registry() *prom.Registry { return r.reg }

// Handler serves the registry in the Prometheus exposition format.
func (r *PrometheusRecorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}

func (r *PrometheusRecorder) ObserveRequest(method, route string, status int, d time.Duration) {
	r.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.latency.WithLabelValues(route).Observe(d.Seconds())
}

func (r *PrometheusRecorder) IncPageRender(category, result string) {
	r.renders.WithLabelValues(category, result).Inc()
}

func (r *PrometheusRecorder) ObserveIndex(d time.Duration, pages int, err error) {
	r.indexDuration.Observe(d.Seconds())
	if err != nil {
		r.indexRuns.WithLabelValues("failed").Inc()
		return
	}
	r.indexRuns.WithLabelValues("success").Inc()
	r.pagesIndexed.Set(float64(pages))
}

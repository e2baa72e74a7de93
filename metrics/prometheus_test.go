package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	r := NewPrometheusRecorder(nil)
	r.ObserveRequest("GET", "/docs/*", 200, 20*time.Millisecond)
	r.ObserveRequest("GET", "/docs/*", 200, 30*time.Millisecond)
	r.IncPageRender("docs", ResultOK)
	r.IncPageRender("docs", ResultNotFound)
	r.ObserveIndex(time.Second, 42, nil)
	r.ObserveIndex(time.Second, 0, errors.New("scan failed"))

	assert.Equal(t, 2.0, testutil.ToFloat64(r.requests.WithLabelValues("GET", "/docs/*", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.renders.WithLabelValues("docs", ResultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.indexRuns.WithLabelValues("failed")))
	assert.Equal(t, 42.0, testutil.ToFloat64(r.pagesIndexed), "failed runs keep the last page count")

	mfs, err := r.Registry().Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, mfs)
}

func TestHandlerServesMetrics(t *testing.T) {
	r := NewPrometheusRecorder(nil)
	r.IncPageRender("docs", ResultOK)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `docsite_page_renders_total{category="docs",result="ok"} 1`)
}

func TestNoopRecorder(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveRequest("GET", "/", 200, time.Millisecond)
	r.IncPageRender("docs", ResultOK)
	r.ObserveIndex(time.Millisecond, 1, nil)
}

package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsByRouteAndStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/systems/:id/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for _, path := range []string{"/systems/1/", "/systems/2/", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/systems/:id/", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "unmatched", "404")))
}

func TestHandler_ExposesCustomCollectors(t *testing.T) {
	m := New()
	m.MeasurementRecorded("simulator", 3)
	m.MeasurementRecorded("api", 0)
	m.StreamOpened()
	m.StreamOpened()
	m.StreamClosed()
	m.ObserveSimulatorTick(5 * time.Millisecond)

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	text := string(body)
	assert.Contains(t, text, `hydroponics_measurements_recorded_total{source="simulator"} 3`)
	assert.False(t, strings.Contains(text, `source="api"`), "zero increments must not create a series")
	assert.Contains(t, text, "hydroponics_stream_clients 1")
	assert.Contains(t, text, "hydroponics_simulator_tick_duration_seconds_count 1")
	assert.Contains(t, text, "go_goroutines")
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.MeasurementRecorded("api", 1)
		m.StreamOpened()
		m.StreamClosed()
		m.ObserveSimulatorTick(time.Second)
	})
}

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestBookingMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.ObserveCreated("expert")
	m.ObserveCreated("expert")
	m.ObserveRejected("conflict")
	m.ObserveTransition("PENDING", "CONFIRMED")
	m.ObserveScheduleReplace(false)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.created.WithLabelValues("expert")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.rejected.WithLabelValues("conflict")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transitions.WithLabelValues("PENDING", "CONFIRMED")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.scheduleWrites.WithLabelValues("error")))
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *BookingMetrics
	assert.NotPanics(t, func() {
		m.ObserveCreated("expert")
		m.ObserveRejected("conflict")
		m.ObserveTransition("PENDING", "CANCELLED")
		m.ObserveScheduleReplace(true)
	})
}

func TestHTTPMiddlewareObservesRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, 1, testutil.CollectAndCount(m.latency))
}

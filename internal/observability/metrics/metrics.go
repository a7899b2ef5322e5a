package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// BookingMetrics exposes counters for the booking and scheduling flows.
type BookingMetrics struct {
	created        *prometheus.CounterVec
	rejected       *prometheus.CounterVec
	transitions    *prometheus.CounterVec
	scheduleWrites *prometheus.CounterVec
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		created: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "digitaloffices",
			Subsystem: "booking",
			Name:      "created_total",
			Help:      "Bookings created, by provider kind",
		}, []string{"provider_kind"}),
		rejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "digitaloffices",
			Subsystem: "booking",
			Name:      "rejected_total",
			Help:      "Booking creations rejected, by reason",
		}, []string{"reason"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "digitaloffices",
			Subsystem: "booking",
			Name:      "status_transitions_total",
			Help:      "Applied booking status transitions",
		}, []string{"from", "to"}),
		scheduleWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "digitaloffices",
			Subsystem: "availability",
			Name:      "schedule_replacements_total",
			Help:      "Weekly schedule replacements, by outcome",
		}, []string{"outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.created, m.rejected, m.transitions, m.scheduleWrites)
	return m
}

func (m *BookingMetrics) ObserveCreated(providerKind string) {
	if m == nil {
		return
	}
	m.created.WithLabelValues(providerKind).Inc()
}

func (m *BookingMetrics) ObserveRejected(reason string) {
	if m == nil {
		return
	}
	m.rejected.WithLabelValues(reason).Inc()
}

func (m *BookingMetrics) ObserveTransition(from, to string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(from, to).Inc()
}

func (m *BookingMetrics) ObserveScheduleReplace(ok bool) {
	if m == nil {
		return
	}
	outcome := "ok"
	if !ok {
		outcome = "error"
	}
	m.scheduleWrites.WithLabelValues(outcome).Inc()
}

// HTTPMetrics records request latency per route.
type HTTPMetrics struct {
	latency *prometheus.HistogramVec
}

func NewHTTPMetrics(reg prometheus.Registerer) *HTTPMetrics {
	m := &HTTPMetrics{
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "digitaloffices",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Latency of HTTP requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route", "status"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.latency)
	return m
}

// Middleware observes every request handled by the router.
func (m *HTTPMetrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m == nil {
			c.Next()
			return
		}
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.latency.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

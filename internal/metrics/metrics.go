package metrics

import (
	"database/sql"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "vet_appointments",
			Subsystem: "http",
			Name:      "inflight_requests",
			Help:      "Current number of in-flight HTTP requests.",
		},
	)

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vet_appointments",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "path", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "vet_appointments",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "path"},
	)

	appointmentEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "vet_appointments",
			Subsystem: "appointments",
			Name:      "events_total",
			Help:      "Appointment lifecycle events by action.",
		},
		[]string{"action"},
	)

	dbUp = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "vet_appointments",
			Subsystem: "db",
			Name:      "up",
			Help:      "1 when the last database healthcheck succeeded.",
		},
	)

	dbOpenConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "vet_appointments",
			Subsystem: "db",
			Name:      "open_connections",
			Help:      "Open connections in the pool.",
		},
	)

	dbInUse = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "vet_appointments",
			Subsystem: "db",
			Name:      "in_use_connections",
			Help:      "Connections currently checked out of the pool.",
		},
	)

	dbWaitCount = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "vet_appointments",
			Subsystem: "db",
			Name:      "wait_count",
			Help:      "Total number of connections waited for.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpInFlight,
		httpRequests,
		httpDuration,
		appointmentEvents,
		dbUp,
		dbOpenConnections,
		dbInUse,
		dbWaitCount,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request count and latency per route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.URL.Path == "/metrics" {
			c.Next()
			return
		}

		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpRequests.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// RecordAppointmentEvent counts a lifecycle action.
func RecordAppointmentEvent(action string) {
	appointmentEvents.WithLabelValues(action).Inc()
}

// SetDatabaseUp publishes the latest healthcheck outcome.
func SetDatabaseUp(up bool) {
	if up {
		dbUp.Set(1)
		return
	}
	dbUp.Set(0)
}

// ObservePool publishes connection pool statistics.
func ObservePool(stats sql.DBStats) {
	dbOpenConnections.Set(float64(stats.OpenConnections))
	dbInUse.Set(float64(stats.InUse))
	dbWaitCount.Set(float64(stats.WaitCount))
}

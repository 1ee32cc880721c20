package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks API requests issued by the gateway
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_api_requests_total",
			Help: "Total number of API requests issued by the gateway",
		},
		[]string{"method", "path", "status"},
	)

	// RequestDuration tracks API request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// CircuitBreakerState tracks circuit breaker state (0=closed, 1=open, 2=half-open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "storefront_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"circuit"},
	)

	// CircuitBreakerFailures tracks circuit breaker failures
	CircuitBreakerFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_circuit_breaker_failures_total",
			Help: "Total number of circuit breaker failures",
		},
		[]string{"circuit"},
	)

	// CartOpsTotal tracks cart engine operations by outcome
	CartOpsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_cart_operations_total",
			Help: "Total number of cart operations",
		},
		[]string{"operation", "result"},
	)

	// PollFailuresTotal tracks background refresh failures by resource
	PollFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_poll_failures_total",
			Help: "Total number of background poll failures",
		},
		[]string{"resource"},
	)

	// NotificationsUnread tracks the current unread notification count per user
	NotificationsUnread = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "storefront_notifications_unread",
			Help: "Current number of unread notifications per user",
		},
		[]string{"user"},
	)

	// ServedTotal tracks HTTP requests served by the dev API
	ServedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storefront_fakeapi_requests_total",
			Help: "Total number of HTTP requests served by the dev API",
		},
		[]string{"service", "method", "endpoint", "status"},
	)

	// ServedDuration tracks dev API request duration
	ServedDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storefront_fakeapi_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "endpoint"},
	)
)

// GinMiddleware creates a Gin middleware for automatic metrics collection
// on the dev API server.
func GinMiddleware(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		elapsed := time.Since(start).Seconds()
		status := strconv.Itoa(c.Writer.Status())

		ServedTotal.WithLabelValues(serviceName, c.Request.Method, c.FullPath(), status).Inc()
		ServedDuration.WithLabelValues(serviceName, c.Request.Method, c.FullPath()).Observe(elapsed)
	}
}

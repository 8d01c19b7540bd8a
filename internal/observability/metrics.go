// Package observability exposes Prometheus metrics for the application.
package observability

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "myboard_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// SessionsStarted counts sessions created by successful logins.
	SessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "myboard_sessions_started_total",
		Help: "Total number of sessions created by successful logins",
	})

	// LoginFailures counts failed login attempts by internal reason.
	// The reason label is server-side only; responses never distinguish them.
	LoginFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "myboard_login_failures_total",
		Help: "Total number of failed login attempts by reason",
	}, []string{"reason"})
)

// InitMetrics creates the Prometheus HTTP middleware for the given service name.
func InitMetrics(service string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(service)
}

// MetricsMiddleware returns the Fiber handler that records per-request metrics.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}

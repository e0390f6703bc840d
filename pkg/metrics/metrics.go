package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodybuddy_http_requests_total",
			Help: "Total number of HTTP requests by route, method and status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "foodybuddy_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	// Suggestion pipeline
	SuggestionStageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "foodybuddy_suggestion_stage_duration_seconds",
			Help:    "Duration of each suggestion pipeline stage",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"stage", "outcome"},
	)

	ExpansionCacheRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodybuddy_expansion_cache_requests_total",
			Help: "Query expansion cache lookups by result (hit, miss, error)",
		},
		[]string{"result"},
	)

	// Circuit breakers
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "foodybuddy_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodybuddy_circuit_breaker_transitions_total",
			Help: "Circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodybuddy_circuit_breaker_requests_total",
			Help: "Requests through a circuit breaker by result (success, failure, rejected)",
		},
		[]string{"name", "result"},
	)

	// Auth
	LoginAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodybuddy_login_attempts_total",
			Help: "Login attempts by result",
		},
		[]string{"result"},
	)

	RateLimitRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodybuddy_rate_limit_rejections_total",
			Help: "Requests rejected by the rate limiter",
		},
		[]string{"route"},
	)
)

// RecordHTTPRequest records a finished request. route is the gin route
// template, never the raw path, to keep label cardinality bounded.
func RecordHTTPRequest(method, route string, status int, d time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func ObserveStage(stage string, err error, d time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	SuggestionStageDuration.WithLabelValues(stage, outcome).Observe(d.Seconds())
}

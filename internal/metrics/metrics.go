package metrics

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "bookstore"

// Auth outcomes
const (
	AuthLoginSucceeded = "login_succeeded"
	AuthLoginFailed    = "login_failed"
	AuthAuthorized     = "authorized"
	AuthMissingToken   = "missing_token"
	AuthTokenExpired   = "token_expired"
	AuthTokenInvalid   = "token_invalid"
	AuthForbidden      = "forbidden"
)

var (
	registerOnce sync.Once

	httpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by method, route and status",
	}, []string{"method", "route", "status"})
	httpDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Histogram of HTTP request durations in seconds by method and route",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})
	authOutcomes = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_outcomes_total",
		Help:      "Authentication and authorization outcomes",
	}, []string{"outcome"})
	commits = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "repository_commits_total",
		Help:      "Unit of work commits by table and result",
	}, []string{"table", "result"})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, authOutcomes, commits)
	})
}

// Handler serves the default registry
func Handler() http.Handler {
	return promhttp.Handler()
}

func ObserveHTTPRequest(method, route string, status int, d time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func IncAuthOutcome(outcome string) { authOutcomes.WithLabelValues(outcome).Inc() }

// IncCommit records a Save; result is "affected", "noop" or "failed"
func IncCommit(table, result string) { commits.WithLabelValues(table, result).Inc() }

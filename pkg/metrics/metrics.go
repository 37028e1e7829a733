package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Cache metrics
	OperationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sodium_operations_total",
			Help: "Total number of cache operations executed",
		},
	)

	CacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sodium_cache_hits_total",
			Help: "Total number of GET operations that found their key",
		},
	)

	CacheMissesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sodium_cache_misses_total",
			Help: "Total number of GET operations that missed",
		},
	)

	KeysTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sodium_keys_total",
			Help: "Current number of keys in the cache",
		},
	)

	// Server metrics
	ConnectionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "sodium_connections_active",
			Help: "Number of currently open client connections",
		},
	)

	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sodium_requests_total",
			Help: "Total number of requests by command and status",
		},
		[]string{"command", "status"},
	)

	RequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sodium_request_duration_seconds",
			Help:    "Request duration from parse to response in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Dispatch metrics
	DispatchFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sodium_dispatch_failures_total",
			Help: "Total number of tasks that could not be enqueued",
		},
	)
)

func init() {
	prometheus.MustRegister(OperationsTotal)
	prometheus.MustRegister(CacheHitsTotal)
	prometheus.MustRegister(CacheMissesTotal)
	prometheus.MustRegister(KeysTotal)
	prometheus.MustRegister(ConnectionsActive)
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(DispatchFailuresTotal)
}

// Handler returns the Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve exposes /metrics on addr. Blocks; run it on its own goroutine.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	return http.ListenAndServe(addr, mux)
}

// Timer is a helper for timing operations
type Timer struct {
	start time.Time
}

// NewTimer creates a new timer
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the duration to a histogram
func (t *Timer) ObserveDuration(histogram prometheus.Histogram) {
	histogram.Observe(time.Since(t.start).Seconds())
}

// Duration returns the elapsed time since timer started
func (t *Timer) Duration() time.Duration {
	return time.Since(t.start)
}

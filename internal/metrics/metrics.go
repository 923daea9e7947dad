// Package metrics exposes Prometheus instrumentation for the HTTP API and
// the ephemeris computations behind it.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Computation kinds.
const (
	KindSunPosition      = "sun_position"
	KindSunTimes         = "sun_times"
	KindMoonPosition     = "moon_position"
	KindMoonIllumination = "moon_illumination"
	KindMoonTimes        = "moon_times"
	KindAlmanac          = "almanac"
)

var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "almanac_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"path", "method", "code"},
	)

	httpDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "almanac_http_duration_seconds",
			Help:    "HTTP request duration in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method"},
	)

	computationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "almanac_computations_total",
			Help: "Total number of ephemeris computations by kind.",
		},
		[]string{"kind"},
	)

	missingEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "almanac_missing_events_total",
			Help: "Sun events reported as not occurring, by event name.",
		},
		[]string{"event"},
	)
)

func init() {
	prometheus.MustRegister(httpRequestsTotal)
	prometheus.MustRegister(httpDurationSeconds)
	prometheus.MustRegister(computationsTotal)
	prometheus.MustRegister(missingEventsTotal)
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveComputation counts one computation of the given kind.
func ObserveComputation(kind string) {
	computationsTotal.WithLabelValues(kind).Inc()
}

// ObserveMissingEvents counts sun events that did not occur.
func ObserveMissingEvents(names []string) {
	for _, name := range names {
		missingEventsTotal.WithLabelValues(name).Inc()
	}
}

// knownRoutes are recorded under their own path label.
var knownRoutes = map[string]bool{
	"/":                         true,
	"/healthz":                  true,
	"/readyz":                   true,
	"/metrics":                  true,
	"/api/v1/sun/position":      true,
	"/api/v1/sun/times":         true,
	"/api/v1/moon/position":     true,
	"/api/v1/moon/illumination": true,
	"/api/v1/moon/times":        true,
	"/api/v1/almanac":           true,
}

// normalizeRoute bounds label cardinality; unknown paths collapse to "other".
func normalizeRoute(path string) string {
	if knownRoutes[path] {
		return path
	}
	return "other"
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and duration for each request.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		code := strconv.Itoa(rw.statusCode)
		path := normalizeRoute(r.URL.Path)

		httpRequestsTotal.WithLabelValues(path, r.Method, code).Inc()
		httpDurationSeconds.WithLabelValues(path, r.Method).Observe(duration)
	})
}

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trackd_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
	invitationEvents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trackd_invitation_events_total",
			Help: "Total invitation lifecycle events by outcome",
		},
		[]string{"event", "success"},
	)
	identifierAllocations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trackd_identifier_allocations_total",
			Help: "Total identifier allocations by scope and outcome",
		},
		[]string{"scope", "success"},
	)
)

// PrometheusMiddleware records request duration.
func PrometheusMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		duration := time.Since(start).Seconds()
		status := strconv.Itoa(ww.Status())
		path := r.URL.Path
		if path == "" {
			path = "/"
		}
		httpRequestDuration.WithLabelValues(r.Method, path, status).Observe(duration)
	})
}

// RecordInvitationEvent records an invitation lifecycle event.
func RecordInvitationEvent(event string, success bool) {
	invitationEvents.WithLabelValues(event, strconv.FormatBool(success)).Inc()
}

// RecordAllocation records an identifier allocation attempt for a scope.
func RecordAllocation(scope string, success bool) {
	identifierAllocations.WithLabelValues(scope, strconv.FormatBool(success)).Inc()
}

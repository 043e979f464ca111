package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"ems/internal/platform/metrics"
)

// Metrics records request counts and latency, labelled by the chi route
// pattern so /api/employees/42 and /api/employees/7 share one series.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		path := chi.RouteContext(r.Context()).RoutePattern()
		if path == "" {
			path = "unmatched"
		}
		metrics.RequestsTotal.WithLabelValues(r.Method, path, strconv.Itoa(recorder.status)).Inc()
		metrics.RequestDuration.WithLabelValues(r.Method, path).Observe(time.Since(start).Seconds())
	})
}

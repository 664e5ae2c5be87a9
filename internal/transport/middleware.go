package transport

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ptrack/beats/internal/metrics"
)

// requestMetrics logs each request and records it in the request counter.
// The metric path label uses the chi route pattern so that IDs do not
// explode the label cardinality.
func requestMetrics(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			pattern := chi.RouteContext(r.Context()).RoutePattern()
			if pattern == "" {
				pattern = r.URL.Path
			}
			metrics.HTTPRequests.WithLabelValues(
				r.Method, pattern, strconv.Itoa(ww.Status()),
			).Inc()

			if logger != nil {
				logger.Debug("request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"duration", time.Since(start),
				)
			}
		})
	}
}

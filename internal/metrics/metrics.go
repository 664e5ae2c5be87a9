// Package metrics exposes Prometheus instrumentation for the timer and API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	TimerStarts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "beats_timer_starts_total",
			Help: "Total timers started",
		},
	)

	TimerStops = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "beats_timer_stops_total",
			Help: "Total timers stopped",
		},
	)

	TimerRejections = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beats_timer_rejections_total",
			Help: "Timer transitions rejected by validation",
		},
		[]string{"reason"},
	)

	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "beats_http_requests_total",
			Help: "Total HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		TimerStarts,
		TimerStops,
		TimerRejections,
		HTTPRequests,
	)
}

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

package restserver

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "citibike_dashboard_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "citibike_dashboard_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "citibike_dashboard_http_requests_in_flight",
			Help: "Current number of HTTP requests being processed",
		},
	)

	pageRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "citibike_dashboard_page_renders_total",
			Help: "Page renders by page and outcome",
		},
		[]string{"page", "outcome"},
	)

	missingAssetsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "citibike_dashboard_missing_assets_total",
			Help: "Requests for pipeline artifacts that could not be read",
		},
		[]string{"asset"},
	)
)

func recordHTTPMetrics(method, route string, status int, duration time.Duration) {
	s := strconv.Itoa(status)
	httpRequestsTotal.WithLabelValues(method, route, s).Inc()
	httpRequestDuration.WithLabelValues(method, route, s).Observe(duration.Seconds())
}

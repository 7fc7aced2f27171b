// Package metrics exposes Prometheus collectors for the dashboard server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "dashboard_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "route"},
	)

	// Snapshot metrics
	snapshotsComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_snapshots_total",
			Help: "Total number of dashboard snapshots computed",
		},
		[]string{"driver", "result"},
	)

	snapshotDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "dashboard_snapshot_duration_seconds",
			Help:    "Time to load records and compute a dashboard snapshot",
			Buckets: []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 5},
		},
	)

	recordsInSnapshot = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dashboard_snapshot_records",
			Help: "Number of patient records in the latest snapshot",
		},
	)

	insightsFired = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dashboard_insights_fired_total",
			Help: "Insight rules that matched at least one record, per snapshot",
		},
		[]string{"rule"},
	)

	storeReloads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dashboard_store_reloads_total",
			Help: "Number of times the cached record snapshot was discarded",
		},
	)
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request counts and latency per route template.
func Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}
			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
			httpRequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// RecordSnapshot records one snapshot computation.
func RecordSnapshot(driver string, records int, d time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	snapshotsComputed.WithLabelValues(driver, result).Inc()
	snapshotDuration.Observe(d.Seconds())
	if err == nil {
		recordsInSnapshot.Set(float64(records))
	}
}

// RecordInsight counts a fired insight rule.
func RecordInsight(rule string) {
	insightsFired.WithLabelValues(rule).Inc()
}

// RecordReload counts a snapshot cache reset.
func RecordReload() {
	storeReloads.Inc()
}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultOK       = "ok"
	ResultNotFound = "not_found"
	ResultError    = "error"
)

var (
	// Total HTTP requests partitioned by method, route, and status code
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	// Request duration in seconds partitioned by method, route, and status code
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	HTTPInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	ClicksRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "biolink_clicks_recorded_total",
			Help: "Click recording attempts by result",
		},
		[]string{"result"},
	)

	// kind is link or collection
	PositionWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "biolink_position_writes_total",
			Help: "Row writes issued by ordering operations",
		},
		[]string{"kind", "result"},
	)

	Reconciles = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "biolink_board_reconciles_total",
			Help: "Boards re-fetched after a partially failed write batch",
		},
	)
)

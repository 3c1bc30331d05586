package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Web server metrics.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kirill_http_requests_total",
		Help: "Total HTTP requests by route, method, and status code",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "kirill_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"route", "method"})

	RateLimitHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kirill_rate_limit_hits_total",
		Help: "Total rate limit rejections by surface",
	}, []string{"surface"})

	CorrectionSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kirill_correction_submissions_total",
		Help: "Correction submissions by result",
	}, []string{"result"})
)

// Conversion metrics, shared by every surface that calls the engine.
var (
	ConversionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kirill_conversions_total",
		Help: "Texts converted by surface",
	}, []string{"surface"})

	WordsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kirill_words_total",
		Help: "Words converted by the engine path that produced them",
	}, []string{"path"})

	ConversionInputBytes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kirill_conversion_input_bytes",
		Help:    "Size of texts submitted for conversion",
		Buckets: prometheus.ExponentialBuckets(8, 4, 7),
	})
)

// Worker metrics.
var (
	CleanupCycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kirill_worker_cleanup_duration_seconds",
		Help:    "Duration of each retention cleanup cycle",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 30},
	})

	RowsDeletedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kirill_worker_rows_deleted_total",
		Help: "History rows removed by the retention worker",
	}, []string{"table"})
)

// Database pool metrics (gauges updated periodically, PostgreSQL only).
var (
	DBPoolTotalConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kirill_db_pool_total_conns",
		Help: "Total number of connections in the pool",
	})

	DBPoolIdleConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kirill_db_pool_idle_conns",
		Help: "Number of idle connections in the pool",
	})

	DBPoolAcquiredConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kirill_db_pool_acquired_conns",
		Help: "Number of acquired connections in the pool",
	})

	DBPoolMaxConns = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "kirill_db_pool_max_conns",
		Help: "Max connections configured for the pool",
	})
)

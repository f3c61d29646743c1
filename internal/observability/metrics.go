package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"gorm.io/gorm"
)

var (
	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cloudzz_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cloudzz_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// MediaRequestsTotal counts image-serving decisions by outcome
	// (allowed, unauthorized, forbidden, not_found, bad_request).
	MediaRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cloudzz_media_requests_total",
		Help: "Total number of image-serving requests by access decision",
	}, []string{"decision"})

	// MediaBytesServed counts bytes streamed from the media store.
	MediaBytesServed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cloudzz_media_bytes_served_total",
		Help: "Total number of media bytes served",
	})

	// UploadsTotal counts accepted file uploads.
	UploadsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cloudzz_uploads_total",
		Help: "Total number of accepted file uploads",
	})

	// LinkReordersTotal counts bulk reorder outcomes (applied, rejected).
	LinkReordersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cloudzz_link_reorders_total",
		Help: "Total number of bulk link reorder requests by outcome",
	}, []string{"outcome"})

	// PublicProfileViews counts public profile page fetches by cache result.
	PublicProfileViews = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cloudzz_public_profile_views_total",
		Help: "Total number of public profile fetches by cache result",
	}, []string{"cache"})
)

// DatabaseMetrics wraps DB access for recording query latency.
type DatabaseMetrics struct {
	db *gorm.DB
}

// NewDatabaseMetrics returns a new DatabaseMetrics instance.
func NewDatabaseMetrics(db *gorm.DB) *DatabaseMetrics {
	return &DatabaseMetrics{db: db}
}

// ObserveQuery records the latency of a database query.
func (m *DatabaseMetrics) ObserveQuery(operation, table string, start time.Time) {
	latency := time.Since(start).Seconds()
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(latency)
}

// TrackQuery returns a function that records query latency when called (e.g. defer).
func (m *DatabaseMetrics) TrackQuery(operation, table string) func() {
	start := time.Now()
	return func() {
		m.ObserveQuery(operation, table, start)
	}
}

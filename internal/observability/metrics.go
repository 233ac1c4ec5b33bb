// Package observability provides Prometheus metrics for monitoring.
package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the hub.
type Metrics struct {
	// Registry metrics
	TrophiesCreated prometheus.Counter
	TrophiesEdited  prometheus.Counter

	// Mint engine metrics
	MintsAuthorized *prometheus.CounterVec // by rule kind
	MintsRejected   *prometheus.CounterVec // by rejection reason
	TokensMinted    prometheus.Counter     // serials issued

	// Migration metrics
	RecordsMigrated prometheus.Counter

	// HTTP metrics
	RequestDuration *prometheus.HistogramVec // by endpoint
}

// NewMetrics creates a new Metrics instance with all metrics registered.
func NewMetrics(namespace string) *Metrics {
	if namespace == "" {
		namespace = "trophy_hub"
	}

	return &Metrics{
		TrophiesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "trophies_created_total",
			Help:      "Total number of trophies created",
		}),
		TrophiesEdited: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "registry",
			Name:      "trophies_edited_total",
			Help:      "Total number of trophy metadata edits",
		}),
		MintsAuthorized: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mint",
			Name:      "authorized_total",
			Help:      "Total number of authorized mint calls by rule kind",
		}, []string{"rule"}),
		MintsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mint",
			Name:      "rejected_total",
			Help:      "Total number of rejected mint calls by reason",
		}, []string{"reason"}),
		TokensMinted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "mint",
			Name:      "tokens_minted_total",
			Help:      "Total number of token serials issued",
		}),
		RecordsMigrated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "migration",
			Name:      "records_migrated_total",
			Help:      "Total number of legacy records upgraded",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration by endpoint",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
	}
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

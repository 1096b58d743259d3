// Package metrics defines Prometheus metrics for the catalog pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "nursery"

// Pipeline metrics.
var (
	RowsDroppedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rows_dropped_total",
		Help:      "Inventory rows skipped during cleaning because they have no SKU.",
	}, []string{"category"})

	TagResolutionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tag_resolutions_total",
		Help:      "Raw tags resolved, by strategy (valid, exclude, exception).",
	}, []string{"strategy"})

	ImageMatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "image_matches_total",
		Help:      "Image lookups, by result (sheet, matched, none).",
	}, []string{"result"})

	CatalogRowsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_rows_total",
		Help:      "Catalog rows emitted, by product page.",
	}, []string{"product_page"})

	PipelineDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "pipeline_duration_seconds",
		Help:      "Duration of full catalog builds in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	SnapshotHitsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_lookups_total",
		Help:      "Snapshot cache lookups, by result (hit, miss, refresh).",
	}, []string{"result"})
)

// HTTP metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of HTTP requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

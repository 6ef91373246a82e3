package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ImagingEncodeAttempts = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "imaging_encode_attempts",
			Help:    "Encode attempts needed per accepted image",
			Buckets: []float64{1, 2, 3, 4, 5, 6},
		},
	)

	ImagingRejectedFiles = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "imaging_rejected_files_total",
			Help: "Uploaded files dropped from a batch",
		},
	)

	CatalogCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_cache_lookups_total",
			Help: "Catalog snapshot cache lookups",
		},
		[]string{"result"},
	)
)

// Imaging пишет телеметрию оптимизатора изображений в Prometheus.
type Imaging struct{}

func (Imaging) ObserveAttempts(attempts int) {
	ImagingEncodeAttempts.Observe(float64(attempts))
}

func (Imaging) RejectedFile() {
	ImagingRejectedFiles.Inc()
}

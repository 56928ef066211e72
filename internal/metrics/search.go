package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Search backend and normalization Prometheus metrics.
var (
	BackendRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchview",
			Name:      "backend_requests_total",
			Help:      "Total number of search backend requests",
		},
		[]string{"status"}, // HTTP status code, or "error" for transport failures
	)

	BackendRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "searchview",
			Name:      "backend_request_duration_seconds",
			Help:      "Search backend request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"status"},
	)

	BackendResponseBytes = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "searchview",
			Name:      "backend_response_bytes",
			Help:      "Size of raw search backend responses",
			Buckets:   prometheus.ExponentialBuckets(1024, 4, 8),
		},
	)

	NormalizedResponsesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchview",
			Name:      "normalized_responses_total",
			Help:      "Total number of normalized search responses",
		},
		[]string{"source"}, // "backend" / "upload"
	)

	NormalizedDocumentsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "searchview",
			Name:      "normalized_documents_total",
			Help:      "Total number of projected documents",
		},
	)

	DocumentSectionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searchview",
			Name:      "document_sections_total",
			Help:      "Non-empty document sections produced by projection",
		},
		[]string{"section"}, // references / snippets / extractive_answers / extractive_segments
	)

	SummaryPlaceholderTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "searchview",
			Name:      "summary_placeholder_total",
			Help:      "Responses rendered without a generated summary",
		},
	)
)

// Collectors returns the search metrics so callers can register them on their own registry.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		BackendRequestsTotal,
		BackendRequestDuration,
		BackendResponseBytes,
		NormalizedResponsesTotal,
		NormalizedDocumentsTotal,
		DocumentSectionsTotal,
		SummaryPlaceholderTotal,
	}
}

var searchMetricsRegistered bool

// RegisterSearchMetrics registers search metrics on the default registry. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	for _, c := range Collectors() {
		if err := prometheus.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				panic(err)
			}
		}
	}
	searchMetricsRegistered = true
}

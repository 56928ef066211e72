package searchview

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values.
const (
	outcomeDocuments = "documents"
	outcomeEmpty     = "empty"
)

// sdkMetrics holds prometheus metrics registered for the SDK.
type sdkMetrics struct {
	normalizations *prometheus.CounterVec
	documents      prometheus.Counter
	duration       prometheus.Histogram
}

func newSDKMetrics(reg prometheus.Registerer) (*sdkMetrics, error) {
	m := &sdkMetrics{
		normalizations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "searchview",
			Subsystem: "sdk",
			Name:      "normalizations_total",
			Help:      "Total normalized responses by outcome.",
		}, []string{"outcome"}),
		documents: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "searchview",
			Subsystem: "sdk",
			Name:      "documents_total",
			Help:      "Total documents produced by normalization.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "searchview",
			Subsystem: "sdk",
			Name:      "normalize_duration_seconds",
			Help:      "Normalization duration in seconds.",
			Buckets:   []float64{.0001, .0005, .001, .005, .01, .05, .1},
		}),
	}
	if err := registerOrReuse(reg, &m.normalizations); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.documents); err != nil {
		return nil, err
	}
	if err := registerOrReuse(reg, &m.duration); err != nil {
		return nil, err
	}
	return m, nil
}

// registerOrReuse registers a collector or reuses an existing one.
func registerOrReuse[T prometheus.Collector](reg prometheus.Registerer, c *T) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			existing, ok := are.ExistingCollector.(T)
			if !ok {
				return fmt.Errorf("searchview: metric already registered with incompatible type: %T", are.ExistingCollector)
			}
			*c = existing
			return nil
		}
		return fmt.Errorf("searchview: register metric: %w", err)
	}
	return nil
}

// observer provides logging and metrics for normalizations.
type observer struct {
	logger  *slog.Logger
	metrics *sdkMetrics
}

func newObserver(logger *slog.Logger, reg prometheus.Registerer) (*observer, error) {
	var m *sdkMetrics
	if reg != nil {
		var err error
		m, err = newSDKMetrics(reg)
		if err != nil {
			return nil, err
		}
	}
	return &observer{logger: logger, metrics: m}, nil
}

func (o *observer) observe(ctx context.Context, start time.Time, payloadBytes int, page *Page) {
	if o == nil {
		return
	}
	dur := time.Since(start)

	outcome := outcomeDocuments
	if len(page.Documents) == 0 {
		outcome = outcomeEmpty
	}

	if o.metrics != nil {
		o.metrics.normalizations.WithLabelValues(outcome).Inc()
		o.metrics.documents.Add(float64(len(page.Documents)))
		o.metrics.duration.Observe(dur.Seconds())
	}

	if o.logger != nil {
		o.logger.DebugContext(ctx, "response normalized",
			"outcome", outcome,
			"bytes", payloadBytes,
			"documents", len(page.Documents),
			"summary_placeholder", page.Summary.Placeholder,
			"duration", dur,
		)
	}
}

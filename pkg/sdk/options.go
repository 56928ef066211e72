package searchview

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Normalizer.
type Option interface {
	apply(*normalizerConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*normalizerConfig)

func (f optionFunc) apply(c *normalizerConfig) { f(c) }

type normalizerConfig struct {
	perDocument bool
	placeholder string

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithPerDocumentReferences attaches to each document only the summary
// references that cite it. By default every document gets the first
// reference group.
func WithPerDocumentReferences() Option {
	return optionFunc(func(c *normalizerConfig) {
		c.perDocument = true
	})
}

// WithSummaryPlaceholder sets the text used when a response carries no summary.
// An empty string keeps the default.
func WithSummaryPlaceholder(text string) Option {
	return optionFunc(func(c *normalizerConfig) {
		c.placeholder = text
	})
}

// WithLogger enables structured logging of normalizations.
// Pass nil to disable (default).
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *normalizerConfig) {
		c.logger = l
	})
}

// WithMetrics registers normalization metrics on the given registerer.
// Pass nil to disable (default).
func WithMetrics(reg prometheus.Registerer) Option {
	return optionFunc(func(c *normalizerConfig) {
		c.metricsReg = reg
	})
}

package foldex

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Engine.
type Option interface {
	apply(*engineConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*engineConfig)

func (f optionFunc) apply(c *engineConfig) { f(c) }

type engineConfig struct {
	fuzzyThreshold float64
	maxDepth       int
	cacheSize      int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithFuzzyThreshold sets the maximum per-field distance in (0, 1] a fuzzy match may have.
// Lower is stricter. Default: 0.6.
func WithFuzzyThreshold(t float64) Option {
	return optionFunc(func(c *engineConfig) {
		c.fuzzyThreshold = t
	})
}

// WithMaxDepth limits folder nesting. 0 disables the limit.
// Default: 64.
func WithMaxDepth(depth int) Option {
	return optionFunc(func(c *engineConfig) {
		c.maxDepth = depth
	})
}

// WithCacheSize sets how many result lists are memoized per index generation.
// A negative size disables the cache. Default: 1024.
func WithCacheSize(size int) Option {
	return optionFunc(func(c *engineConfig) {
		c.cacheSize = size
	})
}

// WithLogger enables structured logging for engine operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *engineConfig) {
		c.logger = l
	})
}

// WithPrometheus registers engine metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *engineConfig) {
		c.metricsReg = reg
	})
}

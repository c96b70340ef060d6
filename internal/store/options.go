package store

import (
	"io"
	"log/slog"

	"golang.org/x/text/currency"
)

type config struct {
	log      *slog.Logger
	metrics  *Metrics
	buffer   int
	currency currency.Unit
}

// Option configures a CartStore or a SessionStore.
type Option func(*config)

// WithLogger sets the logger mutations are reported to.
func WithLogger(log *slog.Logger) Option {
	return func(c *config) {
		c.log = log
	}
}

// WithMetrics records store operations in m.
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithSubscriberBuffer sets how many snapshots a slow subscriber may hold.
func WithSubscriberBuffer(n int) Option {
	return func(c *config) {
		c.buffer = n
	}
}

// WithCurrency sets the currency cart totals are reported in. Ignored by SessionStore.
func WithCurrency(unit currency.Unit) Option {
	return func(c *config) {
		c.currency = unit
	}
}

func newConfig(opts []Option) config {
	c := config{
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		buffer:   defaultSubscriberBuffer,
		currency: currency.USD,
	}

	for _, opt := range opts {
		opt(&c)
	}

	return c
}

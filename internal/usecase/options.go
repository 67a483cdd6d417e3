package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mdci-projets/bank-account/internal/domain"
)

// Option configures the optional collaborators of a use case.
type Option func(*settings)

type settings struct {
	lookback time.Duration
	cache    StatementCache
	cacheTTL time.Duration
	retrier  Retrier
	metrics  MetricsRecorder
	logger   zerolog.Logger
	now      func() time.Time
}

func newSettings(opts []Option) settings {
	s := settings{
		lookback: DefaultLookback,
		cacheTTL: DefaultStatementCacheTTL,
		retrier:  noRetry{},
		metrics:  noopMetrics{},
		logger:   zerolog.Nop(),
		now:      func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// WithLookback sets the window of recent operations. Non-positive values are ignored.
func WithLookback(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.lookback = d
		}
	}
}

// WithStatementCache enables statement caching.
func WithStatementCache(cache StatementCache, ttl time.Duration) Option {
	return func(s *settings) {
		s.cache = cache
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithRetrier retries units of work on transient storage errors.
func WithRetrier(r Retrier) Option {
	return func(s *settings) {
		if r != nil {
			s.retrier = r
		}
	}
}

// WithMetrics sets the metrics recorder.
func WithMetrics(m MetricsRecorder) Option {
	return func(s *settings) {
		if m != nil {
			s.metrics = m
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *settings) { s.logger = l }
}

// WithClock sets the time source.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

func (s settings) since() time.Time {
	return s.now().Add(-s.lookback)
}

type noRetry struct{}

func (noRetry) Retry(_ context.Context, fn func() error) error { return fn() }

type noopMetrics struct{}

func (noopMetrics) OperationRecorded(domain.OperationType, decimal.Decimal) {}
func (noopMetrics) OperationRejected(string)                                {}
func (noopMetrics) StatementGenerated(string, int)                          {}
func (noopMetrics) StatementCacheLookup(bool)                               {}
func (noopMetrics) ReconciliationDiscrepancies(int)                         {}

package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// Classifier reports whether an error is transient and worth retrying.
type Classifier func(error) bool

// Option tunes the backoff schedule.
type Option func(*Retrier)

// WithIntervals sets the first and the largest wait between attempts.
func WithIntervals(initial, max time.Duration) Option {
	return func(r *Retrier) {
		r.initialInterval = initial
		r.maxInterval = max
	}
}

// WithMaxElapsed caps the total time spent retrying.
func WithMaxElapsed(d time.Duration) Option {
	return func(r *Retrier) { r.maxElapsed = d }
}

// Retrier implements usecase.Retrier with jittered exponential backoff.
type Retrier struct {
	maxRetries      uint64
	initialInterval time.Duration
	maxInterval     time.Duration
	maxElapsed      time.Duration
	retryable       Classifier
	logger          zerolog.Logger
}

// New returns a Retrier that re-runs an operation up to maxRetries extra
// times while retryable accepts its error. A nil classifier disables retries.
func New(retryable Classifier, maxRetries int, logger zerolog.Logger, opts ...Option) *Retrier {
	r := &Retrier{
		initialInterval: 50 * time.Millisecond,
		maxInterval:     time.Second,
		maxElapsed:      10 * time.Second,
		retryable:       retryable,
		logger:          logger,
	}
	if maxRetries > 0 {
		r.maxRetries = uint64(maxRetries)
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Retry runs operation until it succeeds, fails permanently, exhausts the
// retry budget or ctx is done.
func (r *Retrier) Retry(ctx context.Context, operation func() error) error {
	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = r.initialInterval
	exp.MaxInterval = r.maxInterval
	exp.MaxElapsedTime = r.maxElapsed

	policy := backoff.WithContext(backoff.WithMaxRetries(exp, r.maxRetries), ctx)

	attempt := 0
	return backoff.RetryNotify(func() error {
		attempt++
		err := operation()
		if err != nil && (r.retryable == nil || !r.retryable(err)) {
			return backoff.Permanent(err)
		}
		return err
	}, policy, func(err error, wait time.Duration) {
		r.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Dur("wait", wait).
			Msg("transient storage error, retrying")
	})
}
